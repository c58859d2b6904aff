package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/cafeteria-service/internal/domain"
)

func testPolicy() *Policy {
	return NewPolicy(
		PublicRule("/css/*"),
		PublicRule("/"),
		PublicRule("/login"),
		RoleRule("/cart/*", domain.RoleClient),
		RoleRule("/profile", domain.RoleClient),
		RoleRule("/admin/*", domain.RoleStaff),
	)
}

func client() *Principal {
	return &Principal{UserID: "u1", Role: domain.RoleClient}
}

func staff() *Principal {
	return &Principal{UserID: "u2", Role: domain.RoleStaff}
}

func TestPolicyEvaluate(t *testing.T) {
	policy := testPolicy()

	tests := []struct {
		name      string
		path      string
		principal *Principal
		want      Decision
	}{
		{"public page anonymous", "/", nil, Allow},
		{"public page authenticated", "/", client(), Allow},
		{"static asset anonymous", "/css/app.css", nil, Allow},
		{"login page anonymous", "/login", nil, Allow},
		{"cart anonymous", "/cart", nil, DenyUnauthenticated},
		{"cart client", "/cart", client(), Allow},
		{"cart subpath client", "/cart/add", client(), Allow},
		{"cart staff", "/cart", staff(), DenyForbidden},
		{"profile client", "/profile", client(), Allow},
		{"profile staff", "/profile", staff(), DenyForbidden},
		{"admin anonymous", "/admin/dashboard", nil, DenyUnauthenticated},
		{"admin client", "/admin/dashboard", client(), DenyForbidden},
		{"admin staff", "/admin/dashboard", staff(), Allow},
		{"unlisted path anonymous", "/orders", nil, DenyUnauthenticated},
		{"unlisted path client", "/orders", client(), Allow},
		{"unlisted path staff", "/orders", staff(), Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Evaluate(tt.path, tt.principal))
		})
	}
}

func TestPolicyFirstMatchWins(t *testing.T) {
	// A broad public rule declared first shadows a later role rule.
	policy := NewPolicy(
		PublicRule("/admin/*"),
		RoleRule("/admin/*", domain.RoleStaff),
	)
	assert.Equal(t, Allow, policy.Evaluate("/admin/dashboard", nil))
}

func TestPolicyExactPatternDoesNotMatchSubpaths(t *testing.T) {
	policy := NewPolicy(PublicRule("/"))
	assert.Equal(t, Allow, policy.Evaluate("/", nil))
	assert.Equal(t, DenyUnauthenticated, policy.Evaluate("/anything", nil))
}

func TestPolicyPrefixPatternCoversBase(t *testing.T) {
	policy := NewPolicy(RoleRule("/admin/*", domain.RoleStaff))
	assert.Equal(t, Allow, policy.Evaluate("/admin", staff()))
	assert.Equal(t, Allow, policy.Evaluate("/admin/orders/abc", staff()))
	// Prefix match is segment-aware, not substring.
	assert.Equal(t, DenyUnauthenticated, policy.Evaluate("/administrator", nil))
}

func TestPolicyRolesAreFlat(t *testing.T) {
	policy := NewPolicy(
		RoleRule("/cart/*", domain.RoleClient),
		RoleRule("/admin/*", domain.RoleStaff),
	)
	// Neither role implies the other.
	assert.Equal(t, DenyForbidden, policy.Evaluate("/cart", staff()))
	assert.Equal(t, DenyForbidden, policy.Evaluate("/admin", client()))
}

func TestPolicyEvaluateIsPure(t *testing.T) {
	policy := testPolicy()
	first := policy.Evaluate("/cart", client())
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, policy.Evaluate("/cart", client()))
	}
}
