package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/cafeteria-service/internal/domain"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// Requirement is what a route demands of the resolved principal.
type Requirement int

const (
	// Public routes admit everyone, principal or not.
	Public Requirement = iota
	// AuthenticatedOnly admits any resolved principal regardless of role.
	AuthenticatedOnly
	// RequireRole admits only principals whose role matches exactly. Roles
	// are flat: there is no ordering between CLIENT and STAFF.
	RequireRole
)

// Decision is the outcome of evaluating a request against a policy.
type Decision int

const (
	Allow Decision = iota
	// DenyUnauthenticated means no principal was resolved for a route that
	// needs one.
	DenyUnauthenticated
	// DenyForbidden means a principal was resolved but its role does not
	// satisfy the rule. Presented distinctly from DenyUnauthenticated.
	DenyForbidden
)

// Rule pairs a path pattern with a requirement. A pattern is either an exact
// path or, when it ends in "/*", a prefix covering the base path and
// everything below it.
type Rule struct {
	Pattern string
	Req     Requirement
	Role    domain.Role
}

// PublicRule admits everyone on pattern.
func PublicRule(pattern string) Rule {
	return Rule{Pattern: pattern, Req: Public}
}

// AuthenticatedRule admits any principal on pattern.
func AuthenticatedRule(pattern string) Rule {
	return Rule{Pattern: pattern, Req: AuthenticatedOnly}
}

// RoleRule admits only principals holding exactly role on pattern.
func RoleRule(pattern string, role domain.Role) Rule {
	return Rule{Pattern: pattern, Req: RequireRole, Role: role}
}

func (r Rule) matches(path string) bool {
	if base, ok := strings.CutSuffix(r.Pattern, "/*"); ok {
		return path == base || strings.HasPrefix(path, base+"/")
	}
	return path == r.Pattern
}

// Policy is an ordered authorization rule list, evaluated first-match-wins.
// Unmatched requests fall through to AuthenticatedOnly: deny by default.
// Each pipeline carries its own Policy; the API and web rule sets are never
// merged.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from rules in declaration order.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate decides whether principal may reach path. It is pure: the same
// inputs always yield the same decision.
func (p *Policy) Evaluate(path string, principal *Principal) Decision {
	req, role := p.match(path)

	switch req {
	case Public:
		return Allow
	case AuthenticatedOnly:
		if principal == nil {
			return DenyUnauthenticated
		}
		return Allow
	case RequireRole:
		if principal == nil {
			return DenyUnauthenticated
		}
		if principal.Role != role {
			return DenyForbidden
		}
		return Allow
	}
	return DenyUnauthenticated
}

func (p *Policy) match(path string) (Requirement, domain.Role) {
	for _, rule := range p.rules {
		if rule.matches(path) {
			return rule.Req, rule.Role
		}
	}
	return AuthenticatedOnly, ""
}

// EnforceAPI returns middleware applying policy with API-style rejections:
// 401 for unresolved identity, 403 for insufficient role, JSON either way.
func EnforceAPI(policy *Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		switch policy.Evaluate(c.Path(), principal) {
		case Allow:
			return c.Next()
		case DenyForbidden:
			return apperrors.NewForbidden("insufficient role")
		default:
			return apperrors.NewUnauthorized("authentication required")
		}
	}
}

// EnforceWeb returns middleware applying policy with web-style rejections:
// anonymous callers are redirected to the login page, authenticated callers
// with the wrong role get a plain 403. Same policy decision, different
// presentation.
func EnforceWeb(policy *Policy, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		switch policy.Evaluate(c.Path(), principal) {
		case Allow:
			return c.Next()
		case DenyForbidden:
			return c.Status(fiber.StatusForbidden).SendString("Forbidden")
		default:
			return c.Redirect(loginPath, fiber.StatusFound)
		}
	}
}
