package domain

import "time"

// Product is a menu item available for ordering. Prices are stored in cents
// to avoid floating-point drift in totals.
type Product struct {
	ID          string
	Name        string
	Description string
	PriceCents  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
