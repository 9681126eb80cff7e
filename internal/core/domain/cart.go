package domain

import "time"

// OwnershipRecord is one relational row linking a user to a quantity of a
// referenced product. ProductRef points into the catalog domain but is not
// validated to exist there; integrity across the two stores is advisory.
type OwnershipRecord struct {
	ID         int64
	UserID     int64
	ProductRef string
	Quantity   int
	CreatedAt  time.Time
}

// CartLine is one line of an aggregated cart view: ownership quantity merged
// with the resolved catalog entry. Derived, never persisted.
type CartLine struct {
	ProductRef string
	Quantity   int
	Product    CatalogEntry
}
