package domain

// CatalogEntry is a sellable product document. ID is opaque and
// store-generated.
type CatalogEntry struct {
	ID          string
	Name        string
	Price       float64
	Description string
}

// CatalogPatch carries the fields of a partial update; nil means "leave as is".
type CatalogPatch struct {
	Name        *string
	Price       *float64
	Description *string
}

func (p CatalogPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Description == nil
}
