package model

import "time"

// Category is the product category enum used by the remote catalog.
type Category string

const (
	CategoryFood  Category = "FOOD"
	CategoryDrink Category = "DRINK"
)

// Product mirrors the remote product entity. Cached copies are owned by the
// offline store and replaced wholesale on every successful full-catalog fetch.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Category  Category  `json:"category"`
	ImageURL  *string   `json:"imageUrl"`
	Stock     int       `json:"stock"`
	MinStock  int       `json:"minStock"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductFilters narrows product reads. A zero value means "everything";
// only an unfiltered fetch may refresh the offline cache.
type ProductFilters struct {
	Category Category
	Search   string
	IsActive *bool
}

// Empty reports whether the filters would return the full catalog.
func (f *ProductFilters) Empty() bool {
	return f == nil || (f.Category == "" && f.Search == "" && f.IsActive == nil)
}
