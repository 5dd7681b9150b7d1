package domain

import "strings"

type Category string

const (
	CategoryProduce   Category = "Produce"
	CategoryDairy     Category = "Dairy"
	CategoryMeat      Category = "Meat"
	CategoryPantry    Category = "Pantry"
	CategoryFrozen    Category = "Frozen"
	CategoryHousehold Category = "Household"
	CategoryOther     Category = "Other"
)

// Categories lists the closed set accepted from the AI service.
func Categories() []Category {
	return []Category{
		CategoryProduce,
		CategoryDairy,
		CategoryMeat,
		CategoryPantry,
		CategoryFrozen,
		CategoryHousehold,
		CategoryOther,
	}
}

// ParseCategory matches case-insensitively and falls back to Other.
func ParseCategory(raw string) Category {
	raw = strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), raw) {
			return c
		}
	}
	return CategoryOther
}

const DefaultQuantity = "1"

// ShoppingItem is one entry of the list. The last four fields are transient
// presentation flags and are never persisted.
type ShoppingItem struct {
	ID        string
	Name      string
	Quantity  string
	Category  Category
	Completed bool

	ImageURL        string
	GeneratingImage bool
	Removing        bool
	Modified        bool
}

// NewItem is an addition requested by the AI service.
type NewItem struct {
	Name     string
	Quantity string
	Category Category
}

// NewShoppingItem builds a list entry for an addition, applying the quantity
// and category defaults.
func NewShoppingItem(id string, in NewItem) ShoppingItem {
	quantity := strings.TrimSpace(in.Quantity)
	if quantity == "" {
		quantity = DefaultQuantity
	}
	return ShoppingItem{
		ID:              id,
		Name:            strings.TrimSpace(in.Name),
		Quantity:        quantity,
		Category:        ParseCategory(string(in.Category)),
		GeneratingImage: true,
	}
}

// SameName reports whether the item's name equals name, ignoring case.
func (i ShoppingItem) SameName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(i.Name), strings.TrimSpace(name))
}

// Image is a generated product picture.
type Image struct {
	MIMEType string
	Data     []byte
}
