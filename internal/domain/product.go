package domain

import "github.com/shopspring/decimal"

// Category is the closed set of product groupings, stored as product_types.description.
type Category string

const (
	CategoryCabin      Category = "Cabin"
	CategorySpa        Category = "Spa"
	CategoryActivities Category = "Activities"
)

type PricingMode int

const (
	PricingFixed PricingMode = iota
	PricingPerNightMarked
)

func (m PricingMode) String() string {
	if m == PricingFixed {
		return "fixed"
	}
	return "per_night_marked"
}

// PricingModeOf maps the fixed_price column onto a PricingMode.
func PricingModeOf(fixed bool) PricingMode {
	if fixed {
		return PricingFixed
	}
	return PricingPerNightMarked
}

type Product struct {
	ID          int64
	Name        string
	UnitPrice   decimal.Decimal
	Mode        PricingMode
	Reservable  bool
	Category    Category
	ImageURL    *string
	Description *string
}

type ProductQuery struct {
	Category       *Category // nil = every category
	ReservableOnly bool
}

// Quote is a priced candidate for an inquiry. It is never persisted.
type Quote struct {
	Product   Product
	TotalCost decimal.Decimal
	Nights    int
	CheckIn   StayDate
	ImageURL  string
}
