package app

import (
	"github.com/shopspring/decimal"

	"resort_booking/internal/domain"
)

// DefaultVariableMarkup is applied to per-night-marked products (a flat 20% surcharge).
var DefaultVariableMarkup = decimal.RequireFromString("1.2")

// CurrencyPlaces is the precision totals are rounded to (half-even).
const CurrencyPlaces = 2

type Pricer struct {
	VariableMarkup decimal.Decimal
}

// NewPricer returns a Pricer; a non-positive markup falls back to DefaultVariableMarkup.
func NewPricer(markup decimal.Decimal) Pricer {
	if !markup.IsPositive() {
		markup = DefaultVariableMarkup
	}
	return Pricer{VariableMarkup: markup}
}

// Price computes the stay total. nights must be >= 1.
func (p Pricer) Price(unit decimal.Decimal, mode domain.PricingMode, nights int) decimal.Decimal {
	total := unit.Mul(decimal.NewFromInt(int64(nights)))
	if mode == domain.PricingPerNightMarked {
		total = total.Mul(p.VariableMarkup)
	}
	return total.RoundBank(CurrencyPlaces)
}

// Quote prices a product for an intent.
func (p Pricer) Quote(prod domain.Product, checkIn domain.StayDate, nights int) domain.Quote {
	img := PlaceholderImage
	if prod.ImageURL != nil && *prod.ImageURL != "" {
		img = *prod.ImageURL
	}
	return domain.Quote{
		Product:   prod,
		TotalCost: p.Price(prod.UnitPrice, prod.Mode, nights),
		Nights:    nights,
		CheckIn:   checkIn,
		ImageURL:  img,
	}
}

const PlaceholderImage = "/static/images/placeholder.jpg"
