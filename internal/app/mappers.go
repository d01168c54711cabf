package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"resort_booking/internal/domain"
)

/********** alias registry (single source of truth) **********/

var productAliases = map[string][]string{
	"id":          {"product_id", "id", "sku_id"},
	"name":        {"product_name", "name", "title"},
	"description": {"description", "summary", "details.description"},
	"category":    {"category", "product_type", "type", "category.name", "product_type.description"},
	"image":       {"default_image_url", "image_url", "image", "images.0", "media.cover"},
	"price":       {"unit_price", "price", "price.amount", "rate"},
	"fixed":       {"fixed_price", "fixed", "pricing.fixed"},
	"reservable":  {"reservable", "bookable", "is_reservable"},
}

var errUnmappable = errors.New("catalog payload is missing required fields")

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps; numeric parts index slices.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		switch obj := cur.(type) {
		case map[string]any:
			v, ok := obj[part]
			if !ok {
				return nil
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(part)
			if err != nil || i < 0 || i >= len(obj) {
				return nil
			}
			cur = obj[i]
		default:
			return nil
		}
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if s, ok := lookupAny(m, path).(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func firstNonEmptyAlias(m map[string]any, key string) *string {
	for _, p := range productAliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstDecimalFlexible: amount from float64/int/string ("120,50" accepted).
func firstDecimalFlexible(m map[string]any, paths ...string) *decimal.Decimal {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			d := decimal.NewFromFloat(v)
			return &d
		case int:
			d := decimal.NewFromInt(int64(v))
			return &d
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if d, err := decimal.NewFromString(s); err == nil {
				return &d
			}
		}
	}
	return nil
}

// firstBoolFlexible: bool from bool/number/"true"/"yes"/"1".
func firstBoolFlexible(m map[string]any, paths ...string) *bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return &v
		case float64:
			b := v != 0
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "yes", "y", "1":
				b := true
				return &b
			case "false", "no", "n", "0":
				b := false
				return &b
			}
		}
	}
	return nil
}

// normalizeCategory folds known categories case-insensitively; unknown ones are kept as given.
func normalizeCategory(s string) domain.Category {
	for _, c := range []domain.Category{domain.CategoryCabin, domain.CategorySpa, domain.CategoryActivities} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	if strings.EqualFold(s, "activity") {
		return domain.CategoryActivities
	}
	return domain.Category(s)
}

/********** product mapper **********/

func mapProduct(p map[string]any) (domain.Product, error) {
	id := firstInt64Flexible(p, productAliases["id"]...)
	name := firstNonEmptyAlias(p, "name")
	price := firstDecimalFlexible(p, productAliases["price"]...)
	category := firstNonEmptyAlias(p, "category")

	var missing []string
	if id == nil || *id <= 0 {
		missing = append(missing, "id")
	}
	if name == nil {
		missing = append(missing, "name")
	}
	if price == nil || !price.IsPositive() {
		missing = append(missing, "price")
	}
	if category == nil {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return domain.Product{}, fmt.Errorf("%w: %s", errUnmappable, strings.Join(missing, ","))
	}

	// upstream omissions default to the common case: fixed-rate and bookable
	fixed, reservable := true, true
	if b := firstBoolFlexible(p, productAliases["fixed"]...); b != nil {
		fixed = *b
	}
	if b := firstBoolFlexible(p, productAliases["reservable"]...); b != nil {
		reservable = *b
	}

	return domain.Product{
		ID:          *id,
		Name:        *name,
		UnitPrice:   price.Round(CurrencyPlaces),
		Mode:        domain.PricingModeOf(fixed),
		Reservable:  reservable,
		Category:    normalizeCategory(*category),
		ImageURL:    firstNonEmptyAlias(p, "image"),
		Description: firstNonEmptyAlias(p, "description"),
	}, nil
}
