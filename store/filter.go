package store

import (
	"strconv"
	"strings"
)

// PropertyFilter is the typed search filter. Nil/empty fields are unset.
//
// The declared field order is also the canonical serialization order for
// cache keys; append new fields at the end so existing keys stay stable.
type PropertyFilter struct {
	City      string
	State     string
	Country   string
	MinPrice  *float64
	MaxPrice  *float64
	Bedrooms  *int
	Bathrooms *float64
	MinArea   *float64
	MaxArea   *float64
	Type      string
	Status    string
}

// Canonical renders the filter in a fixed field order, skipping unset fields,
// so that semantically identical filters always produce identical strings
// regardless of how they were assembled.
func (f PropertyFilter) Canonical() string {
	var parts []string

	str := func(name, v string) {
		if v != "" {
			parts = append(parts, name+"="+v)
		}
	}
	num := func(name string, v *float64) {
		if v != nil {
			parts = append(parts, name+"="+strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}

	str("city", f.City)
	str("state", f.State)
	str("country", f.Country)
	num("minPrice", f.MinPrice)
	num("maxPrice", f.MaxPrice)
	if f.Bedrooms != nil {
		parts = append(parts, "bedrooms="+strconv.Itoa(*f.Bedrooms))
	}
	num("bathrooms", f.Bathrooms)
	num("minArea", f.MinArea)
	num("maxArea", f.MaxArea)
	str("type", f.Type)
	str("status", f.Status)

	return strings.Join(parts, "&")
}
