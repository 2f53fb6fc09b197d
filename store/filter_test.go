package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPropertyFilter_CanonicalFixedOrder(t *testing.T) {
	minPrice := 100000.0
	maxPrice := 300000.0
	bedrooms := 3

	f := PropertyFilter{
		Type:     "House",
		MinPrice: &minPrice,
		City:     "Austin",
		Bedrooms: &bedrooms,
		MaxPrice: &maxPrice,
	}

	assert.Equal(t, "city=Austin&minPrice=100000&maxPrice=300000&bedrooms=3&type=House", f.Canonical())
}

func TestPropertyFilter_CanonicalEqualFiltersCollide(t *testing.T) {
	price := 250000.0

	a := PropertyFilter{City: "Austin", MaxPrice: &price, Status: "For Sale"}
	b := PropertyFilter{Status: "For Sale", City: "Austin", MaxPrice: &price}

	assert.Equal(t, a.Canonical(), b.Canonical(),
		"semantically identical filters must serialize identically")
}

func TestPropertyFilter_CanonicalSkipsUnsetFields(t *testing.T) {
	assert.Equal(t, "", PropertyFilter{}.Canonical())

	f := PropertyFilter{Country: "USA"}
	assert.Equal(t, "country=USA", f.Canonical())
}

func TestPropertyFilter_CanonicalDistinguishesValues(t *testing.T) {
	a := PropertyFilter{City: "Austin"}
	b := PropertyFilter{City: "Dallas"}
	assert.NotEqual(t, a.Canonical(), b.Canonical())
}
