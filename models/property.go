package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accepted values for Property.Type.
const (
	TypeApartment = "Apartment"
	TypeHouse     = "House"
	TypeCondo     = "Condo"
	TypeLand      = "Land"
)

// Accepted values for Property.Status.
const (
	StatusForSale = "For Sale"
	StatusForRent = "For Rent"
	StatusSold    = "Sold"
)

type Location struct {
	Address string `bson:"address" json:"address"`
	City    string `bson:"city" json:"city"`
	State   string `bson:"state" json:"state"`
	ZipCode string `bson:"zipCode" json:"zipCode"`
	Country string `bson:"country" json:"country"`
}

// Property is a catalog listing. No two properties may share the same
// (location.address, location.city, location.zipCode, type) tuple.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Location    Location           `bson:"location" json:"location"`
	Bedrooms    int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms   float64            `bson:"bathrooms" json:"bathrooms"`
	Area        float64            `bson:"area" json:"area"`
	Type        string             `bson:"type" json:"type"`
	Status      string             `bson:"status" json:"status"`
	CreatedBy   string             `bson:"createdBy" json:"createdBy"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// PropertyPage is the cached envelope for one page of listings.
type PropertyPage struct {
	Properties []Property `json:"properties"`
	HasMore    bool       `json:"hasMore"`
}
