// Package store defines durable persistence contracts for the catalog
// entities and their MongoDB implementations.
package store

import (
	"context"
	"errors"

	"property-listing-service/models"
)

// ErrNotFound reports that no document matched the lookup.
var ErrNotFound = errors.New("store: not found")

type PropertyStore interface {
	Insert(ctx context.Context, p *models.Property) error
	FindByID(ctx context.Context, id string) (*models.Property, error)
	// FindPage returns one page of properties plus the total count.
	FindPage(ctx context.Context, page, limit int) ([]models.Property, int64, error)
	FindByFilter(ctx context.Context, f PropertyFilter) ([]models.Property, error)
	// ExistsAt reports whether a property already occupies the unique
	// (address, city, zipCode, type) tuple.
	ExistsAt(ctx context.Context, address, city, zipCode, propertyType string) (bool, error)
	Replace(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id string) error
}

type FavouriteStore interface {
	Insert(ctx context.Context, f *models.Favourite) error
	// FindByUser returns the user's favourites with Property populated.
	FindByUser(ctx context.Context, userID string) ([]models.Favourite, error)
	DeleteByUserAndProperty(ctx context.Context, userID, propertyID string) error
}

type RecommendationStore interface {
	Insert(ctx context.Context, r *models.Recommendation) error
	// FindByRecipient returns recommendations addressed to the user with
	// Property and From populated.
	FindByRecipient(ctx context.Context, userID string) ([]models.Recommendation, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
