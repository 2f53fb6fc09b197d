package services

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"property-listing-service/cache"
	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/store"
)

const favouriteKind = "favourites"

type AddFavouriteInput struct {
	PropertyID string `json:"propertyId" validate:"required"`
}

// FavouriteService manages the caller's saved properties. Every operation is
// scoped to the caller's own identity, so no further ownership check applies.
type FavouriteService struct {
	store      store.FavouriteStore
	properties store.PropertyStore
	cache      cache.Cache
	keys       *cache.KeyBuilder
	validate   Validator
	log        *slog.Logger
}

func NewFavouriteService(st store.FavouriteStore, props store.PropertyStore, c cache.Cache, keys *cache.KeyBuilder, v Validator, log *slog.Logger) *FavouriteService {
	return &FavouriteService{store: st, properties: props, cache: c, keys: keys, validate: v, log: log}
}

// Add saves a property to the caller's favourites. The property must exist.
func (s *FavouriteService) Add(ctx context.Context, input AddFavouriteInput, callerID string) (*models.Favourite, error) {
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(input.PropertyID)
	if err != nil {
		return nil, domainerrors.Validation("invalid property id")
	}

	if _, err := s.properties.FindByID(ctx, input.PropertyID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("property not found")
		}
		return nil, domainerrors.Dependency("failed to fetch property", err)
	}

	favourite := &models.Favourite{
		UserID:     callerID,
		PropertyID: objID,
	}
	if err := s.store.Insert(ctx, favourite); err != nil {
		return nil, domainerrors.Dependency("failed to add favourite", err)
	}

	s.invalidate(ctx, callerID)
	return favourite, nil
}

// List returns the caller's favourites with their properties populated.
func (s *FavouriteService) List(ctx context.Context, callerID string) ([]models.Favourite, error) {
	key := s.keys.UserScoped(favouriteKind, callerID)
	var cached []models.Favourite
	hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	favourites, err := s.store.FindByUser(ctx, callerID)
	if err != nil {
		return nil, domainerrors.Dependency("failed to fetch favourites", err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, favourites); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
	return favourites, nil
}

// Remove deletes the caller's favourite referencing propertyID.
func (s *FavouriteService) Remove(ctx context.Context, callerID, propertyID string) error {
	if _, err := primitive.ObjectIDFromHex(propertyID); err != nil {
		return domainerrors.Validation("invalid property id")
	}

	err := s.store.DeleteByUserAndProperty(ctx, callerID, propertyID)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("favourite not found")
	}
	if err != nil {
		return domainerrors.Dependency("failed to remove favourite", err)
	}

	s.invalidate(ctx, callerID)
	return nil
}

func (s *FavouriteService) invalidate(ctx context.Context, userID string) {
	key := s.keys.UserScoped(favouriteKind, userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
