// Package services implements the resource services: validation, ownership
// checks, cache-aside reads, and invalidation on writes.
package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"property-listing-service/cache"
	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/store"
)

const propertyKind = "properties"

// Pagination bounds applied by List.
const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type LocationInput struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country" validate:"required"`
}

type CreatePropertyInput struct {
	Title       string        `json:"title" validate:"required,max=100"`
	Description string        `json:"description" validate:"omitempty,max=1000"`
	Price       float64       `json:"price" validate:"required,gt=0"`
	Location    LocationInput `json:"location" validate:"required"`
	Bedrooms    int           `json:"bedrooms" validate:"gte=0"`
	Bathrooms   float64       `json:"bathrooms" validate:"gte=0"`
	Area        float64       `json:"area" validate:"required,gt=0"`
	Type        string        `json:"type" validate:"required,oneof=Apartment House Condo Land"`
	Status      string        `json:"status" validate:"required,oneof='For Sale' 'For Rent' 'Sold'"`
}

// UpdatePropertyInput carries a partial update; nil fields are left as-is.
type UpdatePropertyInput struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string        `json:"description" validate:"omitempty,max=1000"`
	Price       *float64       `json:"price" validate:"omitempty,gt=0"`
	Location    *LocationInput `json:"location"`
	Bedrooms    *int           `json:"bedrooms" validate:"omitempty,gte=0"`
	Bathrooms   *float64       `json:"bathrooms" validate:"omitempty,gte=0"`
	Area        *float64       `json:"area" validate:"omitempty,gt=0"`
	Type        *string        `json:"type" validate:"omitempty,oneof=Apartment House Condo Land"`
	Status      *string        `json:"status" validate:"omitempty,oneof='For Sale' 'For Rent' 'Sold'"`
}

// Validator validates request inputs, reporting per-field messages.
type Validator interface {
	Validate(s any) error
}

// PropertyService orchestrates property reads and writes over the injected
// store and cache.
type PropertyService struct {
	store    store.PropertyStore
	cache    cache.Cache
	keys     *cache.KeyBuilder
	validate Validator
	log      *slog.Logger
}

func NewPropertyService(st store.PropertyStore, c cache.Cache, keys *cache.KeyBuilder, v Validator, log *slog.Logger) *PropertyService {
	return &PropertyService{store: st, cache: c, keys: keys, validate: v, log: log}
}

// OwnedBy reports whether callerID may mutate the property. Mutations are
// restricted to the identity that created the record.
func OwnedBy(p *models.Property, callerID string) bool {
	return p.CreatedBy == callerID
}

// Create validates input, enforces the unique-address rule, and persists a
// new property owned by callerID.
func (s *PropertyService) Create(ctx context.Context, input CreatePropertyInput, callerID string) (*models.Property, error) {
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}

	exists, err := s.store.ExistsAt(ctx, input.Location.Address, input.Location.City, input.Location.ZipCode, input.Type)
	if err != nil {
		return nil, domainerrors.Dependency("failed to check for duplicate property", err)
	}
	if exists {
		return nil, domainerrors.Conflict("a property with this address, city, zip code and type already exists")
	}

	property := &models.Property{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location: models.Location{
			Address: input.Location.Address,
			City:    input.Location.City,
			State:   input.Location.State,
			ZipCode: input.Location.ZipCode,
			Country: input.Location.Country,
		},
		Bedrooms:  input.Bedrooms,
		Bathrooms: input.Bathrooms,
		Area:      input.Area,
		Type:      input.Type,
		Status:    input.Status,
		CreatedBy: callerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Insert(ctx, property); err != nil {
		return nil, domainerrors.Dependency("failed to create property", err)
	}

	s.bumpEpoch(ctx)
	return property, nil
}

// Get returns a property by id, serving from cache when possible. Reads are
// public; no ownership check applies.
func (s *PropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domainerrors.Validation("invalid property id")
	}

	key := s.keys.Entity(propertyKind, id)
	var cached models.Property
	hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	property, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound("property not found")
	}
	if err != nil {
		return nil, domainerrors.Dependency("failed to fetch property", err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, property); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
	return property, nil
}

// List returns one page of properties and whether more pages follow.
func (s *PropertyService) List(ctx context.Context, page, limit int) (*models.PropertyPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	key := s.keys.List(propertyKind, s.currentEpoch(ctx), page, limit)
	var cached models.PropertyPage
	hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return &cached, nil
	}

	properties, total, err := s.store.FindPage(ctx, page, limit)
	if err != nil {
		return nil, domainerrors.Dependency("failed to list properties", err)
	}

	result := &models.PropertyPage{
		Properties: properties,
		HasMore:    int64(page*limit) < total,
	}
	if err := cache.SetJSON(ctx, s.cache, key, result); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
	return result, nil
}

// Search returns all properties matching the filter.
func (s *PropertyService) Search(ctx context.Context, filter store.PropertyFilter) ([]models.Property, error) {
	key := s.keys.Search(s.currentEpoch(ctx), filter.Canonical())
	var cached []models.Property
	hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	properties, err := s.store.FindByFilter(ctx, filter)
	if err != nil {
		return nil, domainerrors.Dependency("failed to search properties", err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, properties); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
	return properties, nil
}

// Update merges the partial input into the stored property after the
// ownership check, then invalidates the entity key and the list namespace.
func (s *PropertyService) Update(ctx context.Context, id, callerID string, input UpdatePropertyInput) (*models.Property, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domainerrors.Validation("invalid property id")
	}
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}

	existing, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound("property not found")
	}
	if err != nil {
		return nil, domainerrors.Dependency("failed to fetch property", err)
	}

	if !OwnedBy(existing, callerID) {
		return nil, domainerrors.Forbidden("only the owner can update this property")
	}

	applyPropertyUpdate(existing, input)

	if err := s.store.Replace(ctx, existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("property not found")
		}
		return nil, domainerrors.Dependency("failed to update property", err)
	}

	s.invalidateEntity(ctx, id)
	s.bumpEpoch(ctx)
	return existing, nil
}

// Delete removes the property after the ownership check and invalidates its
// cache entries.
func (s *PropertyService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domainerrors.Validation("invalid property id")
	}

	existing, err := s.store.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFound("property not found")
	}
	if err != nil {
		return domainerrors.Dependency("failed to fetch property", err)
	}

	if !OwnedBy(existing, callerID) {
		return domainerrors.Forbidden("only the owner can delete this property")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("property not found")
		}
		return domainerrors.Dependency("failed to delete property", err)
	}

	s.invalidateEntity(ctx, id)
	s.bumpEpoch(ctx)
	return nil
}

func applyPropertyUpdate(p *models.Property, input UpdatePropertyInput) {
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.Location != nil {
		p.Location = models.Location{
			Address: input.Location.Address,
			City:    input.Location.City,
			State:   input.Location.State,
			ZipCode: input.Location.ZipCode,
			Country: input.Location.Country,
		}
	}
	if input.Bedrooms != nil {
		p.Bedrooms = *input.Bedrooms
	}
	if input.Bathrooms != nil {
		p.Bathrooms = *input.Bathrooms
	}
	if input.Area != nil {
		p.Area = *input.Area
	}
	if input.Type != nil {
		p.Type = *input.Type
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
}

// currentEpoch reads the list/search namespace version. Any failure degrades
// to epoch 0: reads then rely on TTL expiry alone.
func (s *PropertyService) currentEpoch(ctx context.Context) int64 {
	data, err := s.cache.Get(ctx, s.keys.Epoch(propertyKind))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("epoch read failed", "error", err)
		}
		return 0
	}
	epoch, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0
	}
	return epoch
}

// bumpEpoch moves the list/search namespace to a new version, orphaning every
// cached page and search result at once. Orphans expire on their own TTL.
// Called only after the store write has succeeded.
func (s *PropertyService) bumpEpoch(ctx context.Context) {
	if _, err := s.cache.Incr(ctx, s.keys.Epoch(propertyKind)); err != nil {
		s.log.Warn("epoch bump failed", "error", err)
	}
}

func (s *PropertyService) invalidateEntity(ctx context.Context, id string) {
	key := s.keys.Entity(propertyKind, id)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
