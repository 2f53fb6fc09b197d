package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"property-listing-service/cache"
	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/store"
)

const recommendationKind = "recommendations"

type RecommendPropertyInput struct {
	PropertyID     string `json:"propertyId" validate:"required"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
}

// RecommendationService lets a caller suggest properties to other users.
// Reads are scoped to the recipient.
type RecommendationService struct {
	store    store.RecommendationStore
	users    store.UserStore
	cache    cache.Cache
	keys     *cache.KeyBuilder
	validate Validator
	log      *slog.Logger
}

func NewRecommendationService(st store.RecommendationStore, users store.UserStore, c cache.Cache, keys *cache.KeyBuilder, v Validator, log *slog.Logger) *RecommendationService {
	return &RecommendationService{store: st, users: users, cache: c, keys: keys, validate: v, log: log}
}

// Recommend records a property suggestion for the user behind
// recipientEmail. The recipient must exist.
func (s *RecommendationService) Recommend(ctx context.Context, input RecommendPropertyInput, callerID string) (*models.Recommendation, error) {
	if err := s.validate.Validate(input); err != nil {
		return nil, err
	}
	objID, err := primitive.ObjectIDFromHex(input.PropertyID)
	if err != nil {
		return nil, domainerrors.Validation("invalid property id")
	}

	recipient, err := s.users.FindByEmail(ctx, input.RecipientEmail)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFound("recipient not found")
	}
	if err != nil {
		return nil, domainerrors.Dependency("failed to look up recipient", err)
	}

	recommendation := &models.Recommendation{
		FromUserID: callerID,
		ToUserID:   recipient.ID.Hex(),
		PropertyID: objID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, recommendation); err != nil {
		return nil, domainerrors.Dependency("failed to create recommendation", err)
	}

	s.invalidate(ctx, recommendation.ToUserID)
	return recommendation, nil
}

// List returns recommendations addressed to the caller.
func (s *RecommendationService) List(ctx context.Context, callerID string) ([]models.Recommendation, error) {
	key := s.keys.UserScoped(recommendationKind, callerID)
	var cached []models.Recommendation
	hit, err := cache.GetJSON(ctx, s.cache, key, &cached)
	if err != nil {
		s.log.Warn("cache read failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}

	recommendations, err := s.store.FindByRecipient(ctx, callerID)
	if err != nil {
		return nil, domainerrors.Dependency("failed to fetch recommendations", err)
	}

	if err := cache.SetJSON(ctx, s.cache, key, recommendations); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
	return recommendations, nil
}

func (s *RecommendationService) invalidate(ctx context.Context, userID string) {
	key := s.keys.UserScoped(recommendationKind, userID)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
