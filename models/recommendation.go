package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationSender carries the public fields of the recommending user.
type RecommendationSender struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}

// Recommendation is a property suggested by one user to another. Property and
// From are populated on read, not persisted.
type Recommendation struct {
	ID         primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	FromUserID string                `bson:"fromUserId" json:"fromUserId"`
	ToUserID   string                `bson:"toUserId" json:"toUserId"`
	PropertyID primitive.ObjectID    `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time             `bson:"createdAt" json:"createdAt"`
	Property   *Property             `bson:"property,omitempty" json:"property,omitempty"`
	From       *RecommendationSender `bson:"from,omitempty" json:"from,omitempty"`
}
