package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Favourite marks a property saved by a user. Reads populate Property via a
// $lookup; it is never persisted on the favourite document itself.
type Favourite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	Property   *Property          `bson:"property,omitempty" json:"property,omitempty"`
}
