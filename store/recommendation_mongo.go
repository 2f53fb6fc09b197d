package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"property-listing-service/models"
)

// MongoRecommendationStore persists recommendations in the
// "recommendations" collection.
type MongoRecommendationStore struct {
	coll *mongo.Collection
}

func NewMongoRecommendationStore(db *mongo.Database) *MongoRecommendationStore {
	return &MongoRecommendationStore{coll: db.Collection("recommendations")}
}

func (s *MongoRecommendationStore) Insert(ctx context.Context, r *models.Recommendation) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, r)
	return err
}

func (s *MongoRecommendationStore) FindByRecipient(ctx context.Context, userID string) ([]models.Recommendation, error) {
	// fromUserId is stored as the hex of the sender's user id, so the users
	// lookup converts it back before matching _id.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"toUserId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "property",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$property",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from": "users",
			"let":  bson.M{"fromId": bson.M{"$toObjectId": "$fromUserId"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$fromId"}}}},
				bson.M{"$project": bson.M{"_id": 0, "name": 1, "email": 1}},
			},
			"as": "from",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$from",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	recommendations := []models.Recommendation{}
	if err := cursor.All(ctx, &recommendations); err != nil {
		return nil, err
	}
	return recommendations, nil
}
