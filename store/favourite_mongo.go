package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"property-listing-service/models"
)

// MongoFavouriteStore persists favourites in the "favourites" collection.
type MongoFavouriteStore struct {
	coll *mongo.Collection
}

func NewMongoFavouriteStore(db *mongo.Database) *MongoFavouriteStore {
	return &MongoFavouriteStore{coll: db.Collection("favourites")}
}

func (s *MongoFavouriteStore) Insert(ctx context.Context, f *models.Favourite) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, f)
	return err
}

func (s *MongoFavouriteStore) FindByUser(ctx context.Context, userID string) ([]models.Favourite, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
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
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	favourites := []models.Favourite{}
	if err := cursor.All(ctx, &favourites); err != nil {
		return nil, err
	}
	return favourites, nil
}

func (s *MongoFavouriteStore) DeleteByUserAndProperty(ctx context.Context, userID, propertyID string) error {
	objID, err := primitive.ObjectIDFromHex(propertyID)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
