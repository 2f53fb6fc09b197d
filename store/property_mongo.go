package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"property-listing-service/models"
)

// MongoPropertyStore persists properties in the "properties" collection.
type MongoPropertyStore struct {
	coll *mongo.Collection
}

func NewMongoPropertyStore(db *mongo.Database) *MongoPropertyStore {
	return &MongoPropertyStore{coll: db.Collection("properties")}
}

func (s *MongoPropertyStore) Insert(ctx context.Context, p *models.Property) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *MongoPropertyStore) FindByID(ctx context.Context, id string) (*models.Property, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Property
	err = s.coll.FindOne(ctx, bson.M{"_id": objID}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoPropertyStore) FindPage(ctx context.Context, page, limit int) ([]models.Property, int64, error) {
	total, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (s *MongoPropertyStore) FindByFilter(ctx context.Context, f PropertyFilter) ([]models.Property, error) {
	query := bson.M{}
	if f.City != "" {
		query["location.city"] = f.City
	}
	if f.State != "" {
		query["location.state"] = f.State
	}
	if f.Country != "" {
		query["location.country"] = f.Country
	}
	if price := rangeCondition(f.MinPrice, f.MaxPrice); len(price) > 0 {
		query["price"] = price
	}
	if f.Bedrooms != nil {
		query["bedrooms"] = *f.Bedrooms
	}
	if f.Bathrooms != nil {
		query["bathrooms"] = *f.Bathrooms
	}
	if area := rangeCondition(f.MinArea, f.MaxArea); len(area) > 0 {
		query["area"] = area
	}
	if f.Type != "" {
		query["type"] = f.Type
	}
	if f.Status != "" {
		query["status"] = f.Status
	}

	cursor, err := s.coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func rangeCondition(min, max *float64) bson.M {
	cond := bson.M{}
	if min != nil {
		cond["$gte"] = *min
	}
	if max != nil {
		cond["$lte"] = *max
	}
	return cond
}

func (s *MongoPropertyStore) ExistsAt(ctx context.Context, address, city, zipCode, propertyType string) (bool, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{
		"location.address": address,
		"location.city":    city,
		"location.zipCode": zipCode,
		"type":             propertyType,
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoPropertyStore) Replace(ctx context.Context, p *models.Property) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPropertyStore) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
