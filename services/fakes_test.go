package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"property-listing-service/cache"
	"property-listing-service/models"
	"property-listing-service/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePropertyStore is an in-memory PropertyStore that counts calls so tests
// can observe whether a read was served from cache or from the store.
type fakePropertyStore struct {
	mu          sync.Mutex
	properties  map[string]models.Property
	order       []string
	findCalls   int
	pageCalls   int
	filterCalls int
	forcedErr   error
}

func newFakePropertyStore() *fakePropertyStore {
	return &fakePropertyStore{properties: map[string]models.Property{}}
}

func (s *fakePropertyStore) Insert(_ context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.properties[p.ID.Hex()] = *p
	s.order = append(s.order, p.ID.Hex())
	return nil
}

func (s *fakePropertyStore) FindByID(_ context.Context, id string) (*models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	if s.forcedErr != nil {
		return nil, s.forcedErr
	}
	p, ok := s.properties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *fakePropertyStore) FindPage(_ context.Context, page, limit int) ([]models.Property, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageCalls++
	if s.forcedErr != nil {
		return nil, 0, s.forcedErr
	}

	start := (page - 1) * limit
	if start > len(s.order) {
		start = len(s.order)
	}
	end := start + limit
	if end > len(s.order) {
		end = len(s.order)
	}

	result := []models.Property{}
	for _, id := range s.order[start:end] {
		result = append(result, s.properties[id])
	}
	return result, int64(len(s.order)), nil
}

func (s *fakePropertyStore) FindByFilter(_ context.Context, f store.PropertyFilter) ([]models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterCalls++

	result := []models.Property{}
	for _, id := range s.order {
		p := s.properties[id]
		if f.City != "" && p.Location.City != f.City {
			continue
		}
		if f.Type != "" && p.Type != f.Type {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (s *fakePropertyStore) ExistsAt(_ context.Context, address, city, zipCode, propertyType string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.Location.Address == address && p.Location.City == city &&
			p.Location.ZipCode == zipCode && p.Type == propertyType {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakePropertyStore) Replace(_ context.Context, p *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[p.ID.Hex()]; !ok {
		return store.ErrNotFound
	}
	s.properties[p.ID.Hex()] = *p
	return nil
}

func (s *fakePropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.properties, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeCache is an in-memory Cache. With fail set, every operation errors,
// which must degrade reads to store fetches and leave writes unaffected.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	fail    bool
}

var (
	errCacheDown = errors.New("cache down")
	errStoreDown = errors.New("store down")
)

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return nil, errCacheDown
	}
	data, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return data, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errCacheDown
	}
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return 0, errCacheDown
	}
	current, _ := strconv.ParseInt(string(c.entries[key]), 10, 64)
	current++
	c.entries[key] = []byte(strconv.FormatInt(current, 10))
	return current, nil
}

type fakeFavouriteStore struct {
	mu         sync.Mutex
	favourites []models.Favourite
	findCalls  int
}

func newFakeFavouriteStore() *fakeFavouriteStore {
	return &fakeFavouriteStore{}
}

func (s *fakeFavouriteStore) Insert(_ context.Context, f *models.Favourite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	s.favourites = append(s.favourites, *f)
	return nil
}

func (s *fakeFavouriteStore) FindByUser(_ context.Context, userID string) ([]models.Favourite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	result := []models.Favourite{}
	for _, f := range s.favourites {
		if f.UserID == userID {
			result = append(result, f)
		}
	}
	return result, nil
}

func (s *fakeFavouriteStore) DeleteByUserAndProperty(_ context.Context, userID, propertyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favourites {
		if f.UserID == userID && f.PropertyID.Hex() == propertyID {
			s.favourites = append(s.favourites[:i], s.favourites[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeRecommendationStore struct {
	mu              sync.Mutex
	recommendations []models.Recommendation
	findCalls       int
}

func newFakeRecommendationStore() *fakeRecommendationStore {
	return &fakeRecommendationStore{}
}

func (s *fakeRecommendationStore) Insert(_ context.Context, r *models.Recommendation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	s.recommendations = append(s.recommendations, *r)
	return nil
}

func (s *fakeRecommendationStore) FindByRecipient(_ context.Context, userID string) ([]models.Recommendation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	result := []models.Recommendation{}
	for _, r := range s.recommendations {
		if r.ToUserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.Email] = *u
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}
