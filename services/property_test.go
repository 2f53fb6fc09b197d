package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-listing-service/cache"
	domainerrors "property-listing-service/errors"
	"property-listing-service/models"
	"property-listing-service/store"
	"property-listing-service/validation"
)

func newTestPropertyService(t *testing.T) (*PropertyService, *fakePropertyStore, *fakeCache) {
	t.Helper()
	st := newFakePropertyStore()
	c := newFakeCache()
	svc := NewPropertyService(st, c, cache.NewKeyBuilder("pls"), validation.New(), discardLogger())
	return svc, st, c
}

func buildProperty(input CreatePropertyInput, ownerID string) *models.Property {
	return &models.Property{
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
		CreatedBy: ownerID,
		CreatedAt: time.Now().UTC(),
	}
}

func validCreateInput() CreatePropertyInput {
	return CreatePropertyInput{
		Title:       "Sunny family house",
		Description: "Three bedrooms near the park",
		Price:       250000,
		Location: LocationInput{
			Address: "12 Oak Street",
			City:    "Austin",
			State:   "TX",
			ZipCode: "78701",
			Country: "USA",
		},
		Bedrooms:  3,
		Bathrooms: 2,
		Area:      1600,
		Type:      "House",
		Status:    "For Sale",
	}
}

func TestPropertyService_CreateThenGet(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())
	assert.Equal(t, "user-1", created.CreatedBy)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Price, got.Price)
	assert.Equal(t, created.Location, got.Location)
	assert.Equal(t, "user-1", got.CreatedBy)
}

func TestPropertyService_SecondGetServedFromCache(t *testing.T) {
	svc, st, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	require.Equal(t, 1, st.findCalls)

	_, err = svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, st.findCalls, "second get must not hit the store")
}

func TestPropertyService_UpdateInvalidatesEntityCache(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)
	id := created.ID.Hex()

	_, err = svc.Get(ctx, id)
	require.NoError(t, err)

	newPrice := 260000.0
	_, err = svc.Update(ctx, id, "user-1", UpdatePropertyInput{Price: &newPrice})
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, newPrice, got.Price, "get after update must never return pre-update data")
}

func TestPropertyService_DeleteInvalidatesEntityCache(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)
	id := created.ID.Hex()

	_, err = svc.Get(ctx, id)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, id, "user-1"))

	_, err = svc.Get(ctx, id)
	assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
}

func TestPropertyService_DuplicateAddressConflict(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)

	input := validCreateInput()
	input.Title = "Different title, same address"
	_, err = svc.Create(ctx, input, "user-2")
	assert.Equal(t, domainerrors.CodeConflict, domainerrors.CodeOf(err))
}

func TestPropertyService_NonOwnerMutationForbidden(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)
	id := created.ID.Hex()

	newPrice := 1.0
	_, err = svc.Update(ctx, id, "user-2", UpdatePropertyInput{Price: &newPrice})
	assert.Equal(t, domainerrors.CodeForbidden, domainerrors.CodeOf(err))

	err = svc.Delete(ctx, id, "user-2")
	assert.Equal(t, domainerrors.CodeForbidden, domainerrors.CodeOf(err))

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, got.Price, "failed mutations must leave the record untouched")
}

func TestPropertyService_ListPagination(t *testing.T) {
	svc, st, _ := newTestPropertyService(t)
	ctx := context.Background()

	for i := 0; i < 125; i++ {
		input := validCreateInput()
		input.Location.Address = input.Location.Address + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		require.NoError(t, st.Insert(ctx, buildProperty(input, "user-1")))
	}

	page1, err := svc.List(ctx, 1, 50)
	require.NoError(t, err)
	assert.Len(t, page1.Properties, 50)
	assert.True(t, page1.HasMore)

	page3, err := svc.List(ctx, 3, 50)
	require.NoError(t, err)
	assert.Len(t, page3.Properties, 25)
	assert.False(t, page3.HasMore)
}

func TestPropertyService_ListServedFromCacheUntilWrite(t *testing.T) {
	svc, st, _ := newTestPropertyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)

	_, err = svc.List(ctx, 1, 50)
	require.NoError(t, err)
	require.Equal(t, 1, st.pageCalls)

	_, err = svc.List(ctx, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, st.pageCalls, "repeated list must be served from cache")

	input := validCreateInput()
	input.Location.Address = "99 Elm Street"
	_, err = svc.Create(ctx, input, "user-1")
	require.NoError(t, err)

	_, err = svc.List(ctx, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, st.pageCalls, "a write must invalidate cached pages")
}

func TestPropertyService_SearchServedFromCacheUntilWrite(t *testing.T) {
	svc, st, _ := newTestPropertyService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)

	filter := store.PropertyFilter{City: "Austin", Type: "House"}

	first, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Equal(t, 1, st.filterCalls)

	_, err = svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 1, st.filterCalls, "identical search must be served from cache")

	newPrice := 260000.0
	_, err = svc.Update(ctx, first[0].ID.Hex(), "user-1", UpdatePropertyInput{Price: &newPrice})
	require.NoError(t, err)

	refreshed, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, 2, st.filterCalls)
	assert.Equal(t, newPrice, refreshed[0].Price)
}

func TestPropertyService_CacheFailureFallsThroughToStore(t *testing.T) {
	svc, st, c := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "user-1")
	require.NoError(t, err)

	c.fail = true

	got, err := svc.Get(ctx, created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, 1, st.findCalls)

	newPrice := 300000.0
	updated, err := svc.Update(ctx, created.ID.Hex(), "user-1", UpdatePropertyInput{Price: &newPrice})
	require.NoError(t, err, "cache failures must not fail writes")
	assert.Equal(t, newPrice, updated.Price)
}

func TestPropertyService_ValidationErrors(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	input := validCreateInput()
	input.Title = ""
	input.Price = 0
	input.Type = "Castle"
	input.Location.City = ""

	_, err := svc.Create(ctx, input, "user-1")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "type")
	assert.Contains(t, fields, "city")
}

func TestPropertyService_GetRejectsMalformedID(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	_, err := svc.Get(context.Background(), "not-an-object-id")
	assert.Equal(t, domainerrors.CodeValidation, domainerrors.CodeOf(err))
}

func TestPropertyService_GetMissingReturnsNotFound(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)

	_, err := svc.Get(context.Background(), "64a000000000000000000000")
	assert.Equal(t, domainerrors.CodeNotFound, domainerrors.CodeOf(err))
}

func TestPropertyService_StoreFailureIsDependencyError(t *testing.T) {
	svc, st, _ := newTestPropertyService(t)
	ctx := context.Background()

	st.forcedErr = errStoreDown

	_, err := svc.Get(ctx, "64a000000000000000000000")
	assert.Equal(t, domainerrors.CodeDependency, domainerrors.CodeOf(err))

	_, err = svc.List(ctx, 1, 50)
	assert.Equal(t, domainerrors.CodeDependency, domainerrors.CodeOf(err))
}

func TestPropertyService_OwnershipScenario(t *testing.T) {
	svc, _, _ := newTestPropertyService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCreateInput(), "U1")
	require.NoError(t, err)
	id := created.ID.Hex()

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "U1", got.CreatedBy)

	newPrice := 260000.0
	_, err = svc.Update(ctx, id, "U2", UpdatePropertyInput{Price: &newPrice})
	require.Equal(t, domainerrors.CodeForbidden, domainerrors.CodeOf(err))

	_, err = svc.Update(ctx, id, "U1", UpdatePropertyInput{Price: &newPrice})
	require.NoError(t, err)

	got, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 260000.0, got.Price)
}
