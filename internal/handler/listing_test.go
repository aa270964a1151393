package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	modelsListing "github.com/findnearpg/findnearpg-sub000/pkg/listing"
	modelsUser "github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type fakeSearchService struct {
	lastQuery modelsListing.SearchQuery
	calls     int
	page      []modelsListing.Listing
	fail      bool
}

func (searchService *fakeSearchService) Search(ctx context.Context, query modelsListing.SearchQuery) ([]modelsListing.Listing, error) {
	searchService.calls++
	searchService.lastQuery = query
	if searchService.fail {
		return nil, customerror.NewError("fakeSearchService.Search", "", "boom")
	}
	return searchService.page, nil
}

// stubMiddlewares swaps session resolution for a fixed user so handler
// behavior can be exercised without a database.
type stubMiddlewares struct {
	user *modelsUser.User
}

func (stub *stubMiddlewares) RequestId() gin.HandlerFunc {
	return func(ctx *gin.Context) { ctx.Next() }
}

func (stub *stubMiddlewares) ValidUser() gin.HandlerFunc {
	return stub.OptionalUser()
}

func (stub *stubMiddlewares) OptionalUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if stub.user != nil {
			ctx.Set("user", stub.user)
		}
		ctx.Next()
	}
}

func (stub *stubMiddlewares) AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) { ctx.Next() }
}

func (stub *stubMiddlewares) MyListing() gin.HandlerFunc {
	return func(ctx *gin.Context) { ctx.Next() }
}

func newSearchRouter(searchService *fakeSearchService, sessionUser *modelsUser.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	listingHandler := NewListingHandler(nil, searchService, "localhost", "8080", &stubMiddlewares{user: sessionUser})
	listingHandler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestSearchListingsSavedWithoutSession(t *testing.T) {
	searchService := &fakeSearchService{}
	router := newSearchRouter(searchService, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/listings/?saved=true", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, 0, searchService.calls)

	var response struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, customerror.ErrSavedRequiresUser.Error(), response.Error)
}

func TestSearchListingsSavedWithSession(t *testing.T) {
	searchService := &fakeSearchService{}
	router := newSearchRouter(searchService, &modelsUser.User{Id: 42, Role: modelsUser.RoleUser})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/listings/?saved=true", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, searchService.lastQuery.SavedOnly)
	assert.Equal(t, int64(42), searchService.lastQuery.CallerId)
}

func TestSearchListingsParamParsing(t *testing.T) {
	searchService := &fakeSearchService{}
	router := newSearchRouter(searchService, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet,
		"/api/v1/listings/?city=hyderbad&area=madhapur&gender=female&amenities=wifi,%20cctv,&minPrice=5000&maxPrice=junk&ownerId=9&limit=junk&offset=-3", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	query := searchService.lastQuery
	assert.Equal(t, "hyderbad", query.City)
	assert.Equal(t, "madhapur", query.Area)
	assert.Equal(t, "female", query.Gender)
	assert.Equal(t, []string{"wifi", "cctv"}, query.Amenities)
	require.NotNil(t, query.MinPrice)
	assert.Equal(t, int64(5000), *query.MinPrice)
	assert.Nil(t, query.MaxPrice)
	require.NotNil(t, query.OwnerId)
	assert.Equal(t, int64(9), *query.OwnerId)
	assert.Equal(t, int64(10), query.Limit)
	assert.Equal(t, int64(-3), query.Offset)
	assert.False(t, query.SavedOnly)
}

func TestSearchListingsEnvelope(t *testing.T) {
	searchService := &fakeSearchService{
		page: []modelsListing.Listing{{Id: 1, Title: "Sunrise PG", ReviewCount: 2, ReviewAverage: 4.0}},
	}
	router := newSearchRouter(searchService, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/listings/", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	var response struct {
		Status int `json:"status"`
		Body   struct {
			Listings []modelsListing.Listing `json:"listings"`
		} `json:"body"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, http.StatusOK, response.Status)
	require.Len(t, response.Body.Listings, 1)
	assert.Equal(t, int64(2), response.Body.Listings[0].ReviewCount)
}

func TestSearchListingsFailure(t *testing.T) {
	searchService := &fakeSearchService{fail: true}
	router := newSearchRouter(searchService, nil)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/listings/?city=pune", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
