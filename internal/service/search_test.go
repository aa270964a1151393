package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
	"github.com/findnearpg/findnearpg-sub000/pkg/review"
	"github.com/findnearpg/findnearpg-sub000/pkg/synonyms"
	"github.com/findnearpg/findnearpg-sub000/pkg/textnorm"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

// fakeListingRepo mirrors the store contract: structured filtering,
// recency order, store-level offset/limit. Listings are held newest
// first, as the real query returns them.
type fakeListingRepo struct {
	listings   []listing.Listing
	findCalls  int
	lastOffset int64
	lastLimit  int64
	failFind   bool
}

func (repo *fakeListingRepo) CreateTables(ctx context.Context) error { return nil }

func (repo *fakeListingRepo) FindListings(ctx context.Context, filter repository.ListingFilter, offset int64, limit int64) ([]listing.Listing, error) {
	repo.findCalls++
	repo.lastOffset = offset
	repo.lastLimit = limit
	if repo.failFind {
		return nil, customerror.NewError("fakeListingRepo.FindListings", "", "store unreachable")
	}
	matched := []listing.Listing{}
	for _, item := range repo.listings {
		if filter.Approved != nil && item.Approved != *filter.Approved {
			continue
		}
		if filter.Gender != "" && item.Gender != filter.Gender {
			continue
		}
		if !hasAllAmenities(item.Amenities, filter.Amenities) {
			continue
		}
		if filter.MinPrice != nil && item.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && item.Price > *filter.MaxPrice {
			continue
		}
		if filter.OwnerId != nil && item.OwnerId != *filter.OwnerId {
			continue
		}
		if filter.Ids != nil && !containsId(filter.Ids, item.Id) {
			continue
		}
		matched = append(matched, item)
	}
	if offset >= int64(len(matched)) {
		return []listing.Listing{}, nil
	}
	end := offset + limit
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[offset:end], nil
}

func (repo *fakeListingRepo) GetListing(ctx context.Context, id int64) (*listing.Listing, error) {
	return nil, nil
}

func (repo *fakeListingRepo) InsertListing(ctx context.Context, item *listing.Listing) (int64, error) {
	return 0, nil
}

func (repo *fakeListingRepo) UpdateListing(ctx context.Context, item *listing.Listing, user *user.User) error {
	return nil
}

func (repo *fakeListingRepo) DeleteListing(ctx context.Context, id int64, user *user.User) error {
	return nil
}

func (repo *fakeListingRepo) SetApproved(ctx context.Context, id int64, approved bool) error {
	return nil
}

func hasAllAmenities(have []string, want []string) bool {
	for _, amenity := range want {
		found := false
		for _, item := range have {
			if item == amenity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsId(ids []int64, id int64) bool {
	for _, item := range ids {
		if item == id {
			return true
		}
	}
	return false
}

type fakeSavedRepo struct {
	ids   []int64
	calls int
}

func (repo *fakeSavedRepo) CreateTables(ctx context.Context) error { return nil }

func (repo *fakeSavedRepo) SavedListingIds(ctx context.Context, userId int64) ([]int64, error) {
	repo.calls++
	return repo.ids, nil
}

func (repo *fakeSavedRepo) InsertSaved(ctx context.Context, userId int64, listingId int64) (int64, error) {
	return 0, nil
}

func (repo *fakeSavedRepo) DeleteSaved(ctx context.Context, userId int64, listingId int64) error {
	return nil
}

type fakeReviewRepo struct {
	aggregates map[int64]review.Aggregate
	calls      int
}

func (repo *fakeReviewRepo) CreateTables(ctx context.Context) error { return nil }

func (repo *fakeReviewRepo) GetReviews(ctx context.Context, listingId int64) ([]review.Review, error) {
	return nil, nil
}

func (repo *fakeReviewRepo) InsertReview(ctx context.Context, item *review.Review) (int64, error) {
	return 0, nil
}

func (repo *fakeReviewRepo) AggregateForListings(ctx context.Context, listingIds []int64) (map[int64]review.Aggregate, error) {
	repo.calls++
	result := map[int64]review.Aggregate{}
	for _, id := range listingIds {
		if aggregate, ok := repo.aggregates[id]; ok {
			result[id] = aggregate
		}
	}
	return result, nil
}

type fakeCache struct {
	entries map[string][]listing.Listing
	gets    int
	puts    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]listing.Listing{}}
}

func (cache *fakeCache) Get(ctx context.Context, key string) ([]listing.Listing, bool) {
	cache.gets++
	page, ok := cache.entries[key]
	return page, ok
}

func (cache *fakeCache) Put(ctx context.Context, key string, page []listing.Listing, ttl time.Duration) {
	cache.puts++
	cache.entries[key] = page
}

func makeListing(id int64, title, city, area string, price int64, age time.Duration) listing.Listing {
	return listing.Listing{
		Id:        id,
		Title:     title,
		City:      city,
		Area:      area,
		Price:     price,
		Amenities: []string{},
		Gender:    "any",
		Approved:  true,
		OwnerId:   1,
		TitleKey:  textnorm.Normalize(title),
		CityKey:   textnorm.Normalize(city),
		AreaKey:   textnorm.Normalize(area),
		CreatedAt: time.Now().Add(-age),
	}
}

func newTestSearchService(listingRepo *fakeListingRepo, savedRepo *fakeSavedRepo, reviewRepo *fakeReviewRepo, cache *fakeCache) SearchServiceI {
	return NewSearchService(listingRepo, savedRepo, reviewRepo, cache, synonyms.Default(), "localhost", "8080")
}

func resultIds(page []listing.Listing) []int64 {
	ids := make([]int64, 0, len(page))
	for _, item := range page {
		ids = append(ids, item.Id)
	}
	return ids
}

func TestSearchPlainPagination(t *testing.T) {
	listingRepo := &fakeListingRepo{}
	for id := int64(1); id <= 35; id++ {
		listingRepo.listings = append(listingRepo.listings,
			makeListing(id, "PG", "Hyderabad", "", 8000, time.Duration(id)*time.Minute))
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{Limit: 10, Offset: 20})
	require.NoError(t, err)

	// Offset/limit stay at the store level on the non-fuzzy path.
	assert.Equal(t, int64(20), listingRepo.lastOffset)
	assert.Equal(t, int64(10), listingRepo.lastLimit)
	assert.Equal(t, []int64{21, 22, 23, 24, 25, 26, 27, 28, 29, 30}, resultIds(page))
}

func TestSearchFuzzyPaginationNoGaps(t *testing.T) {
	listingRepo := &fakeListingRepo{}
	for id := int64(1); id <= 30; id++ {
		city := "Hyderabad"
		if id%3 == 0 {
			city = "Chennai"
		}
		listingRepo.listings = append(listingRepo.listings,
			makeListing(id, "PG", city, "", 8000, time.Duration(id)*time.Minute))
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	full, err := searchService.Search(context.Background(), listing.SearchQuery{City: "hyderabad", Limit: 20})
	require.NoError(t, err)
	// The over-fetch window replaces store-level pagination.
	assert.Equal(t, int64(0), listingRepo.lastOffset)
	assert.Equal(t, int64(240), listingRepo.lastLimit)

	first, err := searchService.Search(context.Background(), listing.SearchQuery{City: "hyderabad", Limit: 5})
	require.NoError(t, err)
	second, err := searchService.Search(context.Background(), listing.SearchQuery{City: "hyderabad", Limit: 5, Offset: 5})
	require.NoError(t, err)

	combined := append(resultIds(first), resultIds(second)...)
	assert.Equal(t, resultIds(full)[:10], combined)
}

func TestSearchFuzzyTypoWithPriceBounds(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "Sunrise PG", "Hyderabad", "Madhapur", 9000, time.Hour),
			makeListing(2, "Sunset PG", "Chennai", "Adyar", 9000, 2*time.Hour),
		},
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	min := int64(5000)
	max := int64(15000)
	page, err := searchService.Search(context.Background(), listing.SearchQuery{
		City:     "hyderbad",
		MinPrice: &min,
		MaxPrice: &max,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resultIds(page))
}

func TestSearchSynonymCity(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "Marine PG", "Mumbai", "Andheri", 12000, time.Hour),
			makeListing(2, "Lake PG", "Pune", "Kothrud", 12000, 2*time.Hour),
		},
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{City: "bombay", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resultIds(page))
}

func TestSearchAreaMatchesTitleField(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "Cozy PG near Gachibowli", "Hyderabad", "", 10000, time.Hour),
			makeListing(2, "Budget PG", "Hyderabad", "Uppal", 10000, 2*time.Hour),
		},
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{Area: "gachibowli", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resultIds(page))
}

func TestSearchAllTokensRequired(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "PG", "Bangalore", "HSR Layout", 9000, time.Hour),
			makeListing(2, "PG", "Bangalore", "HSR", 9000, 2*time.Hour),
			makeListing(3, "PG", "Bangalore", "BTM Layout", 9000, 3*time.Hour),
		},
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{Area: "hsr layout", Limit: 10})
	require.NoError(t, err)
	// "hsr" rules out listing 3, "layout" rules out listing 2.
	assert.Equal(t, []int64{1}, resultIds(page))
}

func TestSearchAmenitiesAllOf(t *testing.T) {
	wifiOnly := makeListing(1, "PG A", "Bangalore", "", 9000, time.Hour)
	wifiOnly.Amenities = []string{"wifi"}
	full := makeListing(2, "PG B", "Bangalore", "", 9000, 2*time.Hour)
	full.Amenities = []string{"wifi", "cctv", "laundry"}

	listingRepo := &fakeListingRepo{listings: []listing.Listing{wifiOnly, full}}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{
		Amenities: []string{"wifi", "cctv"},
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, resultIds(page))
}

func TestSearchSavedOrderAndCacheBypass(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "PG 1", "Pune", "", 9000, time.Hour),
			makeListing(2, "PG 2", "Pune", "", 9000, 2*time.Hour),
			makeListing(3, "PG 3", "Pune", "", 9000, 3*time.Hour),
		},
	}
	savedRepo := &fakeSavedRepo{ids: []int64{3, 1, 2}}
	cache := newFakeCache()
	searchService := newTestSearchService(listingRepo, savedRepo, &fakeReviewRepo{}, cache)

	page, err := searchService.Search(context.Background(), listing.SearchQuery{
		SavedOnly: true,
		CallerId:  7,
		Limit:     10,
	})
	require.NoError(t, err)

	// Save order wins over listing recency.
	assert.Equal(t, []int64{3, 1, 2}, resultIds(page))
	assert.Equal(t, 0, cache.gets)
	assert.Equal(t, 0, cache.puts)
}

func TestSearchSavedEmptyShortCircuits(t *testing.T) {
	listingRepo := &fakeListingRepo{}
	reviewRepo := &fakeReviewRepo{}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{ids: []int64{}}, reviewRepo, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{
		SavedOnly: true,
		CallerId:  7,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, 0, listingRepo.findCalls)
	assert.Equal(t, 0, reviewRepo.calls)
}

func TestSearchCacheHit(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{makeListing(1, "PG", "Delhi", "", 7000, time.Hour)},
	}
	cache := newFakeCache()
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, cache)

	query := listing.SearchQuery{Limit: 10}
	first, err := searchService.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.puts)
	assert.Equal(t, 1, listingRepo.findCalls)

	// A store change within the TTL window is not observed.
	listingRepo.listings = append([]listing.Listing{makeListing(2, "PG", "Delhi", "", 7000, time.Minute)}, listingRepo.listings...)
	second, err := searchService.Search(context.Background(), query)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, listingRepo.findCalls)
	assert.Equal(t, 1, cache.puts)
}

func TestSearchEnrichment(t *testing.T) {
	listingRepo := &fakeListingRepo{
		listings: []listing.Listing{
			makeListing(1, "PG 1", "Kochi", "", 9000, time.Hour),
			makeListing(2, "PG 2", "Kochi", "", 9000, 2*time.Hour),
		},
	}
	reviewRepo := &fakeReviewRepo{
		aggregates: map[int64]review.Aggregate{
			1: {Count: 3, Average: 4.5},
		},
	}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, reviewRepo, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, int64(3), page[0].ReviewCount)
	assert.Equal(t, 4.5, page[0].ReviewAverage)
	assert.Equal(t, int64(0), page[1].ReviewCount)
	assert.Equal(t, 0.0, page[1].ReviewAverage)
	assert.Equal(t, 1, reviewRepo.calls)
}

func TestSearchStoreFailureNotCached(t *testing.T) {
	listingRepo := &fakeListingRepo{failFind: true}
	cache := newFakeCache()
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, cache)

	_, err := searchService.Search(context.Background(), listing.SearchQuery{City: "mumbai", Limit: 10})
	require.Error(t, err)
	assert.Equal(t, 0, cache.puts)
}

func TestSearchUnapprovedExcludedByDefault(t *testing.T) {
	approved := makeListing(1, "PG A", "Jaipur", "", 9000, time.Hour)
	pending := makeListing(2, "PG B", "Jaipur", "", 9000, 2*time.Hour)
	pending.Approved = false

	listingRepo := &fakeListingRepo{listings: []listing.Listing{approved, pending}}
	searchService := newTestSearchService(listingRepo, &fakeSavedRepo{}, &fakeReviewRepo{}, newFakeCache())

	page, err := searchService.Search(context.Background(), listing.SearchQuery{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resultIds(page))

	page, err = searchService.Search(context.Background(), listing.SearchQuery{Approved: listing.UnapprovedOnly, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, resultIds(page))

	page, err = searchService.Search(context.Background(), listing.SearchQuery{Approved: listing.ApprovedAll, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, resultIds(page))
}
