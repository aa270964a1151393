package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/fuzzy"
	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
	"github.com/findnearpg/findnearpg-sub000/pkg/searchcache"
	"github.com/findnearpg/findnearpg-sub000/pkg/synonyms"
	"github.com/findnearpg/findnearpg-sub000/pkg/textnorm"
)

const searchCacheTTL = 30 * time.Second

// Fuzzy matching cannot run inside the store query, so text searches
// fetch a bounded superset of candidates and filter in memory before
// slicing the page. The window can under-cover when matches are sparse
// among recent listings; that trade-off is accepted.
const (
	overFetchFloor  = int64(120)
	overFetchFactor = int64(12)
)

type SearchServiceI interface {
	Search(ctx context.Context, query listing.SearchQuery) ([]listing.Listing, error)
}

type SearchService struct {
	listingRepo repository.ListingRepositoryI
	savedRepo   repository.SavedRepositoryI
	reviewRepo  repository.ReviewRepositoryI
	cache       searchcache.CacheI
	synonyms    *synonyms.Table
	host        string
	port        string
}

func NewSearchService(
	listingRepo repository.ListingRepositoryI,
	savedRepo repository.SavedRepositoryI,
	reviewRepo repository.ReviewRepositoryI,
	cache searchcache.CacheI,
	synonymTable *synonyms.Table,
	host string,
	port string,
) SearchServiceI {
	return &SearchService{
		listingRepo: listingRepo,
		savedRepo:   savedRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
		synonyms:    synonymTable,
		host:        host,
		port:        port,
	}
}

// Search runs the whole pipeline: structured filter, optional fuzzy
// text filter over an over-fetched candidate set, pagination, saved
// reordering and review enrichment. It returns either a complete page
// or an error, never a partial one.
func (searchService *SearchService) Search(ctx context.Context, query listing.SearchQuery) ([]listing.Listing, error) {
	query = query.Clamped()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	var savedIds []int64
	if query.SavedOnly {
		var err error
		savedIds, err = searchService.savedRepo.SavedListingIds(ctx, query.CallerId)
		if err != nil {
			customeErr := err.(customerror.CustomError)
			customeErr.AppendModule("SearchService.Search")
			return nil, customeErr
		}
		if len(savedIds) == 0 {
			return []listing.Listing{}, nil
		}
	}

	cacheKey := query.CacheKey()
	if query.Cacheable() {
		if page, ok := searchService.cache.Get(ctx, cacheKey); ok {
			return page, nil
		}
	}

	filter := buildFilter(query, savedIds)
	cityTokens := textnorm.Tokens(query.City)
	areaTokens := textnorm.Tokens(query.Area)

	var page []listing.Listing
	if len(cityTokens) == 0 && len(areaTokens) == 0 {
		rows, err := searchService.listingRepo.FindListings(ctx, filter, query.Offset, query.Limit)
		if err != nil {
			customeErr := err.(customerror.CustomError)
			customeErr.AppendModule("SearchService.Search")
			return nil, customeErr
		}
		page = rows
	} else {
		fetchLimit := query.Limit * overFetchFactor
		if fetchLimit < overFetchFloor {
			fetchLimit = overFetchFloor
		}
		rows, err := searchService.listingRepo.FindListings(ctx, filter, 0, fetchLimit)
		if err != nil {
			customeErr := err.(customerror.CustomError)
			customeErr.AppendModule("SearchService.Search")
			return nil, customeErr
		}
		matched := []listing.Listing{}
		for _, item := range rows {
			if searchService.matchesTokens(item, cityTokens) && searchService.matchesTokens(item, areaTokens) {
				matched = append(matched, item)
			}
		}
		page = slicePage(matched, query.Offset, query.Limit)
	}

	if query.SavedOnly {
		page = reorderBySaved(page, savedIds)
	}

	page, err := searchService.enrich(ctx, page)
	if err != nil {
		return nil, err
	}

	if query.Cacheable() {
		searchService.cache.Put(ctx, cacheKey, page, searchCacheTTL)
	}
	return page, nil
}

func buildFilter(query listing.SearchQuery, savedIds []int64) repository.ListingFilter {
	filter := repository.ListingFilter{
		Gender:    query.Gender,
		Amenities: query.Amenities,
		MinPrice:  query.MinPrice,
		MaxPrice:  query.MaxPrice,
		OwnerId:   query.OwnerId,
		Ids:       savedIds,
	}
	switch query.Approved {
	case listing.ApprovedAll:
	case listing.UnapprovedOnly:
		approved := false
		filter.Approved = &approved
	default:
		approved := true
		filter.Approved = &approved
	}
	return filter
}

// matchesTokens applies one text sub-query (city or area) to a listing.
// Every query token must match at least one candidate token; candidate
// tokens come from the normalized title, city and area interchangeably.
// A query token matches through any of its synonym aliases.
func (searchService *SearchService) matchesTokens(item listing.Listing, queryTokens []string) bool {
	if len(queryTokens) == 0 {
		return true
	}
	candidates := strings.Fields(item.TitleKey)
	candidates = append(candidates, strings.Fields(item.CityKey)...)
	candidates = append(candidates, strings.Fields(item.AreaKey)...)
	for _, token := range queryTokens {
		if !searchService.tokenMatchesAny(token, candidates) {
			return false
		}
	}
	return true
}

func (searchService *SearchService) tokenMatchesAny(token string, candidates []string) bool {
	for _, alias := range searchService.synonyms.Expand(token) {
		for _, candidate := range candidates {
			if fuzzy.Match(alias, candidate) {
				return true
			}
		}
	}
	return false
}

func slicePage(items []listing.Listing, offset int64, limit int64) []listing.Listing {
	if offset >= int64(len(items)) {
		return []listing.Listing{}
	}
	end := offset + limit
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[offset:end]
}

// reorderBySaved restores the caller's save order (most recent save
// first) on an already-sliced page. Runs before enrichment and only on
// the saved-only path.
func reorderBySaved(page []listing.Listing, savedIds []int64) []listing.Listing {
	position := map[int64]int{}
	for index, id := range savedIds {
		position[id] = index
	}
	sort.SliceStable(page, func(i, j int) bool {
		return position[page[i].Id] < position[page[j].Id]
	})
	return page
}

// enrich joins the batched review aggregates onto the page. Membership
// and order never change here; ids without reviews stay at 0/0.0.
func (searchService *SearchService) enrich(ctx context.Context, page []listing.Listing) ([]listing.Listing, error) {
	if len(page) == 0 {
		return page, nil
	}
	ids := make([]int64, 0, len(page))
	for _, item := range page {
		ids = append(ids, item.Id)
	}
	aggregates, err := searchService.reviewRepo.AggregateForListings(ctx, ids)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("SearchService.enrich")
		return nil, customeErr
	}
	for index := range page {
		aggregate := aggregates[page[index].Id]
		page[index].ReviewCount = aggregate.Count
		page[index].ReviewAverage = aggregate.Average
	}
	return page, nil
}
