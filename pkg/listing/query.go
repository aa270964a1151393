package listing

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Approval filter states for SearchQuery.Approved.
const (
	ApprovedOnly   = "true"
	UnapprovedOnly = "false"
	ApprovedAll    = "all"
)

// SearchQuery is an immutable description of one search request. Build
// it, call Clamped, and pass it down; nothing mutates it afterwards.
type SearchQuery struct {
	City      string
	Area      string
	Gender    string
	Amenities []string
	MinPrice  *int64
	MaxPrice  *int64
	OwnerId   *int64
	Approved  string
	SavedOnly bool
	CallerId  int64
	Limit     int64
	Offset    int64
}

// Clamped returns a copy with limit forced into [1,100] (default 10),
// offset forced to >= 0 and the approval state defaulted. Bad numeric
// input is clamped, never rejected.
func (query SearchQuery) Clamped() SearchQuery {
	if query.Limit < 1 {
		query.Limit = 10
	}
	if query.Limit > 100 {
		query.Limit = 100
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	switch query.Approved {
	case ApprovedOnly, UnapprovedOnly, ApprovedAll:
	default:
		query.Approved = ApprovedOnly
	}
	return query
}

// Cacheable reports whether the response may be served from or written
// to the shared cache. Personalized (saved-only) results never are.
func (query SearchQuery) Cacheable() bool {
	return !query.SavedOnly
}

// CacheKey serializes every non-personalization parameter in a fixed
// field order, amenities sorted, under a versioned prefix. Two requests
// with the same effective parameters always collide on the same key.
// Text fields are query-escaped so a value carrying a delimiter cannot
// shift content across a field boundary.
func (query SearchQuery) CacheKey() string {
	amenities := make([]string, 0, len(query.Amenities))
	for _, amenity := range query.Amenities {
		amenities = append(amenities, url.QueryEscape(amenity))
	}
	sort.Strings(amenities)
	return fmt.Sprintf("search:v1|city=%s|area=%s|gender=%s|amenities=%s|min=%s|max=%s|owner=%s|approved=%s|limit=%d|offset=%d",
		url.QueryEscape(query.City),
		url.QueryEscape(query.Area),
		url.QueryEscape(query.Gender),
		strings.Join(amenities, ","),
		optionalInt(query.MinPrice),
		optionalInt(query.MaxPrice),
		optionalInt(query.OwnerId),
		query.Approved,
		query.Limit,
		query.Offset,
	)
}

func optionalInt(value *int64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatInt(*value, 10)
}
