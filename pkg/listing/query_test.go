package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamped(t *testing.T) {
	query := SearchQuery{Limit: 0, Offset: -5}.Clamped()
	assert.Equal(t, int64(10), query.Limit)
	assert.Equal(t, int64(0), query.Offset)

	query = SearchQuery{Limit: 500, Offset: 20}.Clamped()
	assert.Equal(t, int64(100), query.Limit)
	assert.Equal(t, int64(20), query.Offset)

	query = SearchQuery{Approved: "maybe"}.Clamped()
	assert.Equal(t, ApprovedOnly, query.Approved)

	query = SearchQuery{Approved: ApprovedAll, Limit: 50}.Clamped()
	assert.Equal(t, ApprovedAll, query.Approved)
	assert.Equal(t, int64(50), query.Limit)
}

func TestCacheKeyCanonical(t *testing.T) {
	min := int64(5000)
	first := SearchQuery{
		City:      "hyderabad",
		Amenities: []string{"wifi", "cctv"},
		MinPrice:  &min,
		Limit:     10,
	}.Clamped()
	second := SearchQuery{
		City:      "hyderabad",
		Amenities: []string{"cctv", "wifi"},
		MinPrice:  &min,
		Limit:     10,
	}.Clamped()

	// Amenity order must not produce distinct keys.
	assert.Equal(t, first.CacheKey(), second.CacheKey())

	third := SearchQuery{City: "hyderabad", Limit: 10}.Clamped()
	assert.NotEqual(t, first.CacheKey(), third.CacheKey())

	paged := SearchQuery{City: "hyderabad", Limit: 10, Offset: 10}.Clamped()
	assert.NotEqual(t, third.CacheKey(), paged.CacheKey())
}

func TestCacheKeyDelimiterInValue(t *testing.T) {
	// A value carrying the next field's label must not shift content
	// across a field boundary and collide with a different query.
	first := SearchQuery{
		Gender:    "any",
		Amenities: []string{"a|amenities=b"},
		Limit:     10,
	}.Clamped()
	second := SearchQuery{
		Gender:    "any|amenities=a",
		Amenities: []string{"b"},
		Limit:     10,
	}.Clamped()
	assert.NotEqual(t, first.CacheKey(), second.CacheKey())

	withComma := SearchQuery{Amenities: []string{"a,b"}, Limit: 10}.Clamped()
	twoPlain := SearchQuery{Amenities: []string{"a", "b"}, Limit: 10}.Clamped()
	assert.NotEqual(t, withComma.CacheKey(), twoPlain.CacheKey())
}

func TestCacheable(t *testing.T) {
	assert.True(t, SearchQuery{}.Cacheable())
	assert.False(t, SearchQuery{SavedOnly: true, CallerId: 7}.Cacheable())
}
