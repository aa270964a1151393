package review

import "time"

type Review struct {
	Id        int64     `json:"id"`
	ListingId int64     `json:"listing_id"`
	UserId    int64     `json:"user_id"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Aggregate is the per-listing review rollup joined onto search pages.
// Recomputed on every enrichment pass, never persisted.
type Aggregate struct {
	Count   int64   `json:"review_count"`
	Average float64 `json:"review_average"`
}
