package listing

import "time"

// Room sharing tiers a PG can price separately.
const (
	TierSingle = "single"
	TierDouble = "double"
	TierTriple = "triple"
)

type Listing struct {
	Id             int64            `json:"id"`
	Title          string           `json:"title"`
	City           string           `json:"city"`
	Area           string           `json:"area"`
	Price          int64            `json:"price"`
	TierPrices     map[string]int64 `json:"tier_prices"`
	Amenities      []string         `json:"amenities"`
	Gender         string           `json:"gender"`
	Approved       bool             `json:"approved"`
	RoomsAvailable int32            `json:"rooms_available"`
	OwnerId        int64            `json:"owner_id"`
	TitleKey       string           `json:"-"`
	CityKey        string           `json:"-"`
	AreaKey        string           `json:"-"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	ReviewCount    int64            `json:"review_count"`
	ReviewAverage  float64          `json:"review_average"`
}
