package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/review"
)

type ReviewRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetReviews(ctx context.Context, listingId int64) ([]review.Review, error)
	InsertReview(ctx context.Context, item *review.Review) (int64, error)
	AggregateForListings(ctx context.Context, listingIds []int64) (map[int64]review.Aggregate, error)
}

type ReviewRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewReviewRepository(pool *pgxpool.Pool, host string, port string) ReviewRepositoryI {
	return &ReviewRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (reviewRepo *ReviewRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS review (
		id BIGSERIAL PRIMARY KEY,
		listing_id BIGINT NOT NULL REFERENCES listing(id) ON DELETE CASCADE,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := reviewRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("reviewRepo.CreateTables", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}

	createIndexQuery := `CREATE INDEX IF NOT EXISTS review_listing_id_idx ON review(listing_id);`
	_, err = reviewRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("reviewRepo.CreateTables", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	return nil
}

func (reviewRepo *ReviewRepository) GetReviews(ctx context.Context, listingId int64) ([]review.Review, error) {
	query := `SELECT id, listing_id, user_id, rating, comment, created_at FROM review WHERE listing_id = $1 ORDER BY created_at DESC;`
	rows, err := reviewRepo.Pool.Query(ctx, query, listingId)
	if err != nil {
		return nil, customerror.NewError("reviewRepo.GetReviews", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	reviews := []review.Review{}
	for rows.Next() {
		var item review.Review
		err := rows.Scan(&item.Id, &item.ListingId, &item.UserId, &item.Rating, &item.Comment, &item.CreatedAt)
		if err != nil {
			return nil, customerror.NewError("reviewRepo.GetReviews", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
		}
		reviews = append(reviews, item)
	}
	return reviews, nil
}

func (reviewRepo *ReviewRepository) InsertReview(ctx context.Context, item *review.Review) (int64, error) {
	query := `INSERT INTO review (listing_id, user_id, rating, comment) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	err := reviewRepo.Pool.QueryRow(ctx, query, item.ListingId, item.UserId, item.Rating, item.Comment).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("reviewRepo.InsertReview", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	return id, nil
}

// AggregateForListings batches the review rollup for one result page in
// a single query. Listings without reviews are simply absent from the
// returned map.
func (reviewRepo *ReviewRepository) AggregateForListings(ctx context.Context, listingIds []int64) (map[int64]review.Aggregate, error) {
	aggregates := map[int64]review.Aggregate{}
	if len(listingIds) == 0 {
		return aggregates, nil
	}
	query := `SELECT listing_id, COUNT(*), ROUND(AVG(rating)::numeric, 1)::float8 FROM review WHERE listing_id = ANY($1) GROUP BY listing_id;`
	rows, err := reviewRepo.Pool.Query(ctx, query, listingIds)
	if err != nil {
		return nil, customerror.NewError("reviewRepo.AggregateForListings", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
	}
	for rows.Next() {
		var listingId int64
		var aggregate review.Aggregate
		err := rows.Scan(&listingId, &aggregate.Count, &aggregate.Average)
		if err != nil {
			return nil, customerror.NewError("reviewRepo.AggregateForListings", reviewRepo.Host+":"+reviewRepo.Port, err.Error())
		}
		aggregates[listingId] = aggregate
	}
	return aggregates, nil
}
