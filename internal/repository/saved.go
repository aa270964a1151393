package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
)

type SavedRepositoryI interface {
	CreateTables(ctx context.Context) error
	SavedListingIds(ctx context.Context, userId int64) ([]int64, error)
	InsertSaved(ctx context.Context, userId int64, listingId int64) (int64, error)
	DeleteSaved(ctx context.Context, userId int64, listingId int64) error
}

type SavedRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewSavedRepository(pool *pgxpool.Pool, host string, port string) SavedRepositoryI {
	return &SavedRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (savedRepo *SavedRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS saved_listing (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		listing_id BIGINT NOT NULL REFERENCES listing(id) ON DELETE CASCADE,
		CONSTRAINT saved_listing_user_listing_unique UNIQUE (user_id, listing_id)
	);`
	_, err := savedRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("savedRepo.CreateTables", savedRepo.Host+":"+savedRepo.Port, err.Error())
	}
	return nil
}

// SavedListingIds returns the caller's saved listing ids ordered by save
// recency, most recent first. The search pipeline uses this order to
// restore saved pages after pagination.
func (savedRepo *SavedRepository) SavedListingIds(ctx context.Context, userId int64) ([]int64, error) {
	query := `SELECT listing_id FROM saved_listing WHERE user_id = $1 ORDER BY id DESC;`
	rows, err := savedRepo.Pool.Query(ctx, query, userId)
	if err != nil {
		return nil, customerror.NewError("savedRepo.SavedListingIds", savedRepo.Host+":"+savedRepo.Port, err.Error())
	}
	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, customerror.NewError("savedRepo.SavedListingIds", savedRepo.Host+":"+savedRepo.Port, err.Error())
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (savedRepo *SavedRepository) InsertSaved(ctx context.Context, userId int64, listingId int64) (int64, error) {
	query := `INSERT INTO saved_listing (user_id, listing_id) VALUES ($1, $2)
	ON CONFLICT (user_id, listing_id) DO UPDATE SET user_id = EXCLUDED.user_id RETURNING id`
	var id int64
	err := savedRepo.Pool.QueryRow(ctx, query, userId, listingId).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("savedRepo.InsertSaved", savedRepo.Host+":"+savedRepo.Port, err.Error())
	}
	return id, nil
}

func (savedRepo *SavedRepository) DeleteSaved(ctx context.Context, userId int64, listingId int64) error {
	query := `DELETE FROM saved_listing WHERE user_id = $1 AND listing_id = $2`
	_, err := savedRepo.Pool.Exec(ctx, query, userId, listingId)
	if err != nil {
		return customerror.NewError("savedRepo.DeleteSaved", savedRepo.Host+":"+savedRepo.Port, err.Error())
	}
	return nil
}
