package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/listing"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

// ListingFilter is the structured, store-level part of a search: every
// clause here is expressible as SQL. Free-text matching is not and is
// applied in memory by the search service.
type ListingFilter struct {
	Gender    string
	Amenities []string
	MinPrice  *int64
	MaxPrice  *int64
	OwnerId   *int64
	Approved  *bool
	Ids       []int64
}

type ListingRepositoryI interface {
	CreateTables(ctx context.Context) error
	FindListings(ctx context.Context, filter ListingFilter, offset int64, limit int64) ([]listing.Listing, error)
	GetListing(ctx context.Context, id int64) (*listing.Listing, error)
	InsertListing(ctx context.Context, listing *listing.Listing) (int64, error)
	UpdateListing(ctx context.Context, listing *listing.Listing, user *user.User) error
	DeleteListing(ctx context.Context, id int64, user *user.User) error
	SetApproved(ctx context.Context, id int64, approved bool) error
}

type ListingRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewListingRepository(pool *pgxpool.Pool, host string, port string) ListingRepositoryI {
	return &ListingRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

const listingColumns = `listing.id, listing.title, listing.city, listing.area, listing.price, listing.tier_prices,
	listing.amenities, listing.gender, listing.approved, listing.rooms_available, listing.owner_id,
	listing.title_key, listing.city_key, listing.area_key, listing.created_at, listing.updated_at`

func (listingRepo *ListingRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS listing (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		city TEXT NOT NULL,
		area TEXT NOT NULL DEFAULT '',
		price BIGINT DEFAULT 0,
		tier_prices JSONB NOT NULL DEFAULT '{}',
		amenities TEXT[] NOT NULL DEFAULT '{}',
		gender TEXT NOT NULL DEFAULT 'any',
		approved BOOLEAN NOT NULL DEFAULT FALSE,
		rooms_available INTEGER DEFAULT 0,
		owner_id BIGINT NOT NULL REFERENCES users(id),
		title_key TEXT NOT NULL DEFAULT '',
		city_key TEXT NOT NULL DEFAULT '',
		area_key TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := listingRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("listingRepo.CreateTables", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}

	createIndexQuery := `CREATE INDEX IF NOT EXISTS listing_owner_id_idx ON listing(owner_id);`
	_, err = listingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("listingRepo.CreateTables", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}

	createIndexQuery = `CREATE INDEX IF NOT EXISTS listing_created_at_idx ON listing(created_at DESC, id DESC);`
	_, err = listingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("listingRepo.CreateTables", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}

	createIndexQuery = `CREATE INDEX IF NOT EXISTS listing_dup_key_idx ON listing(owner_id, title_key, city_key, area_key);`
	_, err = listingRepo.Pool.Exec(ctx, createIndexQuery)
	if err != nil {
		return customerror.NewError("listingRepo.CreateTables", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	return nil
}

func (listingRepo *ListingRepository) FindListings(ctx context.Context, filter ListingFilter, offset int64, limit int64) ([]listing.Listing, error) {
	listings := []listing.Listing{}
	filtersCount := 1
	query := `SELECT ` + listingColumns + ` FROM listing WHERE listing.id IS NOT NULL`
	params := []any{}

	if filter.Approved != nil {
		query += " AND listing.approved = $" + fmt.Sprint(filtersCount)
		params = append(params, *filter.Approved)
		filtersCount++
	}

	if filter.Gender != "" {
		query += " AND listing.gender = $" + fmt.Sprint(filtersCount)
		params = append(params, filter.Gender)
		filtersCount++
	}

	if len(filter.Amenities) > 0 {
		query += " AND listing.amenities @> $" + fmt.Sprint(filtersCount)
		params = append(params, filter.Amenities)
		filtersCount++
	}

	if filter.MinPrice != nil {
		query += " AND listing.price >= $" + fmt.Sprint(filtersCount)
		params = append(params, *filter.MinPrice)
		filtersCount++
	}

	if filter.MaxPrice != nil {
		query += " AND listing.price <= $" + fmt.Sprint(filtersCount)
		params = append(params, *filter.MaxPrice)
		filtersCount++
	}

	if filter.OwnerId != nil {
		query += " AND listing.owner_id = $" + fmt.Sprint(filtersCount)
		params = append(params, *filter.OwnerId)
		filtersCount++
	}

	if filter.Ids != nil {
		query += " AND listing.id = ANY($" + fmt.Sprint(filtersCount) + ")"
		params = append(params, filter.Ids)
		filtersCount++
	}

	params = append(params, offset, limit)
	query += fmt.Sprintf(` ORDER BY listing.created_at DESC, listing.id DESC OFFSET $%d LIMIT $%d;`, filtersCount, filtersCount+1)
	rows, err := listingRepo.Pool.Query(ctx, query, params...)
	if err != nil {
		return nil, customerror.NewError("listingRepo.FindListings", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	for rows.Next() {
		var item listing.Listing
		err := rows.Scan(
			&item.Id,
			&item.Title,
			&item.City,
			&item.Area,
			&item.Price,
			&item.TierPrices,
			&item.Amenities,
			&item.Gender,
			&item.Approved,
			&item.RoomsAvailable,
			&item.OwnerId,
			&item.TitleKey,
			&item.CityKey,
			&item.AreaKey,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, customerror.NewError("listingRepo.FindListings", listingRepo.Host+":"+listingRepo.Port, err.Error())
		}
		listings = append(listings, item)
	}
	return listings, nil
}

func (listingRepo *ListingRepository) GetListing(ctx context.Context, id int64) (*listing.Listing, error) {
	var item listing.Listing
	query := `SELECT ` + listingColumns + ` FROM listing WHERE listing.id = $1`
	row := listingRepo.Pool.QueryRow(ctx, query, id)
	err := row.Scan(
		&item.Id,
		&item.Title,
		&item.City,
		&item.Area,
		&item.Price,
		&item.TierPrices,
		&item.Amenities,
		&item.Gender,
		&item.Approved,
		&item.RoomsAvailable,
		&item.OwnerId,
		&item.TitleKey,
		&item.CityKey,
		&item.AreaKey,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("listingRepo.GetListing", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	return &item, nil
}

func (listingRepo *ListingRepository) InsertListing(ctx context.Context, item *listing.Listing) (int64, error) {
	var exists bool
	dupQuery := `SELECT EXISTS (SELECT 1 FROM listing WHERE owner_id = $1 AND title_key = $2 AND city_key = $3 AND area_key = $4)`
	err := listingRepo.Pool.QueryRow(ctx, dupQuery, item.OwnerId, item.TitleKey, item.CityKey, item.AreaKey).Scan(&exists)
	if err != nil {
		return 0, customerror.NewError("listingRepo.InsertListing", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	if exists {
		return 0, customerror.ErrDuplicateListing
	}
	query := `INSERT INTO listing (title, city, area, price, tier_prices, amenities, gender, rooms_available, owner_id, title_key, city_key, area_key)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	var id int64
	err = listingRepo.Pool.QueryRow(ctx, query,
		item.Title, item.City, item.Area, item.Price, item.TierPrices, item.Amenities,
		item.Gender, item.RoomsAvailable, item.OwnerId, item.TitleKey, item.CityKey, item.AreaKey,
	).Scan(&id)
	if err != nil {
		return 0, customerror.NewError("listingRepo.InsertListing", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	return id, nil
}

func (listingRepo *ListingRepository) UpdateListing(ctx context.Context, item *listing.Listing, user *user.User) error {
	query := `UPDATE listing SET title = $1, city = $2, area = $3, price = $4, tier_prices = $5, amenities = $6,
	gender = $7, rooms_available = $8, title_key = $9, city_key = $10, area_key = $11, updated_at = CURRENT_TIMESTAMP WHERE id = $12`
	whereArgs := []any{
		item.Title, item.City, item.Area, item.Price, item.TierPrices, item.Amenities,
		item.Gender, item.RoomsAvailable, item.TitleKey, item.CityKey, item.AreaKey, item.Id,
	}
	if !user.IsAdmin() {
		query += ` AND owner_id = $13`
		whereArgs = append(whereArgs, user.Id)
	}
	command, err := listingRepo.Pool.Exec(ctx, query, whereArgs...)
	if err != nil {
		return customerror.NewError("listingRepo.UpdateListing", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (listingRepo *ListingRepository) DeleteListing(ctx context.Context, id int64, user *user.User) error {
	args := []any{id}
	query := `DELETE FROM listing WHERE id = $1`
	if !user.IsAdmin() {
		query += ` AND owner_id = $2`
		args = append(args, user.Id)
	}
	command, err := listingRepo.Pool.Exec(ctx, query, args...)
	if err != nil {
		return customerror.NewError("listingRepo.DeleteListing", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (listingRepo *ListingRepository) SetApproved(ctx context.Context, id int64, approved bool) error {
	command, err := listingRepo.Pool.Exec(ctx, `UPDATE listing SET approved = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, approved, id)
	if err != nil {
		return customerror.NewError("listingRepo.SetApproved", listingRepo.Host+":"+listingRepo.Port, err.Error())
	}
	if command.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
