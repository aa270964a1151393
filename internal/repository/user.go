package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

// User accounts are provisioned by the auth service; this service only
// reads them to resolve sessions and ownership.
type UserRepositoryI interface {
	CreateTables(ctx context.Context) error
	GetUser(ctx context.Context, id int64) (*user.User, error)
}

type UserRepository struct {
	Pool *pgxpool.Pool
	Host string
	Port string
}

func NewUserRepository(pool *pgxpool.Pool, host string, port string) UserRepositoryI {
	return &UserRepository{
		Pool: pool,
		Host: host,
		Port: port,
	}
}

func (userRepo *UserRepository) CreateTables(ctx context.Context) error {
	createTableQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		jwt_version INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`
	_, err := userRepo.Pool.Exec(ctx, createTableQuery)
	if err != nil {
		return customerror.NewError("userRepo.CreateTables", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return nil
}

func (userRepo *UserRepository) GetUser(ctx context.Context, id int64) (*user.User, error) {
	var item user.User
	query := `SELECT id, email, name, role, jwt_version, created_at FROM users WHERE id = $1`
	row := userRepo.Pool.QueryRow(ctx, query, id)
	err := row.Scan(&item.Id, &item.Email, &item.Name, &item.Role, &item.JWTVersion, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, customerror.NewError("userRepo.GetUser", userRepo.Host+":"+userRepo.Port, err.Error())
	}
	return &item, nil
}
