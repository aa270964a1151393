package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	modelsListing "github.com/findnearpg/findnearpg-sub000/pkg/listing"
	"github.com/findnearpg/findnearpg-sub000/pkg/textnorm"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type ListingServiceI interface {
	GetListing(ctx context.Context, id int64) (*modelsListing.Listing, error)
	InsertListing(ctx context.Context, listing *modelsListing.Listing) (int64, error)
	UpdateListing(ctx context.Context, listing *modelsListing.Listing, user *user.User) error
	DeleteListing(ctx context.Context, id int64, user *user.User) error
	SetApproved(ctx context.Context, id int64, approved bool) error
}

type ListingService struct {
	listingRepo repository.ListingRepositoryI
	host        string
	port        string
}

func NewListingService(listingRepo repository.ListingRepositoryI, host string, port string) ListingServiceI {
	return &ListingService{
		listingRepo: listingRepo,
		host:        host,
		port:        port,
	}
}

func (listingService *ListingService) GetListing(ctx context.Context, id int64) (*modelsListing.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	item, err := listingService.listingRepo.GetListing(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ListingService.GetListing")
		return nil, customeErr
	}
	return item, nil
}

func (listingService *ListingService) InsertListing(ctx context.Context, item *modelsListing.Listing) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	setNormalizedKeys(item)
	id, err := listingService.listingRepo.InsertListing(ctx, item)
	if err == customerror.ErrDuplicateListing {
		return 0, err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ListingService.InsertListing")
		return 0, customeErr
	}
	return id, nil
}

func (listingService *ListingService) UpdateListing(ctx context.Context, item *modelsListing.Listing, user *user.User) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	setNormalizedKeys(item)
	err := listingService.listingRepo.UpdateListing(ctx, item, user)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ListingService.UpdateListing")
		return customeErr
	}
	return nil
}

func (listingService *ListingService) DeleteListing(ctx context.Context, id int64, user *user.User) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	err := listingService.listingRepo.DeleteListing(ctx, id, user)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ListingService.DeleteListing")
		return customeErr
	}
	return nil
}

func (listingService *ListingService) SetApproved(ctx context.Context, id int64, approved bool) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	err := listingService.listingRepo.SetApproved(ctx, id, approved)
	if err == pgx.ErrNoRows {
		return err
	}
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ListingService.SetApproved")
		return customeErr
	}
	return nil
}

// The normalized keys back exact duplicate detection and feed the fuzzy
// matcher, so they are re-derived on every write.
func setNormalizedKeys(item *modelsListing.Listing) {
	item.TitleKey = textnorm.Normalize(item.Title)
	item.CityKey = textnorm.Normalize(item.City)
	item.AreaKey = textnorm.Normalize(item.Area)
}
