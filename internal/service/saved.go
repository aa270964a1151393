package service

import (
	"context"
	"time"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type SavedServiceI interface {
	InsertSaved(ctx context.Context, user *user.User, listingId int64) (int64, error)
	DeleteSaved(ctx context.Context, user *user.User, listingId int64) error
}

type SavedService struct {
	savedRepo repository.SavedRepositoryI
	host      string
	port      string
}

func NewSavedService(savedRepo repository.SavedRepositoryI, host string, port string) SavedServiceI {
	return &SavedService{
		savedRepo: savedRepo,
		host:      host,
		port:      port,
	}
}

func (savedService *SavedService) InsertSaved(ctx context.Context, user *user.User, listingId int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	id, err := savedService.savedRepo.InsertSaved(ctx, user.Id, listingId)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("SavedService.InsertSaved")
		return 0, customeErr
	}
	return id, nil
}

func (savedService *SavedService) DeleteSaved(ctx context.Context, user *user.User, listingId int64) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	err := savedService.savedRepo.DeleteSaved(ctx, user.Id, listingId)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("SavedService.DeleteSaved")
		return customeErr
	}
	return nil
}
