package service

import (
	"context"
	"time"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	modelsReview "github.com/findnearpg/findnearpg-sub000/pkg/review"
)

type ReviewServiceI interface {
	GetReviews(ctx context.Context, listingId int64) ([]modelsReview.Review, error)
	InsertReview(ctx context.Context, review *modelsReview.Review) (int64, error)
}

type ReviewService struct {
	reviewRepo repository.ReviewRepositoryI
	host       string
	port       string
}

func NewReviewService(reviewRepo repository.ReviewRepositoryI, host string, port string) ReviewServiceI {
	return &ReviewService{
		reviewRepo: reviewRepo,
		host:       host,
		port:       port,
	}
}

func (reviewService *ReviewService) GetReviews(ctx context.Context, listingId int64) ([]modelsReview.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	reviews, err := reviewService.reviewRepo.GetReviews(ctx, listingId)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ReviewService.GetReviews")
		return []modelsReview.Review{}, customeErr
	}
	return reviews, nil
}

func (reviewService *ReviewService) InsertReview(ctx context.Context, item *modelsReview.Review) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if item.Rating < 1 {
		item.Rating = 1
	}
	if item.Rating > 5 {
		item.Rating = 5
	}
	id, err := reviewService.reviewRepo.InsertReview(ctx, item)
	if err != nil {
		customeErr := err.(customerror.CustomError)
		customeErr.AppendModule("ReviewService.InsertReview")
		return 0, customeErr
	}
	return id, nil
}
