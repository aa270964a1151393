package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/findnearpg/findnearpg-sub000/internal/middlewares"
	"github.com/findnearpg/findnearpg-sub000/internal/service"
	modelsReview "github.com/findnearpg/findnearpg-sub000/pkg/review"
	modelsUser "github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type ReviewHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	GetReviews(ctx *gin.Context)
	InsertReview(ctx *gin.Context)
}

type ReviewHandler struct {
	reviewService service.ReviewServiceI
	middlewares   middlewares.MiddlewaresI
}

func NewReviewHandler(reviewService service.ReviewServiceI, middlewares middlewares.MiddlewaresI) ReviewHandlerI {
	return &ReviewHandler{
		reviewService: reviewService,
		middlewares:   middlewares,
	}
}

func (reviewHandler *ReviewHandler) RegisterRoutes(group *gin.RouterGroup) {
	reviewGroup := group.Group("/listings/:id/reviews")
	reviewGroup.GET("/", reviewHandler.GetReviews)
	reviewGroup.POST("/", reviewHandler.middlewares.ValidUser(), reviewHandler.InsertReview)
}

func (reviewHandler *ReviewHandler) GetReviews(ctx *gin.Context) {
	listingId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	reviews, err := reviewHandler.reviewService.GetReviews(ctx.Request.Context(), listingId)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print(err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"body": gin.H{
			"reviews": reviews,
		},
		"error": nil,
	})
}

func (reviewHandler *ReviewHandler) InsertReview(ctx *gin.Context) {
	authUser, exists := ctx.Get("user")
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print("user not found")
		return
	}
	user := authUser.(*modelsUser.User)

	listingId, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	var reviewFromRequest modelsReview.Review
	if err := ctx.ShouldBindBodyWithJSON(&reviewFromRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	reviewFromRequest.ListingId = listingId
	reviewFromRequest.UserId = user.Id

	id, err := reviewHandler.reviewService.InsertReview(ctx.Request.Context(), &reviewFromRequest)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print(err.Error())
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status": http.StatusOK,
		"body": gin.H{
			"id": id,
		},
		"error": nil,
	})
}
