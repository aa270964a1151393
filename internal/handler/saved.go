package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/findnearpg/findnearpg-sub000/internal/middlewares"
	"github.com/findnearpg/findnearpg-sub000/internal/service"
	modelsListing "github.com/findnearpg/findnearpg-sub000/pkg/listing"
	modelsUser "github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type SavedHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	GetSaved(ctx *gin.Context)
	InsertSaved(ctx *gin.Context)
	DeleteSaved(ctx *gin.Context)
}

type SavedHandler struct {
	savedService  service.SavedServiceI
	searchService service.SearchServiceI
	middlewares   middlewares.MiddlewaresI
}

func NewSavedHandler(savedService service.SavedServiceI, searchService service.SearchServiceI, middlewares middlewares.MiddlewaresI) SavedHandlerI {
	return &SavedHandler{
		savedService:  savedService,
		searchService: searchService,
		middlewares:   middlewares,
	}
}

func (savedHandler *SavedHandler) RegisterRoutes(group *gin.RouterGroup) {
	savedGroup := group.Group("/saved")
	savedGroup.Use(savedHandler.middlewares.ValidUser())
	savedGroup.GET("/", savedHandler.GetSaved)
	savedGroup.POST("/:id", savedHandler.InsertSaved)
	savedGroup.DELETE("/:id", savedHandler.DeleteSaved)
}

// GetSaved is the saved-only view of the search pipeline: same
// filtering and enrichment, restricted to the caller's saved set and
// returned in save order.
func (savedHandler *SavedHandler) GetSaved(ctx *gin.Context) {
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

	query := modelsListing.SearchQuery{
		Approved:  modelsListing.ApprovedOnly,
		SavedOnly: true,
		CallerId:  user.Id,
	}
	if limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "10"), 10, 64); err == nil {
		query.Limit = limit
	} else {
		query.Limit = 10
	}
	if offset, err := strconv.ParseInt(ctx.DefaultQuery("offset", "0"), 10, 64); err == nil {
		query.Offset = offset
	}

	listings, err := savedHandler.searchService.Search(ctx.Request.Context(), query)
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
			"listings": listings,
		},
		"error": nil,
	})
}

func (savedHandler *SavedHandler) InsertSaved(ctx *gin.Context) {
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
	id, err := savedHandler.savedService.InsertSaved(ctx.Request.Context(), user, listingId)
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

func (savedHandler *SavedHandler) DeleteSaved(ctx *gin.Context) {
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
	err = savedHandler.savedService.DeleteSaved(ctx.Request.Context(), user, listingId)
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
		"body":   gin.H{},
		"error":  nil,
	})
}
