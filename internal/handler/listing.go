package handler

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/findnearpg/findnearpg-sub000/internal/middlewares"
	"github.com/findnearpg/findnearpg-sub000/internal/service"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	modelsListing "github.com/findnearpg/findnearpg-sub000/pkg/listing"
	modelsUser "github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type ListingHandlerI interface {
	RegisterRoutes(group *gin.RouterGroup)
	SearchListings(ctx *gin.Context)
	GetListing(ctx *gin.Context)
	InsertListing(ctx *gin.Context)
	UpdateListing(ctx *gin.Context)
	DeleteListing(ctx *gin.Context)
	ApproveListing(ctx *gin.Context)
}

type ListingHandler struct {
	listingService service.ListingServiceI
	searchService  service.SearchServiceI
	host           string
	port           string
	middlewares    middlewares.MiddlewaresI
}

func NewListingHandler(listingService service.ListingServiceI, searchService service.SearchServiceI, host, port string, middlewares middlewares.MiddlewaresI) ListingHandlerI {
	return &ListingHandler{
		listingService: listingService,
		searchService:  searchService,
		host:           host,
		port:           port,
		middlewares:    middlewares,
	}
}

func (listingHandler *ListingHandler) RegisterRoutes(group *gin.RouterGroup) {
	listingGroup := group.Group("/listings")
	listingGroup.GET("/", listingHandler.middlewares.OptionalUser(), listingHandler.SearchListings)
	listingGroup.GET("/:id", listingHandler.GetListing)
	listingGroup.POST("/", listingHandler.middlewares.ValidUser(), listingHandler.InsertListing)
	listingGroup.PATCH("/:id", listingHandler.middlewares.ValidUser(), listingHandler.middlewares.MyListing(), listingHandler.UpdateListing)
	listingGroup.DELETE("/:id", listingHandler.middlewares.ValidUser(), listingHandler.middlewares.MyListing(), listingHandler.DeleteListing)
	listingGroup.PATCH("/:id/approve", listingHandler.middlewares.ValidUser(), listingHandler.middlewares.AdminOnly(), listingHandler.ApproveListing)
}

// SearchListings parses the search parameters and runs the pipeline.
// Malformed numeric input is clamped or dropped, never rejected.
func (listingHandler *ListingHandler) SearchListings(ctx *gin.Context) {
	query := modelsListing.SearchQuery{
		City:     ctx.DefaultQuery("city", ""),
		Area:     ctx.DefaultQuery("area", ""),
		Gender:   ctx.DefaultQuery("gender", ""),
		Approved: ctx.DefaultQuery("approved", "true"),
	}
	if amenities := ctx.DefaultQuery("amenities", ""); amenities != "" {
		for _, amenity := range strings.Split(amenities, ",") {
			amenity = strings.TrimSpace(amenity)
			if amenity != "" {
				query.Amenities = append(query.Amenities, amenity)
			}
		}
	}
	if minPrice, err := strconv.ParseInt(ctx.DefaultQuery("minPrice", ""), 10, 64); err == nil {
		query.MinPrice = &minPrice
	}
	if maxPrice, err := strconv.ParseInt(ctx.DefaultQuery("maxPrice", ""), 10, 64); err == nil {
		query.MaxPrice = &maxPrice
	}
	if ownerId, err := strconv.ParseInt(ctx.DefaultQuery("ownerId", ""), 10, 64); err == nil {
		query.OwnerId = &ownerId
	}
	if limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", "10"), 10, 64); err == nil {
		query.Limit = limit
	} else {
		query.Limit = 10
	}
	if offset, err := strconv.ParseInt(ctx.DefaultQuery("offset", "0"), 10, 64); err == nil {
		query.Offset = offset
	}

	if ctx.DefaultQuery("saved", "") == "true" {
		authUser, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": http.StatusForbidden,
				"body":   gin.H{},
				"error":  customerror.ErrSavedRequiresUser.Error(),
			})
			return
		}
		query.SavedOnly = true
		query.CallerId = authUser.(*modelsUser.User).Id
	}

	listings, err := listingHandler.searchService.Search(ctx.Request.Context(), query)
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

func (listingHandler *ListingHandler) GetListing(ctx *gin.Context) {
	id := ctx.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	item, err := listingHandler.listingService.GetListing(ctx.Request.Context(), idInt)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "listing not found",
		})
		return
	}
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
			"listing": item,
		},
		"error": nil,
	})
}

func (listingHandler *ListingHandler) InsertListing(ctx *gin.Context) {
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

	var listingFromRequest modelsListing.Listing
	if err := ctx.ShouldBindBodyWithJSON(&listingFromRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	if listingFromRequest.Title == "" || listingFromRequest.City == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "title and city are required",
		})
		return
	}
	listingFromRequest.OwnerId = user.Id
	// New listings wait for moderation before entering search.
	listingFromRequest.Approved = false

	id, err := listingHandler.listingService.InsertListing(ctx.Request.Context(), &listingFromRequest)
	if err == customerror.ErrDuplicateListing {
		ctx.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"status": http.StatusConflict,
			"body":   gin.H{},
			"error":  "listing already exists",
		})
		return
	}
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

func (listingHandler *ListingHandler) UpdateListing(ctx *gin.Context) {
	listingInt, exists := ctx.Get("listing")
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print("listing not found")
		return
	}
	item := listingInt.(*modelsListing.Listing)

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

	var listingFromRequest modelsListing.Listing
	if err := ctx.ShouldBindBodyWithJSON(&listingFromRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	if listingFromRequest.Title == "" || listingFromRequest.City == "" {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "title and city are required",
		})
		return
	}
	listingFromRequest.Id = item.Id
	listingFromRequest.OwnerId = item.OwnerId
	listingFromRequest.Approved = item.Approved
	listingFromRequest.CreatedAt = item.CreatedAt

	err := listingHandler.listingService.UpdateListing(ctx.Request.Context(), &listingFromRequest, user)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "listing not found",
		})
		return
	}
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

func (listingHandler *ListingHandler) DeleteListing(ctx *gin.Context) {
	listingInt, exists := ctx.Get("listing")
	if !exists {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"status": http.StatusInternalServerError,
			"body":   gin.H{},
			"error":  "Internal Server Error",
		})
		log.Print("listing not found")
		return
	}
	item := listingInt.(*modelsListing.Listing)

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

	err := listingHandler.listingService.DeleteListing(ctx.Request.Context(), item.Id, user)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "listing not found",
		})
		return
	}
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

func (listingHandler *ListingHandler) ApproveListing(ctx *gin.Context) {
	id := ctx.Param("id")
	idInt, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid id",
		})
		return
	}
	approveRequest := struct {
		Approved *bool `json:"approved"`
	}{}
	if err := ctx.ShouldBindBodyWithJSON(&approveRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"status": http.StatusBadRequest,
			"body":   gin.H{},
			"error":  "invalid data",
		})
		return
	}
	approved := true
	if approveRequest.Approved != nil {
		approved = *approveRequest.Approved
	}
	err = listingHandler.listingService.SetApproved(ctx.Request.Context(), idInt, approved)
	if err == pgx.ErrNoRows {
		ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"body":   gin.H{},
			"error":  "listing not found",
		})
		return
	}
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
