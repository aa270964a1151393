package middlewares

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/internal/service"
	"github.com/findnearpg/findnearpg-sub000/pkg/customerror"
	"github.com/findnearpg/findnearpg-sub000/pkg/user"
)

type MiddlewaresI interface {
	RequestId() gin.HandlerFunc
	ValidUser() gin.HandlerFunc
	OptionalUser() gin.HandlerFunc
	AdminOnly() gin.HandlerFunc
	MyListing() gin.HandlerFunc
}

type Middlewares struct {
	jwtService  service.JWTServiceI
	userRepo    repository.UserRepositoryI
	listingRepo repository.ListingRepositoryI
	host        string
	port        string
}

func NewMiddlewares(jwtService service.JWTServiceI, userRepo repository.UserRepositoryI, host, port string, listingRepo repository.ListingRepositoryI) MiddlewaresI {
	return &Middlewares{
		jwtService:  jwtService,
		userRepo:    userRepo,
		host:        host,
		port:        port,
		listingRepo: listingRepo,
	}
}

func (middlewares *Middlewares) RequestId() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Request-Id", uuid.New().String())
		ctx.Next()
	}
}

func (middlewares *Middlewares) ValidUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		user, err := middlewares.jwtService.ValidateToken(ctx.Request.Context(), authHeader)
		if errors.Is(err, jwt.ErrTokenExpired) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": http.StatusUnauthorized,
				"body":   gin.H{},
				"error":  "token expired",
			})
			return
		}
		if err == customerror.ErrJwtInvalid || err == customerror.ErrJwtVersionIncorrect || err == pgx.ErrNoRows {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": http.StatusUnauthorized,
				"body":   gin.H{},
				"error":  "token invalid",
			})
			return
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("Middlewares")
			log.Print(customErr.Error())
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"body":   gin.H{},
				"error":  "Internal Server Error",
			})
			return
		}
		ctx.Set("user", user)
		ctx.Next()
	}
}

// OptionalUser resolves a session when a token is present but lets
// anonymous callers through. The search endpoint is public; only the
// saved-only view needs an identity, and the handler enforces that.
func (middlewares *Middlewares) OptionalUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.Next()
			return
		}
		user, err := middlewares.jwtService.ValidateToken(ctx.Request.Context(), authHeader)
		if err != nil {
			var customErr customerror.CustomError
			if errors.As(err, &customErr) {
				customErr.AppendModule("Middlewares")
				log.Print(customErr.Error())
			}
			ctx.Next()
			return
		}
		ctx.Set("user", user)
		ctx.Next()
	}
}

func (middlewares *Middlewares) AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authUser, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"body":   gin.H{},
				"error":  "Internal Server Error",
			})
			return
		}
		user := authUser.(*user.User)
		if !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": http.StatusForbidden,
				"body":   gin.H{},
				"error":  "Forbidden",
			})
			return
		}
		ctx.Next()
	}
}

func (middlewares *Middlewares) MyListing() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authUser, exists := ctx.Get("user")
		if !exists {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"body":   gin.H{},
				"error":  "Internal Server Error",
			})
			return
		}
		user := authUser.(*user.User)

		listingIdStr := ctx.Param("id")
		listingId, err := strconv.ParseInt(listingIdStr, 10, 64)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"status": http.StatusBadRequest,
				"body":   gin.H{},
				"error":  "invalid id",
			})
			return
		}
		c, cancel := context.WithTimeout(ctx.Request.Context(), time.Minute)
		defer cancel()
		item, err := middlewares.listingRepo.GetListing(c, listingId)
		if err == pgx.ErrNoRows {
			ctx.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"status": http.StatusNotFound,
				"body":   gin.H{},
				"error":  "listing not found",
			})
			return
		}
		if err != nil {
			customErr := err.(customerror.CustomError)
			customErr.AppendModule("Middlewares")
			log.Print(customErr.Error())
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status": http.StatusInternalServerError,
				"body":   gin.H{},
				"error":  "Internal Server Error",
			})
			return
		}
		if item.OwnerId != user.Id && !user.IsAdmin() {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": http.StatusForbidden,
				"body":   gin.H{},
				"error":  "Forbidden",
			})
			return
		}
		ctx.Set("listing", item)
		ctx.Next()
	}
}
