package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"

	"github.com/findnearpg/findnearpg-sub000/internal/handler"
	"github.com/findnearpg/findnearpg-sub000/internal/middlewares"
	"github.com/findnearpg/findnearpg-sub000/internal/repository"
	"github.com/findnearpg/findnearpg-sub000/internal/service"
	"github.com/findnearpg/findnearpg-sub000/pkg/cleaner"
	"github.com/findnearpg/findnearpg-sub000/pkg/config"
	"github.com/findnearpg/findnearpg-sub000/pkg/searchcache"
	"github.com/findnearpg/findnearpg-sub000/pkg/synonyms"
)

func initMonthlyCleaner(pool *pgxpool.Pool) {
	c := cron.New()

	// 00:00 on the 1st of every month.
	_, err := c.AddFunc("0 0 1 * *", func() {
		cleaner.Clean(pool)
	})

	if err != nil {
		log.Fatalf("Failed to schedule cleanup job: %v", err)
	}

	go c.Start()
}

func newSearchCache(config *config.Config) searchcache.CacheI {
	if config.RedisAddr == "" {
		return searchcache.NewMemoryCache()
	}
	cache, err := searchcache.NewRedisCache(context.Background(), config.RedisAddr, config.RedisPassword, config.RedisDb)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	return cache
}

func main() {
	config, err := config.NewConfig(".env")
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", config.DbUser, config.DbPassword, config.DbHost, config.DbPort, config.DbName)
	dbconfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	dbconfig.MaxConns = 100
	dbconfig.MinConns = 10
	dbconfig.MaxConnLifetime = 1 * time.Hour
	dbconfig.MaxConnIdleTime = 15 * time.Minute
	pool, err := pgxpool.NewWithConfig(context.Background(), dbconfig)
	if err != nil {
		log.Fatalf("%s", err.Error())
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("%s", err.Error())
	}

	userRepository := repository.NewUserRepository(pool, config.WebHost, config.WebPort)
	listingRepository := repository.NewListingRepository(pool, config.WebHost, config.WebPort)
	savedRepository := repository.NewSavedRepository(pool, config.WebHost, config.WebPort)
	reviewRepository := repository.NewReviewRepository(pool, config.WebHost, config.WebPort)

	err = userRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = listingRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = savedRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	err = reviewRepository.CreateTables(context.Background())
	if err != nil {
		log.Fatal(err.Error())
	}
	initMonthlyCleaner(pool)

	searchCache := newSearchCache(config)

	jwtService := service.NewJWTService(config, userRepository)
	middlewares := middlewares.NewMiddlewares(jwtService, userRepository, config.WebHost, config.WebPort, listingRepository)
	searchService := service.NewSearchService(listingRepository, savedRepository, reviewRepository, searchCache, synonyms.Default(), config.WebHost, config.WebPort)
	listingService := service.NewListingService(listingRepository, config.WebHost, config.WebPort)
	savedService := service.NewSavedService(savedRepository, config.WebHost, config.WebPort)
	reviewService := service.NewReviewService(reviewRepository, config.WebHost, config.WebPort)

	listingHandler := handler.NewListingHandler(listingService, searchService, config.WebHost, config.WebPort, middlewares)
	savedHandler := handler.NewSavedHandler(savedService, searchService, middlewares)
	reviewHandler := handler.NewReviewHandler(reviewService, middlewares)

	router := gin.Default()
	router.Use(middlewares.RequestId())
	api := router.Group("/api")
	v1 := api.Group("/v1")

	listingHandler.RegisterRoutes(v1)
	savedHandler.RegisterRoutes(v1)
	reviewHandler.RegisterRoutes(v1)

	router.Run(config.WebHost + ":" + config.WebPort)
}
