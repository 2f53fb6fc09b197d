package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"property-listing-service/cache"
	"property-listing-service/config"
	"property-listing-service/logger"
	"property-listing-service/routes"
	"property-listing-service/services"
	"property-listing-service/store"
	"property-listing-service/utils"
	"property-listing-service/validation"
)

// cacheNamespace prefixes every cache key this service writes.
const cacheNamespace = "pls"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Environment)

	ctx := context.Background()

	client, err := config.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		logg.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logg.Error("error closing MongoDB connection", "error", err)
			return
		}
		logg.Info("MongoDB connection closed")
	}()
	logg.Info("connected to MongoDB")

	redisClient, err := config.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logg.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	logg.Info("connected to Redis")

	db := client.Database(cfg.MongoDatabase)
	propertyStore := store.NewMongoPropertyStore(db)
	favouriteStore := store.NewMongoFavouriteStore(db)
	recommendationStore := store.NewMongoRecommendationStore(db)
	userStore := store.NewMongoUserStore(db)

	redisCache := cache.NewRedis(redisClient)
	keys := cache.NewKeyBuilder(cacheNamespace)
	validate := validation.New()
	tokens := utils.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	router := mux.NewRouter()
	routes.Routes(router, routes.Deps{
		Log:             logg,
		Tokens:          tokens,
		Auth:            services.NewAuthService(userStore, tokens, validate, logg),
		Properties:      services.NewPropertyService(propertyStore, redisCache, keys, validate, logg),
		Favourites:      services.NewFavouriteService(favouriteStore, propertyStore, redisCache, keys, validate, logg),
		Recommendations: services.NewRecommendationService(recommendationStore, userStore, redisCache, keys, validate, logg),
	})

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        corsOptions.Handler(router),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logg.Info("server running", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("error starting server", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logg.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("error during server shutdown", "error", err)
		return
	}
	logg.Info("server gracefully stopped")
}
