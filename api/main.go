package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/alerts"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/config"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/db"
	apihttp "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http/handlers"
	rl "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/http/rate_limiter"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/redissvc"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

// @title Amari POS API
// @version 1.0
// @description REST API for point-of-sale checkout, catalog and inventory management.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	loc := cfg.Location()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	auth.Configure(cfg.JWTSecret, cfg.AccessTokenTTL)

	productRepo := repo.NewPostgresProductRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)
	saleRepo := repo.NewPostgresSaleRepository(database)

	handlers.SetProductRepo(productRepo)
	handlers.SetIngredientRepo(repo.NewPostgresIngredientRepository(database))
	handlers.SetSaleRepo(saleRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetAuditRepo(repo.NewPostgresAuditRepository(database))
	handlers.SetMetricsRepo(repo.NewPostgresMetricsRepository(database))
	handlers.SetSettingsRepo(repo.NewPostgresSettingsRepository(database))

	handlers.SetRefreshStore(auth.NewRefreshStore(redisService, cfg.RefreshTokenTTL))
	handlers.SetStoreLocation(loc)

	cartStore := cart.NewStore()
	go cartStore.StartCleanupLoop(10*time.Minute, 2*time.Hour)
	handlers.SetCartStore(cartStore)

	handlers.SetCheckoutService(checkout.NewService(saleRepo, loc))

	mailer := alerts.NewMailer(cfg)
	handlers.SetMailer(mailer)
	go mailer.StartDailySalesSummary(saleRepo, loc)

	go rl.StartVisitorCleanupLoop()

	r := apihttp.NewRouter()
	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}
