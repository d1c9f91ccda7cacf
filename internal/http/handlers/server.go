package handlers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/alerts"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/auth"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/cart"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/checkout"
	"github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/redissvc"
	repo "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/repo"
)

var (
	productRepo    repo.ProductRepository
	ingredientRepo repo.IngredientRepository
	saleRepo       repo.SaleRepository
	movementRepo   repo.MovementRepository
	userRepo       repo.UserRepository
	auditRepo      repo.AuditRepository
	metricsRepo    repo.MetricsRepository
	settingsRepo   repo.SettingsRepository

	cartStore    *cart.Store
	checkoutSvc  *checkout.Service
	refreshStore *auth.RefreshStore
	mailer       *alerts.Mailer
	storeLoc     = time.Local

	Rdb *redis.Client
	Ctx context.Context
)

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetIngredientRepo(r repo.IngredientRepository) {
	ingredientRepo = r
}

func SetSaleRepo(r repo.SaleRepository) {
	saleRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetAuditRepo(r repo.AuditRepository) {
	auditRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetSettingsRepo(r repo.SettingsRepository) {
	settingsRepo = r
}

func SetCartStore(s *cart.Store) {
	cartStore = s
}

func SetCheckoutService(s *checkout.Service) {
	checkoutSvc = s
}

func SetRefreshStore(s *auth.RefreshStore) {
	refreshStore = s
}

func SetMailer(m *alerts.Mailer) {
	mailer = m
}

func SetStoreLocation(loc *time.Location) {
	storeLoc = loc
}

func SetRedisService(rs *redissvc.RedisService) {
	Rdb = rs.Rdb()
	Ctx = rs.Ctx()
}
