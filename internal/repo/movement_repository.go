package repo

import (
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

// MovementRepository records stock changes per product.
type MovementRepository interface {
	Log(productID int, delta int, reason string) error
	GetByProductID(productID int, since, until *time.Time, limit, offset *int) ([]models.Movement, int, error)
}
