package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

// SaleRepository persists finished checkouts.
type SaleRepository interface {
	// Create persists the sale header, its items, and the per-line stock
	// decrements as one atomic unit. The sale's identifier is allocated
	// inside that unit: the repository reads the most recent sale ID,
	// passes it to nextID, and assigns the result before inserting, so
	// concurrent checkouts can never allocate the same code. A line
	// whose quantity exceeds the stock available at commit time fails
	// the whole sale with ErrInsufficientStock and leaves nothing
	// behind.
	Create(sale models.Sale, items []models.SaleItem, nextID func(lastID string) string) (models.Sale, error)

	GetAll(limit *int) ([]models.Sale, error)
	// GetByID returns the sale with its items attached.
	GetByID(id string) (models.Sale, error)
	GetByDateRange(startDate, endDate string) ([]models.Sale, error)
	Delete(id string) error
}
