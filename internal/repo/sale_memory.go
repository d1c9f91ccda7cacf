package repo

import (
	"fmt"
	"sync"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

// InMemorySaleRepository mirrors the Postgres repository's all-or-nothing
// commit: every line's stock is checked before any state changes.
type InMemorySaleRepository struct {
	mu        sync.Mutex
	sales     []models.Sale
	products  *InMemoryProductRepository
	movements *InMemoryMovementRepository
	nextItem  int
}

func NewInMemorySaleRepository(products *InMemoryProductRepository, movements *InMemoryMovementRepository) *InMemorySaleRepository {
	return &InMemorySaleRepository{
		sales:     []models.Sale{},
		products:  products,
		movements: movements,
		nextItem:  1,
	}
}

func (r *InMemorySaleRepository) Create(sale models.Sale, items []models.SaleItem, nextID func(lastID string) string) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ID allocation happens under the same lock as the append, so two
	// concurrent checkouts get distinct sequential codes.
	var lastID string
	if len(r.sales) > 0 {
		lastID = r.sales[len(r.sales)-1].ID
	}
	sale.ID = nextID(lastID)

	// Validate every line before touching any stock.
	for _, item := range items {
		p, err := r.products.GetByID(item.ProductID)
		if err != nil {
			return models.Sale{}, err
		}
		if p.Stock < item.Quantity {
			return models.Sale{}, fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
	}

	for i := range items {
		items[i].SaleID = sale.ID
		items[i].ID = r.nextItem
		r.nextItem++
		if _, err := r.products.AdjustStock(items[i].ProductID, -items[i].Quantity); err != nil {
			return models.Sale{}, err
		}
		r.movements.Log(items[i].ProductID, -items[i].Quantity, models.MovementReasonSale)
	}

	sale.Items = items
	r.sales = append(r.sales, sale)
	return sale, nil
}

func (r *InMemorySaleRepository) GetAll(limit *int) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Newest first, matching the Postgres ordering.
	out := make([]models.Sale, 0, len(r.sales))
	for i := len(r.sales) - 1; i >= 0; i-- {
		out = append(out, r.sales[i])
		if limit != nil && *limit > 0 && len(out) == *limit {
			break
		}
	}
	return out, nil
}

func (r *InMemorySaleRepository) GetByID(id string) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) GetByDateRange(startDate, endDate string) ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Sale
	for i := len(r.sales) - 1; i >= 0; i-- {
		s := r.sales[i]
		if s.Date >= startDate && s.Date <= endDate {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *InMemorySaleRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sales {
		if s.ID == id {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return ErrSaleNotFound
}

// Clear drops every sale. Test helper.
func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = []models.Sale{}
	r.nextItem = 1
}
