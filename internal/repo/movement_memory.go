package repo

import (
	"sync"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type InMemoryMovementRepository struct {
	mu        sync.Mutex
	movements []models.Movement
	nextID    int
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		movements: []models.Movement{},
		nextID:    1,
	}
}

func (r *InMemoryMovementRepository) Log(productID int, delta int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, models.Movement{
		ID:        r.nextID,
		ProductID: productID,
		Delta:     delta,
		Reason:    reason,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	r.nextID++
	return nil
}

func (r *InMemoryMovementRepository) GetByProductID(productID int, since, until *time.Time, limit, offset *int) ([]models.Movement, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []models.Movement
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		ts, err := time.Parse(time.RFC3339, m.CreatedAt)
		if err != nil {
			continue
		}
		if since != nil && ts.Before(*since) {
			continue
		}
		if until != nil && ts.After(*until) {
			continue
		}
		filtered = append(filtered, m)
	}

	total := len(filtered)
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}
	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}
	return filtered[start:end], total, nil
}

// Clear drops every movement. Test helper.
func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = []models.Movement{}
	r.nextID = 1
}
