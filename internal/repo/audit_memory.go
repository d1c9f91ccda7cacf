package repo

import (
	"sync"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type InMemoryAuditRepository struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func NewInMemoryAuditRepository() *InMemoryAuditRepository {
	return &InMemoryAuditRepository{entries: []models.AuditEntry{}}
}

func (r *InMemoryAuditRepository) Log(entry models.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *InMemoryAuditRepository) List(offset, limit *int) ([]models.AuditEntry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Newest first.
	reversed := make([]models.AuditEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		reversed = append(reversed, r.entries[i])
	}

	total := len(reversed)
	start := 0
	if offset != nil {
		start = clamp(*offset, 0, total)
	}
	end := total
	if limit != nil && *limit > 0 {
		end = clamp(start+*limit, start, total)
	}
	return reversed[start:end], total, nil
}
