package repo

import models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"

// AuditRepository stores the append-only action log.
type AuditRepository interface {
	Log(entry models.AuditEntry) error
	List(offset, limit *int) ([]models.AuditEntry, int, error)
}
