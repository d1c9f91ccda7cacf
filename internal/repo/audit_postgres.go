package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type PostgresAuditRepository struct {
	db *sql.DB
}

func NewPostgresAuditRepository(db *sql.DB) *PostgresAuditRepository {
	return &PostgresAuditRepository{db: db}
}

func (r *PostgresAuditRepository) Log(entry models.AuditEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_log (id, actor, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.Actor, entry.Action, entry.Entity, entry.EntityID, entry.Detail, entry.CreatedAt)
	return err
}

func (r *PostgresAuditRepository) List(offset, limit *int) ([]models.AuditEntry, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, actor, action, entity, entity_id, detail, created_at FROM audit_log ORDER BY created_at DESC`
	args := []any{}
	argIdx := 1
	if limit != nil && *limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *limit)
		argIdx++
	}
	if offset != nil && *offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Entity, &e.EntityID, &e.Detail, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, totalCount, rows.Err()
}
