package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

func (r *PostgresMovementRepository) Log(productID int, delta int, reason string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movements (product_id, delta, reason, created_at) VALUES ($1, $2, $3, $4)`,
		productID, delta, reason, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *PostgresMovementRepository) GetByProductID(productID int, since, until *time.Time, limit, offset *int) ([]models.Movement, int, error) {
	conditions := ""
	args := []any{productID}
	argIdx := 2

	if since != nil {
		conditions += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, since.Format(time.RFC3339))
		argIdx++
	}
	if until != nil {
		conditions += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, until.Format(time.RFC3339))
		argIdx++
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := `SELECT COUNT(*) FROM movements WHERE product_id = $1` + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, product_id, delta, reason, created_at FROM movements WHERE product_id = $1` + conditions + ` ORDER BY id`
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

	var movements []models.Movement
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Delta, &m.Reason, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		movements = append(movements, m)
	}
	return movements, totalCount, rows.Err()
}
