package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

const saleColumns = `id, date, time, total_amount, cash_received, change, payment_method, payment_sub_method, staff_id, customer, status`

// saleIDLockKey serializes transaction-ID allocation across concurrent
// checkouts. Row locks cannot do this when the table is empty.
const saleIDLockKey = 874529

func scanSale(row interface{ Scan(...any) error }, s *models.Sale) error {
	var subMethod sql.NullString
	err := row.Scan(&s.ID, &s.Date, &s.Time, &s.TotalAmount, &s.CashReceived, &s.Change,
		&s.PaymentMethod, &subMethod, &s.StaffID, &s.Customer, &s.Status)
	if subMethod.Valid {
		s.PaymentSubMethod = subMethod.String
	}
	return err
}

func (r *PostgresSaleRepository) Create(sale models.Sale, items []models.SaleItem, nextID func(lastID string) string) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, fmt.Errorf("begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, saleIDLockKey); err != nil {
		return models.Sale{}, fmt.Errorf("acquire sale id lock: %w", err)
	}

	var lastID string
	err = tx.QueryRowContext(ctx, `SELECT id FROM sales ORDER BY created_at DESC LIMIT 1`).Scan(&lastID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, fmt.Errorf("read last sale id: %w", err)
	}
	sale.ID = nextID(lastID)

	var subMethod any
	if sale.PaymentSubMethod != "" {
		subMethod = sale.PaymentSubMethod
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, date, time, total_amount, cash_received, change, payment_method, payment_sub_method, staff_id, customer, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())`,
		sale.ID, sale.Date, sale.Time, sale.TotalAmount, sale.CashReceived, sale.Change,
		sale.PaymentMethod, subMethod, sale.StaffID, sale.Customer, sale.Status)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return models.Sale{}, ErrDuplicatedValueUnique
		}
		return models.Sale{}, fmt.Errorf("insert sale %s: %w", sale.ID, err)
	}

	for i, item := range items {
		items[i].SaleID = sale.ID
		err = tx.QueryRowContext(ctx, `
			INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			sale.ID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal).
			Scan(&items[i].ID)
		if err != nil {
			return models.Sale{}, fmt.Errorf("insert sale item for product %d: %w", item.ProductID, err)
		}

		// Conditional decrement closes the overselling window: a stale
		// client-side stock check cannot drive stock negative here.
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $1, updated_at = $2
			WHERE id = $3 AND stock >= $1`,
			item.Quantity, time.Now().UTC().Format(time.RFC3339), item.ProductID)
		if err != nil {
			return models.Sale{}, fmt.Errorf("decrement stock for product %d: %w", item.ProductID, err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return models.Sale{}, fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO movements (product_id, delta, reason, created_at)
			VALUES ($1, $2, $3, $4)`,
			item.ProductID, -item.Quantity, models.MovementReasonSale, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return models.Sale{}, fmt.Errorf("log movement for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, fmt.Errorf("commit sale %s: %w", sale.ID, err)
	}

	sale.Items = items
	return sale, nil
}

func (r *PostgresSaleRepository) GetAll(limit *int) ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC`
	args := []any{}
	if limit != nil && *limit > 0 {
		query += ` LIMIT $1`
		args = append(args, *limit)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) GetByID(id string) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Sale
	err := scanSale(r.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id), &s)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, id)
	if err != nil {
		return models.Sale{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.SaleItem
		if err := rows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Subtotal); err != nil {
			return models.Sale{}, err
		}
		s.Items = append(s.Items, item)
	}
	return s, rows.Err()
}

func (r *PostgresSaleRepository) GetByDateRange(startDate, endDate string) ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+saleColumns+` FROM sales
		WHERE date >= $1 AND date <= $2
		ORDER BY created_at DESC`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrSaleNotFound
	}
	return tx.Commit()
}
