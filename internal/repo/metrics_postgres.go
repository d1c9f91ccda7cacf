package repo

import (
	"context"
	"database/sql"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) Dashboard(today string) (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COUNT(*) FROM sales WHERE date = $1`, today).
		Scan(&m.TodaySales, &m.TodayTransactions)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE stock <= min_stock`).Scan(&m.LowStockCount)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC LIMIT 5`)
	if err != nil {
		return m, err
	}
	defer rows.Close()
	for rows.Next() {
		var s models.Sale
		if err := scanSale(rows, &s); err != nil {
			return m, err
		}
		m.RecentSales = append(m.RecentSales, s)
	}
	return m, rows.Err()
}

func (r *PostgresMetricsRepository) Summary(startDate, endDate string) (SalesSummary, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s SalesSummary
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales WHERE date >= $1 AND date <= $2`, startDate, endDate).
		Scan(&s.TotalSales, &s.Transactions)
	if err != nil {
		return SalesSummary{}, err
	}
	if s.Transactions > 0 {
		s.AverageOrderValue = s.TotalSales / float64(s.Transactions)
	}
	return s, nil
}

func (r *PostgresMetricsRepository) DailySeries(startDate, endDate string) ([]DailySales, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT date, COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM sales WHERE date >= $1 AND date <= $2
		GROUP BY date ORDER BY date`, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var series []DailySales
	for rows.Next() {
		var d DailySales
		if err := rows.Scan(&d.Date, &d.Total, &d.Transactions); err != nil {
			return nil, err
		}
		series = append(series, d)
	}
	return series, rows.Err()
}

func (r *PostgresMetricsRepository) TopProducts(startDate, endDate string, limit int) ([]TopProduct, error) {
	if limit <= 0 {
		limit = 5
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT si.product_id, si.product_name, SUM(si.quantity), SUM(si.subtotal)
		FROM sale_items si
		JOIN sales s ON si.sale_id = s.id
		WHERE s.date >= $1 AND s.date <= $2
		GROUP BY si.product_id, si.product_name
		ORDER BY SUM(si.quantity) DESC
		LIMIT $3`, startDate, endDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopProduct
	for rows.Next() {
		var t TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, err
		}
		top = append(top, t)
	}
	return top, rows.Err()
}
