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

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, price, category, stock, min_stock, sku, image`

func scanProduct(row interface{ Scan(...any) error }, p *models.Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.MinStock, &p.SKU, &p.Image)
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (name, price, category, stock, min_stock, sku, image, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Price, p.Category, p.Stock, p.MinStock, p.SKU, p.Image, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, price = $2, category = $3, stock = $4, min_stock = $5, sku = $6, image = $7, updated_at = $8 WHERE id = $9`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Price, p.Category, p.Stock, p.MinStock, p.SKU, p.Image, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(f ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := productFilterConditions(f)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1` + conditions + " ORDER BY name"

	if f.Limit != nil && *f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *f.Limit)
		argIdx++
	}
	if f.Offset != nil && *f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, totalCount, rows.Err()
}

func productFilterConditions(f ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.Category != "" && f.Category != "All" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, f.Category)
		argIdx++
	}
	if f.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *f.MinPrice)
		argIdx++
	}
	if f.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *f.MaxPrice)
		argIdx++
	}
	if f.MinQty != nil {
		query += fmt.Sprintf(" AND stock >= $%d", argIdx)
		args = append(args, *f.MinQty)
		argIdx++
	}
	if f.MaxQty != nil {
		query += fmt.Sprintf(" AND stock <= $%d", argIdx)
		args = append(args, *f.MaxQty)
		argIdx++
	}

	return query, args, argIdx
}

func (r *PostgresProductRepository) AdjustStock(productID int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $1, updated_at = $2
		WHERE id = $3 AND stock + $1 >= 0
		RETURNING ` + productColumns + `, created_at, updated_at`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	err := r.db.QueryRowContext(ctx, query, delta, time.Now().UTC().Format(time.RFC3339), productID).
		Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.MinStock, &p.SKU, &p.Image, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// Either the product does not exist or the delta would go negative.
		if _, getErr := r.GetByID(productID); errors.Is(getErr, ErrProductNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}

func (r *PostgresProductRepository) LowStock() ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock <= min_stock ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
