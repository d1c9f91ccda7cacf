package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	models "github.com/dlwlrmwa/Amari-POS-and-Inventory-Management-System/internal/models"
)

type PostgresIngredientRepository struct {
	db *sql.DB
}

func NewPostgresIngredientRepository(db *sql.DB) *PostgresIngredientRepository {
	return &PostgresIngredientRepository{db: db}
}

func (r *PostgresIngredientRepository) Create(ing models.Ingredient) (models.Ingredient, error) {
	query := `INSERT INTO ingredients (name, unit, current_stock, min_stock, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		ing.Name, ing.Unit, ing.CurrentStock, ing.MinStock, ing.CreatedAt, ing.UpdatedAt).Scan(&ing.ID)
	return ing, err
}

func (r *PostgresIngredientRepository) GetAll() ([]models.Ingredient, error) {
	query := `SELECT id, name, unit, current_stock, min_stock FROM ingredients ORDER BY name`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.MinStock); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (r *PostgresIngredientRepository) GetByID(id int) (models.Ingredient, error) {
	query := `SELECT id, name, unit, current_stock, min_stock FROM ingredients WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var ing models.Ingredient
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.MinStock)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ingredient{}, ErrIngredientNotFound
	}
	return ing, err
}

func (r *PostgresIngredientRepository) Update(ing models.Ingredient) (models.Ingredient, error) {
	query := `UPDATE ingredients SET name = $1, unit = $2, current_stock = $3, min_stock = $4, updated_at = $5 WHERE id = $6`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		ing.Name, ing.Unit, ing.CurrentStock, ing.MinStock, ing.UpdatedAt, ing.ID)
	if err != nil {
		return models.Ingredient{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Ingredient{}, ErrIngredientNotFound
	}
	return ing, nil
}

func (r *PostgresIngredientRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrIngredientNotFound
	}
	return nil
}

func (r *PostgresIngredientRepository) AdjustStock(id int, delta int) (models.Ingredient, error) {
	query := `
		UPDATE ingredients
		SET current_stock = current_stock + $1, updated_at = $2
		WHERE id = $3 AND current_stock + $1 >= 0
		RETURNING id, name, unit, current_stock, min_stock`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var ing models.Ingredient
	err := r.db.QueryRowContext(ctx, query, delta, time.Now().UTC().Format(time.RFC3339), id).
		Scan(&ing.ID, &ing.Name, &ing.Unit, &ing.CurrentStock, &ing.MinStock)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := r.GetByID(id); errors.Is(getErr, ErrIngredientNotFound) {
			return models.Ingredient{}, ErrIngredientNotFound
		}
		return models.Ingredient{}, ErrInvalidQuantityChange
	}
	return ing, err
}
