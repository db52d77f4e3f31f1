package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
)

func CreateCategory(ctx context.Context, q database.Querier, name, description string) (*models.Category, error) {
	category := &models.Category{}

	err := q.QueryRowContext(ctx,
		`INSERT INTO categories (name, description)
		 VALUES ($1, $2)
		 RETURNING category_id, name, description`,
		name, description).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func GetCategory(ctx context.Context, q database.Querier, id int64) (*models.Category, error) {
	category := &models.Category{}

	err := q.QueryRowContext(ctx,
		`SELECT category_id, name, description FROM categories WHERE category_id = $1`,
		id).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func ListCategories(ctx context.Context, q database.Querier) ([]models.Category, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT category_id, name, description FROM categories ORDER BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return categories, nil
}
