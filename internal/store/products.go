package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/safar/shopfront/internal/database"
	"github.com/safar/shopfront/internal/models"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, name, price, category_id, description, color, stock, featured, image_url`

// ProductFilter narrows a catalog search. Nil fields are not applied.
type ProductFilter struct {
	CategoryID *int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Color      string
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, product *models.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CategoryID,
		&product.Description,
		&product.Color,
		&product.Stock,
		&product.Featured,
		&product.ImageURL,
	)
}

func CreateProduct(ctx context.Context, q database.Querier, p models.Product) (*models.Product, error) {
	product := &models.Product{}

	query := `
		INSERT INTO products (name, price, category_id, description, color, stock, featured, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	row := q.QueryRowContext(ctx, query,
		p.Name, p.Price, p.CategoryID, p.Description, p.Color, p.Stock, p.Featured, p.ImageURL)
	if err := scanProduct(row, product); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, database.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func GetProduct(ctx context.Context, q database.Querier, id int64) (*models.Product, error) {
	product := &models.Product{}

	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	if err := scanProduct(q.QueryRowContext(ctx, query, id), product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	return product, nil
}

func (f ProductFilter) where() (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Color != "" {
		add("LOWER(color) = LOWER($%d)", f.Color)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func SearchProducts(ctx context.Context, q database.Querier, filter ProductFilter, page, pageSize int) (*OffsetPage, error) {
	where, args := filter.where()

	var total int64
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY product_id LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)+1, len(args)+2)

	rows, err := q.QueryContext(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return newOffsetPage(products, total, page, pageSize), nil
}

func ListProductsByCategory(ctx context.Context, q database.Querier, categoryID int64) ([]models.Product, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE category_id = $1 ORDER BY product_id`,
		categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var product models.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return products, nil
}
