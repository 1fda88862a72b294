package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"market-api/config"
	"market-api/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository struct {
	db Querier
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{db: config.DB}
}

func NewProductRepositoryWithDB(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT id, name, price, description, stock, created_at
	          FROM products ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT id, name, price, description, stock, created_at
	          FROM products WHERE id = $1`

	var p models.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Stock, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, price, description, stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query,
		product.Name, product.Price, product.Description, product.Stock,
	).Scan(&product.ID, &product.CreatedAt)
}

// Update applies only the non-nil fields of req. Returns nil when the
// product does not exist.
func (r *ProductRepository) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	sets := []string{}
	args := []any{}
	paramIndex := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", paramIndex))
		args = append(args, *req.Name)
		paramIndex++
	}
	if req.Price != nil {
		sets = append(sets, fmt.Sprintf("price = $%d", paramIndex))
		args = append(args, *req.Price)
		paramIndex++
	}
	if req.Description != nil {
		sets = append(sets, fmt.Sprintf("description = $%d", paramIndex))
		args = append(args, *req.Description)
		paramIndex++
	}
	if req.Stock != nil {
		sets = append(sets, fmt.Sprintf("stock = $%d", paramIndex))
		args = append(args, *req.Stock)
		paramIndex++
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE products SET %s WHERE id = $%d
		 RETURNING id, name, price, description, stock, created_at`,
		strings.Join(sets, ", "), paramIndex,
	)

	var p models.Product
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Stock, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product and, via the ON DELETE CASCADE foreign
// key, any cart item referencing it. Returns nil when not found.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (*models.Product, error) {
	query := `DELETE FROM products WHERE id = $1
	          RETURNING id, name, price, description, stock, created_at`

	var p models.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Stock, &p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Lock takes the product row lock for the rest of the transaction and
// reports whether the product exists. Coordinator operations lock the
// product row before reading the cart row, so per-product work
// serializes in one order.
func (r *ProductRepository) Lock(ctx context.Context, id int64) (bool, error) {
	var lockedID int64
	err := r.db.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR UPDATE`, id).Scan(&lockedID)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lock product: %w", err)
	}
	return true, nil
}

// TryAdjustStock applies stock += delta in a single conditional update
// and reports whether it committed. The row-level condition is the only
// serialization point for concurrent reservations: no read-then-write,
// no lost updates.
func (r *ProductRepository) TryAdjustStock(ctx context.Context, id int64, delta int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = stock + $1
		WHERE id = $2 AND stock + $1 >= 0`,
		delta, id,
	)
	if err != nil {
		return false, fmt.Errorf("adjust stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ProductRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
