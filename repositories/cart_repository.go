package repositories

import (
	"context"
	"errors"

	"market-api/config"
	"market-api/models"

	"github.com/jackc/pgx/v5"
)

type CartRepository struct {
	db Querier
}

func NewCartRepository() *CartRepository {
	return &CartRepository{db: config.DB}
}

func NewCartRepositoryWithDB(db Querier) *CartRepository {
	return &CartRepository{db: db}
}

const cartJoinQuery = `
	SELECT ci.id, ci.product_id, ci.quantity, ci.created_at,
	       p.id, p.name, p.price, p.description, p.stock, p.created_at
	FROM cart_items ci
	JOIN products p ON p.id = ci.product_id`

func scanCartItemJoined(row pgx.Row) (*models.CartItem, error) {
	var item models.CartItem
	var product models.Product
	err := row.Scan(
		&item.ID, &item.ProductID, &item.Quantity, &item.CreatedAt,
		&product.ID, &product.Name, &product.Price, &product.Description,
		&product.Stock, &product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Product = &product
	return &item, nil
}

func (r *CartRepository) ListWithProducts(ctx context.Context) ([]models.CartItem, error) {
	rows, err := r.db.Query(ctx, cartJoinQuery+` ORDER BY ci.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}
	for rows.Next() {
		item, err := scanCartItemJoined(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// GetByProduct locks the cart row it returns. Inside a reservation
// transaction the read quantity is the base for the stock delta, so it
// must not change under us before commit.
func (r *CartRepository) GetByProduct(ctx context.Context, productID int64) (*models.CartItem, error) {
	query := `SELECT id, product_id, quantity, created_at
	          FROM cart_items WHERE product_id = $1 FOR UPDATE`

	var item models.CartItem
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&item.ID, &item.ProductID, &item.Quantity, &item.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) GetByProductWithProduct(ctx context.Context, productID int64) (*models.CartItem, error) {
	item, err := scanCartItemJoined(r.db.QueryRow(ctx, cartJoinQuery+` WHERE ci.product_id = $1`, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpsertIncrement creates the cart row with quantity `by`, or adds `by`
// to the existing row. The unique constraint on product_id keeps the
// cart at one row per product.
func (r *CartRepository) UpsertIncrement(ctx context.Context, productID int64, by int) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO cart_items (product_id, quantity)
		VALUES ($1, $2)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		productID, by,
	)
	return err
}

func (r *CartRepository) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	_, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE product_id = $2`,
		quantity, productID,
	)
	return err
}

func (r *CartRepository) Delete(ctx context.Context, productID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM cart_items WHERE product_id = $1`, productID)
	return err
}
