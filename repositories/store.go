package repositories

import (
	"context"
	"fmt"

	"market-api/config"
	"market-api/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CatalogRepository is the catalog read/write surface used by the
// product service.
type CatalogRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) (*models.Product, error)
}

// CatalogTx and CartTx are the operations available to the cart
// service inside a reservation transaction.
type CatalogTx interface {
	Lock(ctx context.Context, id int64) (bool, error)
	TryAdjustStock(ctx context.Context, id int64, delta int) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type CartTx interface {
	GetByProduct(ctx context.Context, productID int64) (*models.CartItem, error)
	GetByProductWithProduct(ctx context.Context, productID int64) (*models.CartItem, error)
	UpsertIncrement(ctx context.Context, productID int64, by int) error
	SetQuantity(ctx context.Context, productID int64, quantity int) error
	Delete(ctx context.Context, productID int64) error
}

// Store scopes one function to a single database transaction spanning
// the catalog and the cart. The transaction commits only when fn
// returns nil; any error rolls back both sides.
type Store interface {
	InTx(ctx context.Context, fn func(catalog CatalogTx, cart CartTx) error) error
	Cart(ctx context.Context) ([]models.CartItem, error)
}

type PgStore struct {
	pool *pgxpool.Pool
}

func NewStore() *PgStore {
	return &PgStore{pool: config.DB}
}

func NewStoreWithPool(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) InTx(ctx context.Context, fn func(catalog CatalogTx, cart CartTx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&ProductRepository{db: tx}, &CartRepository{db: tx}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Cart lists the cart outside any transaction; reads need no
// reservation scope.
func (s *PgStore) Cart(ctx context.Context) ([]models.CartItem, error) {
	repo := &CartRepository{db: s.pool}
	return repo.ListWithProducts(ctx)
}
