package controllers

import (
	"context"
	"sort"
	"sync"
	"time"

	"market-api/models"
	"market-api/repositories"
	"market-api/services"

	"github.com/gin-gonic/gin"
)

// fakeStore backs handler tests with an in-memory catalog and cart.
// Every coordinator operation checks stock before touching the cart, so
// no rollback bookkeeping is needed here.
type fakeStore struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	cart     map[int64]*models.CartItem
	nextID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[int64]*models.Product),
		cart:     make(map[int64]*models.CartItem),
	}
}

func (f *fakeStore) addProduct(stock int) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.products[f.nextID] = &models.Product{
		ID:        f.nextID,
		Name:      "product",
		Price:     5,
		Stock:     stock,
		CreatedAt: time.Now(),
	}
	return f.nextID
}

func (f *fakeStore) InTx(ctx context.Context, fn func(catalog repositories.CatalogTx, cart repositories.CartTx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(f, f)
}

func (f *fakeStore) Cart(ctx context.Context) ([]models.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := []models.CartItem{}
	for _, item := range f.cart {
		cp := *item
		if p, ok := f.products[item.ProductID]; ok {
			pc := *p
			cp.Product = &pc
		}
		items = append(items, cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (f *fakeStore) Lock(ctx context.Context, id int64) (bool, error) {
	_, ok := f.products[id]
	return ok, nil
}

func (f *fakeStore) TryAdjustStock(ctx context.Context, id int64, delta int) (bool, error) {
	p, ok := f.products[id]
	if !ok || p.Stock+delta < 0 {
		return false, nil
	}
	p.Stock += delta
	return true, nil
}

func (f *fakeStore) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := f.products[id]
	return ok, nil
}

func (f *fakeStore) GetByProduct(ctx context.Context, productID int64) (*models.CartItem, error) {
	item, ok := f.cart[productID]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (f *fakeStore) GetByProductWithProduct(ctx context.Context, productID int64) (*models.CartItem, error) {
	item, ok := f.cart[productID]
	if !ok {
		return nil, nil
	}
	cp := *item
	if p, ok := f.products[productID]; ok {
		pc := *p
		cp.Product = &pc
	}
	return &cp, nil
}

func (f *fakeStore) UpsertIncrement(ctx context.Context, productID int64, by int) error {
	if item, ok := f.cart[productID]; ok {
		item.Quantity += by
		return nil
	}
	f.nextID++
	f.cart[productID] = &models.CartItem{
		ID:        f.nextID,
		ProductID: productID,
		Quantity:  by,
		CreatedAt: time.Now(),
	}
	return nil
}

func (f *fakeStore) SetQuantity(ctx context.Context, productID int64, quantity int) error {
	if item, ok := f.cart[productID]; ok {
		item.Quantity = quantity
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, productID int64) error {
	delete(f.cart, productID)
	return nil
}

// fakeCatalogRepo serves the product CRUD surface in handler tests.
type fakeCatalogRepo struct {
	store *fakeStore
}

func (r *fakeCatalogRepo) List(ctx context.Context) ([]models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	products := []models.Product{}
	for _, p := range r.store.products {
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *fakeCatalogRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeCatalogRepo) Create(ctx context.Context, product *models.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextID++
	product.ID = r.store.nextID
	product.CreatedAt = time.Now()
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Description != nil {
		p.Description = req.Description
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	cp := *p
	return &cp, nil
}

func (r *fakeCatalogRepo) Delete(ctx context.Context, id int64) (*models.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	delete(r.store.products, id)
	delete(r.store.cart, id)
	return p, nil
}

func newTestRouter(store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	productCtrl := NewProductController(services.NewProductService(&fakeCatalogRepo{store: store}))
	cartCtrl := NewCartController(services.NewCartService(store))

	router := gin.New()
	router.GET("/products/", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.POST("/products/", productCtrl.CreateProduct)
	router.PUT("/products/:id", productCtrl.UpdateProduct)
	router.DELETE("/products/:id", productCtrl.DeleteProduct)
	router.GET("/cart/", cartCtrl.ListCart)
	router.POST("/cart/:product_id", cartCtrl.AddToCart)
	router.PUT("/cart/:product_id", cartCtrl.SetCartQuantity)
	router.DELETE("/cart/:product_id", cartCtrl.RemoveFromCart)
	return router
}
