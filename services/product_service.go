package services

import (
	"context"

	"market-api/models"
	"market-api/repositories"
)

type ProductService struct {
	productRepo repositories.CatalogRepository
}

func NewProductService(repo repositories.CatalogRepository) *ProductService {
	return &ProductService{productRepo: repo}
}

func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *ProductService) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Description: req.Description,
		Stock:       req.Stock,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.productRepo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// DeleteProduct removes the product; the cart row referencing it, if
// any, goes with it through the cascade.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
