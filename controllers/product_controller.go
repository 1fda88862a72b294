package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"market-api/models"
	"market-api/services"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService *services.ProductService
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"message": "invalid product id"})
		return 0, false
	}
	return id, true
}

// @Summary List products
// @Description Get all products in the catalog
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Router /products/ [get]
func (ctrl *ProductController) GetAllProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, ok := cachedProductList(ctx); ok {
		c.Data(200, "application/json", cached)
		return
	}

	products, err := ctrl.productService.GetAllProducts(ctx)
	if err != nil {
		c.JSON(500, gin.H{"message": "failed to list products"})
		return
	}

	if payload, err := json.Marshal(products); err == nil {
		storeProductList(ctx, payload)
	}

	c.JSON(200, products)
}

// @Summary Get product
// @Description Get a single product by id
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.GetProductByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"message": "failed to get product"})
		return
	}

	c.JSON(200, product)
}

// @Summary Create product
// @Description Add a new product to the catalog
// @Tags Products
// @Accept json
// @Produce json
// @Param product body models.CreateProductRequest true "Product"
// @Success 200 {object} models.Product
// @Failure 422 {object} models.ErrorResponse
// @Router /products/ [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(422, gin.H{"message": err.Error()})
		return
	}

	product, err := ctrl.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		c.JSON(500, gin.H{"message": "failed to create product"})
		return
	}

	invalidateProductCache(c.Request.Context())
	c.JSON(200, product)
}

// @Summary Update product
// @Description Update product fields; absent fields are left untouched
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.UpdateProductRequest true "Fields to update"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse
// @Router /products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(422, gin.H{"message": err.Error()})
		return
	}

	product, err := ctrl.productService.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"message": "failed to update product"})
		return
	}

	invalidateProductCache(c.Request.Context())
	c.JSON(200, product)
}

// @Summary Delete product
// @Description Remove a product; a cart item referencing it is removed as well
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := ctrl.productService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(404, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(500, gin.H{"message": "failed to delete product"})
		return
	}

	invalidateProductCache(c.Request.Context())
	c.JSON(200, product)
}
