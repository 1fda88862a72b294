package controllers

import (
	"errors"
	"strconv"

	"market-api/models"
	"market-api/services"

	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService *services.CartService
}

func NewCartController(cartService *services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

func parseProductID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"message": "invalid product id"})
		return 0, false
	}
	return id, true
}

// @Summary List cart
// @Description Get all cart items joined with their products
// @Tags Cart
// @Produce json
// @Success 200 {array} models.CartItem
// @Router /cart/ [get]
func (ctrl *CartController) ListCart(c *gin.Context) {
	items, err := ctrl.cartService.ListCart(c.Request.Context())
	if err != nil {
		c.JSON(500, gin.H{"message": "failed to list cart"})
		return
	}
	c.JSON(200, items)
}

// @Summary Add to cart
// @Description Reserve one unit of stock and add it to the cart
// @Tags Cart
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} models.CartItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{product_id} [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	item, err := ctrl.cartService.AddToCart(c.Request.Context(), productID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(404, gin.H{"message": "Product not found"})
		case errors.Is(err, services.ErrOutOfStock):
			c.JSON(400, gin.H{"message": "Product out of stock"})
		default:
			c.JSON(500, gin.H{"message": "failed to add to cart"})
		}
		return
	}

	invalidateProductCache(c.Request.Context())
	c.JSON(200, item)
}

// @Summary Set cart quantity
// @Description Set the exact quantity for a product already in the cart; zero removes it
// @Tags Cart
// @Accept json
// @Produce json
// @Param product_id path int true "Product ID"
// @Param body body models.SetCartQuantityRequest true "New quantity"
// @Success 200 {object} models.CartItem
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{product_id} [put]
func (ctrl *CartController) SetCartQuantity(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req models.SetCartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"message": "quantity is required"})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(400, gin.H{"message": "quantity cannot be negative"})
		return
	}

	item, removed, err := ctrl.cartService.SetQuantity(c.Request.Context(), productID, *req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotInCart):
			c.JSON(404, gin.H{"message": "Item not in cart"})
		case errors.Is(err, services.ErrInsufficientStock):
			c.JSON(400, gin.H{"message": "Insufficient stock"})
		default:
			c.JSON(500, gin.H{"message": "failed to update cart"})
		}
		return
	}

	invalidateProductCache(c.Request.Context())

	if removed {
		c.JSON(200, models.RemovedResponse{Status: "removed", ProductID: productID})
		return
	}
	c.JSON(200, item)
}

// @Summary Remove from cart
// @Description Delete a cart item and return its reserved stock to the product
// @Tags Cart
// @Produce json
// @Param product_id path int true "Product ID"
// @Success 200 {object} models.RemovedResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /cart/{product_id} [delete]
func (ctrl *CartController) RemoveFromCart(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveFromCart(c.Request.Context(), productID); err != nil {
		if errors.Is(err, services.ErrNotInCart) {
			c.JSON(404, gin.H{"message": "Item not in cart"})
			return
		}
		c.JSON(500, gin.H{"message": "failed to remove from cart"})
		return
	}

	invalidateProductCache(c.Request.Context())
	c.JSON(200, models.RemovedResponse{Status: "removed", ProductID: productID})
}
