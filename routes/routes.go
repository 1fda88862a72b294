package routes

import (
	"market-api/controllers"
	"market-api/repositories"
	"market-api/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	store := repositories.NewStore()
	productSvc := services.NewProductService(repositories.NewProductRepository())
	cartSvc := services.NewCartService(store)

	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.GET("/products/", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.POST("/products/", productCtrl.CreateProduct)
	router.PUT("/products/:id", productCtrl.UpdateProduct)
	router.DELETE("/products/:id", productCtrl.DeleteProduct)

	router.GET("/cart/", cartCtrl.ListCart)
	router.POST("/cart/:product_id", cartCtrl.AddToCart)
	router.PUT("/cart/:product_id", cartCtrl.SetCartQuantity)
	router.DELETE("/cart/:product_id", cartCtrl.RemoveFromCart)
}
