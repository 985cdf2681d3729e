package handler

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reviewhub/pkg/logger"
	"reviewhub/pkg/metrics"
)

// SetupRoutes настраивает все маршруты приложения с использованием Gin
func SetupRoutes(
	authHandler *AuthHandler,
	productHandler *ProductHandler,
	commentHandler *CommentHandler,
	authMiddleware *AuthMiddleware,
) *gin.Engine {
	router := gin.New()

	// Recovery middleware для обработки panic
	router.Use(gin.Recovery())

	// JSON logging middleware для HTTP-запросов
	router.Use(logger.GinLoggerMiddleware())

	// Prometheus metrics middleware
	router.Use(metrics.GinPrometheusMiddleware("reviewhub"))

	// CORS настройки
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "reviewhub",
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Публичные эндпоинты аутентификации
	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(authMiddleware.Authenticate())
		{
			protected.GET("/me", authHandler.GetMe)
		}
	}

	// Каталог товаров: чтение публичное, включая одобренные комментарии товара
	products := router.Group("/products")
	{
		products.GET("", productHandler.GetAllProducts)
		products.GET("/:product_id", productHandler.GetProduct)
		products.GET("/:product_id/comments", productHandler.GetProductComments)

		// Управление каталогом - только администратор
		manage := products.Group("")
		manage.Use(authMiddleware.Authenticate())
		manage.Use(authMiddleware.RequireAdmin())
		{
			manage.POST("", productHandler.CreateProduct)
			manage.PATCH("/:product_id", productHandler.UpdateProduct)
			manage.DELETE("/:product_id", productHandler.DeleteProduct)
		}
	}

	// Комментарии: все операции требуют аутентификации
	comments := router.Group("/comments")
	comments.Use(authMiddleware.Authenticate())
	{
		comments.GET("", commentHandler.ListComments)
		comments.POST("", commentHandler.CreateComment)
		comments.GET("/:comment_id", commentHandler.GetComment)
		comments.PATCH("/:comment_id", commentHandler.UpdateComment)
		comments.DELETE("/:comment_id", commentHandler.DeleteComment)

		// Модерация - только администратор
		moderation := comments.Group("")
		moderation.Use(authMiddleware.RequireAdmin())
		{
			moderation.PATCH("/:comment_id/approve", commentHandler.ApproveComment)
			moderation.PATCH("/:comment_id/reject", commentHandler.RejectComment)
			moderation.GET("/pending", commentHandler.ListPending)
			moderation.GET("/approved", commentHandler.ListApproved)
			moderation.GET("/moderation-log", commentHandler.GetModerationLog)
		}
	}

	return router
}
