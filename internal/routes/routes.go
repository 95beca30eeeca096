package routes

import (
	"fmt"
	"log"
	"net/http"

	"github.com/RainerNsa/PhCityRent-sub000/internal/config"
	"github.com/RainerNsa/PhCityRent-sub000/internal/handlers"
	"github.com/RainerNsa/PhCityRent-sub000/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config, payments *handlers.PaymentHandler, receipts *handlers.ReceiptHandler, paymentHistory *handlers.HistoryHandler) *gin.Engine {
	router := gin.Default()

	if cfg.FrontendURL == "" {
		log.Println("WARN: FRONTEND_URL not set. CORS might be too permissive or too restrictive.")
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
		}))
	} else {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
		}))
		log.Printf("INFO: CORS configured to allow origin: %s", cfg.FrontendURL)
	}

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	paymentGroup := router.Group("/payments")
	{
		paymentGroup.GET("/callback", payments.HandlePaymentCallback)
		paymentGroup.GET("/history", middleware.Auth(cfg.JWTSecretKey), paymentHistory.HandleListHistory)
	}

	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/payment", middleware.VerifyPaymentWebhook(cfg.PaymentWebhookSecret), payments.HandlePaymentWebhook)
	}

	receiptGroup := router.Group("/receipts")
	{
		receiptGroup.GET("/:reference/:format", receipts.HandleDownloadReceipt)
		receiptGroup.POST("/:reference/share", receipts.HandleShareReceipt)
	}

	log.Println("✅ Registered API Routes:")
	for _, route := range router.Routes() {
		log.Println(fmt.Sprintf("    - %-6s %s", route.Method, route.Path))
	}

	return router
}
