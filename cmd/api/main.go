// File: cmd/api/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/RainerNsa/PhCityRent-sub000/internal/cache"
	"github.com/RainerNsa/PhCityRent-sub000/internal/config"
	"github.com/RainerNsa/PhCityRent-sub000/internal/handlers"
	"github.com/RainerNsa/PhCityRent-sub000/internal/history"
	"github.com/RainerNsa/PhCityRent-sub000/internal/providers"
	"github.com/RainerNsa/PhCityRent-sub000/internal/receipt"
	"github.com/RainerNsa/PhCityRent-sub000/internal/routes"
	"github.com/RainerNsa/PhCityRent-sub000/internal/services"
	"github.com/RainerNsa/PhCityRent-sub000/internal/verify"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Reading from environment.")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Could not load configuration: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	registry := buildRegistry(cfg)
	orchestrator := verify.New(registry, cfg.VerifyMaxAttempts, cfg.VerifyRetryDelay)

	store, err := history.NewSQLiteStore(cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("FATAL: Could not open payment history database: %v", err)
	}
	defer store.Close()

	var recordedCache cache.RecordedCache
	if cfg.RedisAddr != "" {
		recordedCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, 0)
		log.Printf("INFO: Recorded-payment cache enabled via Redis at %s", cfg.RedisAddr)
	}

	sms := services.NewSMSService(cfg.TermiiAPIKey, cfg.TermiiSenderID, "")
	recorder := history.NewRecorder(store, recordedCache, sms)

	var uploader services.ReceiptUploader
	if cfg.CloudinaryConfigured() {
		cloudinarySvc, err := services.NewCloudinaryService(cfg)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		uploader = cloudinarySvc
	} else {
		log.Println("WARN: Cloudinary is not configured. Receipt sharing will not carry public links.")
	}

	router := routes.SetupRouter(cfg,
		handlers.NewPaymentHandler(orchestrator, recorder),
		handlers.NewReceiptHandler(store, receipt.Defaults{}, uploader),
		handlers.NewHistoryHandler(store),
	)

	listenAddr := fmt.Sprintf(":%s", cfg.GinPort)

	log.Printf("🚀 Starting PhCityRent payments server at: http://localhost%s", listenAddr)

	if err := router.Run(listenAddr); err != nil {
		log.Fatalf("FATAL: Could not start server: %v", err)
	}
}

// buildRegistry wires every configured gateway adapter. Paystack is always
// present and acts as the default for references without a provider hint.
func buildRegistry(cfg *config.Config) *providers.Registry {
	primary := providers.NewPaystackAdapter(cfg.PaystackSecretKey, "")

	var others []providers.Adapter
	if cfg.FlutterwaveSecretKey != "" {
		others = append(others, providers.NewFlutterwaveAdapter(cfg.FlutterwaveSecretKey, ""))
	}
	if cfg.MonnifyAPIKey != "" && cfg.MonnifySecretKey != "" {
		others = append(others, providers.NewMonnifyAdapter(cfg.MonnifyAPIKey, cfg.MonnifySecretKey, ""))
	}
	if cfg.RemitaAPIKey != "" && cfg.RemitaMerchantID != "" {
		others = append(others, providers.NewRemitaAdapter(cfg.RemitaMerchantID, cfg.RemitaAPIKey, ""))
	}

	return providers.NewRegistry(primary, others...)
}
