package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/repositories"
	"storefront/internal/server"
	"storefront/internal/services"
	"storefront/internal/storage"
	"storefront/pkg/rabbitmq"

	"gorm.io/gorm"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// --- Store ---
	db, err := database.Open(database.Config{
		Driver: cfg.DatabaseDriver,
		DSN:    cfg.DatabaseDSN,
		Debug:  cfg.DatabaseDebug,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// --- Blob storage ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	blobs, err := newBlobStore(ctx, cfg, db)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize %s blob storage: %v", cfg.BlobBackend, err)
	}
	log.Printf("Using %s blob storage", cfg.BlobBackend)

	// --- Catalog events (optional) ---
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		if err := mqClient.ConsumeCatalogEvents(rabbitmq.LogCatalogEvent); err != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL is not set. Catalog events are disabled.")
	}

	// --- Repositories and services ---
	userRepo := repositories.NewGORMUserRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)

	app := server.New(server.Deps{
		Auth:       services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.CartSlots),
		Products:   services.NewProductService(productRepo, events),
		Cart:       services.NewCartService(userRepo, cartRepo, cfg.CartSlots),
		Images:     services.NewImageService(blobs),
		RequestLog: true,
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Printf("Server stopped listening: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// newBlobStore builds the blob store selected by BLOB_BACKEND.
func newBlobStore(ctx context.Context, cfg *config.Config, db *gorm.DB) (storage.BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendDB:
		return storage.NewDBStore(db, storage.DefaultChunkSize), nil
	case config.BlobBackendDisk:
		return storage.NewDiskStore(cfg.UploadDir)
	case config.BlobBackendMinIO:
		return storage.NewMinIOStore(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
	}
	return nil, fmt.Errorf("unsupported blob backend %q", cfg.BlobBackend)
}
