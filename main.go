package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/ytkg/orders/config"
	httpapi "github.com/ytkg/orders/internal/api/http"
	"github.com/ytkg/orders/internal/domain"
	"github.com/ytkg/orders/internal/id"
	"github.com/ytkg/orders/internal/service"
	"github.com/ytkg/orders/internal/storage"
)

// @title Bar Order Memo API
// @version 1.0
// @description Draft-order memo, visitor registry and confirmed-order snapshots for a bar floor.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()
	ids := id.NewGenerator(id.RandomUUID)

	memo := service.NewMemoService(
		buildMenuRepository(),
		ids,
		buildConfirmationPublisher(),
		service.DefaultQRGenerator{BaseURL: config.Getenv("PUBLIC_BASE_URL", "http://localhost:8080")},
	)
	visitors := service.NewVisitorService(ctx, buildVisitorStore(), ids, memo)

	handler := httpapi.NewHandler(memo, visitors)
	httpapi.StartServer(":"+config.Getenv("PORT", "8080"), httpapi.NewRouter(handler))
}

// buildMenuRepository prefers Postgres when configured and falls back to
// the built-in catalog.
func buildMenuRepository() service.MenuRepository {
	if os.Getenv("DB_HOST") == "" {
		log.Println("DB_HOST not set, serving the built-in menu catalog")
		return storage.NewMemoryMenuRepository(nil)
	}

	repo := storage.NewPostgresMenuRepository(config.MustInitPostgres())
	if err := repo.EnsureSchema(domain.DefaultMenuItems()); err != nil {
		log.Fatal("Failed to ensure menu schema:", err)
	}
	return repo
}

// buildVisitorStore prefers Redis when configured; otherwise the visitor
// registry lives only as long as the process.
func buildVisitorStore() storage.VisitorStore {
	if os.Getenv("REDIS_HOST") == "" {
		log.Println("REDIS_HOST not set, keeping visitors in memory")
		return storage.NewMemoryVisitorStore()
	}
	return storage.NewRedisVisitorStore(config.MustInitRedis())
}

func buildConfirmationPublisher() service.ConfirmationPublisher {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		log.Println("KAFKA_BROKER not set, skipping confirmation events")
		return nil
	}
	return storage.NewKafkaConfirmationPublisher(config.NewKafkaWriter(config.Getenv("KAFKA_TOPIC", "orders_confirmed")))
}
