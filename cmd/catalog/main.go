// cmd/catalog/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	_ "github.com/lib/pq"

	"github.com/Inn-Chain/innchain-contract/internal/catalog"
	"github.com/Inn-Chain/innchain-contract/internal/config"
	"github.com/Inn-Chain/innchain-contract/internal/storage/postgres"
	"github.com/Inn-Chain/innchain-contract/internal/tracing"
	"github.com/Inn-Chain/innchain-contract/pkg/eventstore"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdown, err := tracing.Init(ctx, "catalog", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdown(ctx)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	svc := catalog.NewService(postgres.NewCatalogStore(db), eventstore.NewEventStore(db))
	handler := catalog.NewHandler(svc)

	fmt.Printf("🚀 Starting Catalog Service on port %d\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.HTTPPort), handler.Routes([]byte(cfg.JWTSecret))))
}
