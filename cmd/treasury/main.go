// cmd/treasury/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Inn-Chain/innchain-contract/internal/config"
	"github.com/Inn-Chain/innchain-contract/internal/tracing"
	"github.com/Inn-Chain/innchain-contract/internal/treasury"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdown, err := tracing.Init(ctx, "treasury", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdown(ctx)

	handler := treasury.NewHandler(treasury.NewService())

	fmt.Printf("🚀 Starting Treasury Service on port %d\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.HTTPPort), handler.Routes([]byte(cfg.JWTSecret))))
}
