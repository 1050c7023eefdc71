// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Inn-Chain/innchain-contract/internal/config"
	"github.com/Inn-Chain/innchain-contract/internal/tracing"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdown, err := tracing.Init(ctx, "api", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer shutdown(ctx)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	mount(r, "/api/v1/catalog", cfg.CatalogURL)
	mount(r, "/api/v1/ledger", cfg.LedgerURL)
	mount(r, "/api/v1/identity", cfg.IdentityURL)
	mount(r, "/api/v1/treasury", cfg.TreasuryURL)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	fmt.Printf("🚀 Starting API Gateway on port %d\n", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.HTTPPort), r))
}

func mount(r chi.Router, prefix, target string) {
	u, err := url.Parse(target)
	if err != nil {
		log.Fatalf("Failed to parse upstream URL %q: %v", target, err)
	}
	proxy := httputil.NewSingleHostReverseProxy(u)
	r.Handle(prefix+"/*", http.StripPrefix(prefix, proxy))
}
