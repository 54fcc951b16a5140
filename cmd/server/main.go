package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/veggiekiosk/backend/config"
	httpDelivery "github.com/veggiekiosk/backend/internal/delivery/http"
	"github.com/veggiekiosk/backend/internal/infrastructure/cache"
	"github.com/veggiekiosk/backend/internal/infrastructure/gemini"
	"github.com/veggiekiosk/backend/internal/infrastructure/sqlite"
	"github.com/veggiekiosk/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting VeggieKiosk Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Database: %s", cfg.Database.Path)

	// Infrastructure: sqlite catalog/cart store, resolver cache, vision client
	store, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	memoryCache := cache.NewMemoryCache()

	debug := cfg.Server.Environment == "development"

	visionClient, err := gemini.NewClient(context.Background(), gemini.Config{
		ProjectID:         cfg.Gemini.ProjectID,
		Location:          cfg.Gemini.Location,
		CredentialsFile:   cfg.Gemini.CredentialsFile,
		Model:             cfg.Gemini.Model,
		RequestsPerMinute: cfg.Gemini.RequestsPerMinute,
	})
	if err != nil {
		log.Fatalf("Failed to create vision client: %v", err)
	}
	defer visionClient.Close()
	visionClient.SetDebug(debug)

	log.Printf("Vision model: %s (project %s, %s)", cfg.Gemini.Model, cfg.Gemini.ProjectID, cfg.Gemini.Location)

	// Usecase layer
	resolver := usecase.NewNameResolver(store, memoryCache, usecase.ResolverConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: debug,
	})
	analysis := usecase.NewAnalysisService(visionClient, resolver, usecase.AnalysisConfig{
		EnableDebugLogging: debug,
	})

	// HTTP delivery
	handler := httpDelivery.NewHandler(analysis, store, store)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
