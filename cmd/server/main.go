package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopsense/backend/config"
	httpDelivery "github.com/shopsense/backend/internal/delivery/http"
	"github.com/shopsense/backend/internal/infrastructure/cache"
	"github.com/shopsense/backend/internal/infrastructure/openai"
	"github.com/shopsense/backend/internal/infrastructure/serp"
	"github.com/shopsense/backend/internal/infrastructure/vision"
	"github.com/shopsense/backend/internal/rules"
	"github.com/shopsense/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopSense Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	tables, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		log.Fatalf("Failed to load filter rules: %v", err)
	}
	log.Printf("Filter rules version %d (%d accessory keywords, %d price bands)",
		tables.Version, len(tables.AccessoryKeywords), len(tables.PriceBands))

	// Infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	serpClient := serp.NewClient(cfg.Serp.APIKey, cfg.Serp.BaseURL, cfg.RateLimit.Serp)
	visionClient := vision.NewClient(cfg.Vision.Endpoint, cfg.Vision.Key)
	openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)

	debug := cfg.Server.Environment == "development"
	if debug {
		serpClient.SetDebug(true)
		visionClient.SetDebug(true)
		openaiClient.SetDebug(true)
		log.Printf("Provider client debug mode enabled")
	}

	// Usecase layer
	shoppingService := usecase.NewShoppingService(
		serpClient,
		serpClient,
		openaiClient,
		memoryCache,
		tables,
		usecase.ShoppingServiceConfig{
			Pipeline: usecase.PipelineConfig{
				FetchLimit:         cfg.Pipeline.FetchLimit,
				TopN:               cfg.Pipeline.TopN,
				EnableDebugLogging: debug,
			},
			CacheTTL: cfg.Cache.TTL,
		},
	)
	itemService := usecase.NewItemService(visionClient, openaiClient)

	log.Printf("Pipeline: fetch limit=%d, top N=%d", cfg.Pipeline.FetchLimit, cfg.Pipeline.TopN)

	handler := httpDelivery.NewHandler(shoppingService, itemService)
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
