package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	apifinancial "storcky/pkg/api/financial"
	apiflowgraph "storcky/pkg/api/flowgraph"
	"storcky/pkg/core/edgar"
	"storcky/pkg/core/flowgraph"
	"storcky/pkg/core/ingest"
	"storcky/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const version = "0.3.0"

// ServerConfig is the config/server.yaml shape.
type ServerConfig struct {
	ListenAddr       string `yaml:"listen_addr"`
	SECUserAgent     string `yaml:"sec_user_agent"`
	CacheDir         string `yaml:"cache_dir"`
	CacheMaxAgeHours int    `yaml:"cache_max_age_hours"`
	TemplatePath     string `yaml:"template_path"`
	DatabaseURL      string `yaml:"database_url"`
}

func loadConfig() ServerConfig {
	cfg := ServerConfig{
		ListenAddr:       ":8080",
		CacheMaxAgeHours: 24,
	}
	data, err := os.ReadFile("config/server.yaml")
	if err != nil {
		fmt.Printf("[WARNING] config/server.yaml not read (%v), using defaults\n", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		fmt.Printf("[WARNING] config/server.yaml not parsed (%v), using defaults\n", err)
	}
	if ua := os.Getenv("SEC_USER_AGENT"); ua != "" {
		cfg.SECUserAgent = ua
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Base template: file if configured, built-in layout otherwise.
	base := flowgraph.DefaultTemplate()
	if cfg.TemplatePath != "" {
		if tpl, err := flowgraph.LoadTemplateFile(cfg.TemplatePath); err != nil {
			fmt.Printf("[WARNING] Template %s not loaded: %v\n", cfg.TemplatePath, err)
			fmt.Println("  Falling back to built-in income statement template")
		} else {
			base = tpl
			fmt.Printf("[TEMPLATE] Loaded %d nodes, %d links from %s\n",
				len(base.Nodes), len(base.Links), cfg.TemplatePath)
		}
	}

	// Facts cache: Postgres when a database URL is configured, files
	// otherwise.
	if cfg.DatabaseURL != "" {
		if err := store.InitDB(context.Background(), cfg.DatabaseURL); err != nil {
			fmt.Printf("[WARNING] Database connection failed: %v. Using file cache.\n", err)
		} else {
			defer store.Close()
			fmt.Println("[STORE] Database connected")
		}
	}
	cache := store.NewFactsCache(store.GetPool(), cfg.CacheDir)

	client := edgar.NewClient(cfg.SECUserAgent)
	provider := ingest.NewDatasetService(client, cache,
		time.Duration(cfg.CacheMaxAgeHours)*time.Hour)

	financialHandler := apifinancial.NewHandler(provider)
	http.HandleFunc("/api/financial/", financialHandler.HandleFinancial)

	flowgraphHandler := apiflowgraph.NewHandler(provider, flowgraph.NewCompiler(base))
	http.HandleFunc("/api/flowgraph", flowgraphHandler.HandleCompile)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"service": "storcky", "version": version})
	})

	fmt.Printf("API server starting on %s...\n", cfg.ListenAddr)
	fmt.Println("  - GET  /api/financial/{ticker}")
	fmt.Println("  - POST /api/flowgraph")
	fmt.Println("  - GET  /health")

	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
