package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/finwick/nexus/internal/analysis"
	analysisStore "github.com/finwick/nexus/internal/analysis/store"
	"github.com/finwick/nexus/internal/config"
	"github.com/finwick/nexus/internal/database"
	nexusHttp "github.com/finwick/nexus/internal/http"
	analysisHandler "github.com/finwick/nexus/internal/http/analysis"
	"github.com/finwick/nexus/internal/rules"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	catalog := rules.DefaultCatalog()

	if cfg.Rules.CatalogPath != "" {
		catalog, err = rules.Load(cfg.Rules.CatalogPath)
		if err != nil {
			slog.Error("failed to load jurisdiction catalog", "path", cfg.Rules.CatalogPath, "error", err)
			os.Exit(1)
		}

		slog.Info("loaded jurisdiction catalog", "path", cfg.Rules.CatalogPath)
	}

	proximity, err := decimal.NewFromString(cfg.Engine.ApproachingThreshold)
	if err != nil {
		slog.Error("invalid approaching threshold", "value", cfg.Engine.ApproachingThreshold, "error", err)
		os.Exit(1)
	}

	analysisService := analysis.NewService(analysisStore.New(db), catalog, proximity)
	analysisH := analysisHandler.NewHandler(analysisService)

	router := nexusHttp.New(analysisH, cfg.Auth.JWTSecret)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
