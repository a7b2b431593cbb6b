package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finwise/internal/advisor"
	"github.com/MrJamesThe3rd/finwise/internal/config"
	"github.com/MrJamesThe3rd/finwise/internal/database"
	finwiseHttp "github.com/MrJamesThe3rd/finwise/internal/http"
	advisorHandler "github.com/MrJamesThe3rd/finwise/internal/http/advisor"
	dashboardHandler "github.com/MrJamesThe3rd/finwise/internal/http/dashboard"
	goalHandler "github.com/MrJamesThe3rd/finwise/internal/http/goal"
	reportHandler "github.com/MrJamesThe3rd/finwise/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/finwise/internal/http/transaction"
	"github.com/MrJamesThe3rd/finwise/internal/ledger"
	"github.com/MrJamesThe3rd/finwise/internal/store/memory"
	"github.com/MrJamesThe3rd/finwise/internal/store/postgres"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to set up store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	var (
		registry      = ledger.NewRegistry(store)
		advisorClient = advisor.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.Model, cfg.Advisor.APIKey, cfg.Advisor.Timeout)
	)

	var (
		transactionH = txHandler.NewHandler(registry)
		goalH        = goalHandler.NewHandler(registry)
		dashboardH   = dashboardHandler.NewHandler(registry)
		reportH      = reportHandler.NewHandler(registry)
		advisorH     = advisorHandler.NewHandler(registry, advisorClient)
	)

	router := finwiseHttp.New(cfg.Auth.Secret, transactionH, goalH, dashboardH, reportH, advisorH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "store", cfg.Store.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newStore(cfg *config.Config) (ledger.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return memory.New(), nil
	case "postgres":
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, err
		}

		if err := database.Migrate(db); err != nil {
			return nil, err
		}

		return postgres.New(db), nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
