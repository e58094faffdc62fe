package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/centavoapp/centavo/internal/auth"
	"github.com/centavoapp/centavo/internal/config"
	"github.com/centavoapp/centavo/internal/database"
	"github.com/centavoapp/centavo/internal/export"
	centavoHttp "github.com/centavoapp/centavo/internal/http"
	budgetHandler "github.com/centavoapp/centavo/internal/http/budget"
	categoryHandler "github.com/centavoapp/centavo/internal/http/category"
	planningHandler "github.com/centavoapp/centavo/internal/http/planning"
	reportHandler "github.com/centavoapp/centavo/internal/http/reportapi"
	sessionHandler "github.com/centavoapp/centavo/internal/http/session"
	txHandler "github.com/centavoapp/centavo/internal/http/transaction"
	walletHandler "github.com/centavoapp/centavo/internal/http/wallet"
	"github.com/centavoapp/centavo/internal/importer"
	"github.com/centavoapp/centavo/internal/ledger"
	"github.com/centavoapp/centavo/internal/report"
	"github.com/centavoapp/centavo/internal/snapshot/memstore"
	"github.com/centavoapp/centavo/internal/snapshot/sqlstore"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	snap, cleanup, err := openSnapshotter(cfg)
	if err != nil {
		slog.Error("failed to open snapshot storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer cleanup()

	store := ledger.NewStore()
	ledgerService := ledger.NewService(store, snap, slog.Default())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := ledgerService.Load(ctx); err != nil {
		slog.Error("failed to load snapshot", "error", err)
		os.Exit(1)
	}

	var (
		reportService = report.New(store)
		exportService = export.NewService(store)
		importService = importer.NewService(ledgerService, slog.Default())
	)

	var issuer *auth.Issuer
	if cfg.Auth.Secret != "" {
		issuer = auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TTL)
	} else {
		slog.Warn("AUTH_SECRET is empty, API runs unauthenticated")
	}

	router := centavoHttp.New(
		issuer,
		sessionHandler.NewHandler(ledgerService, issuer),
		walletHandler.NewHandler(ledgerService),
		categoryHandler.NewHandler(ledgerService),
		txHandler.NewHandler(ledgerService),
		budgetHandler.NewHandler(ledgerService, reportService),
		planningHandler.NewHandler(ledgerService),
		reportHandler.NewHandler(reportService, exportService, importService),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "addr", addr, "backend", cfg.Storage.Backend)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// openSnapshotter picks the snapshot backend from config. The cleanup
// function closes the database when there is one.
func openSnapshotter(cfg *config.Config) (ledger.Snapshotter, func(), error) {
	switch cfg.Storage.Backend {
	case database.BackendMemory:
		return memstore.New(), func() {}, nil

	case database.BackendSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		return sqlstore.New(db), func() { db.Close() }, nil

	case database.BackendPostgres:
		db, err := database.OpenPostgres(cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		return sqlstore.New(db), func() { db.Close() }, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
