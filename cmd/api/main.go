package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Anderson5247/Blue-acai-app-Mirinzal/internal/modules/catalog"
	"github.com/Anderson5247/Blue-acai-app-Mirinzal/internal/modules/order"
	"github.com/Anderson5247/Blue-acai-app-Mirinzal/internal/storage/jsonfile"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Error("Error loading .env file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dataDir := envOr("DATA_DIR", ".")

	// ── Stores ──────────────────────────────────────────────
	// One flat JSON document per store. Saves are serialized per document
	// within this process; two processes sharing the data dir still race,
	// last write wins.
	catalogFile := jsonfile.New(filepath.Join(dataDir, "items.json"), logger)
	ordersFile := jsonfile.New(filepath.Join(dataDir, "orders.json"), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := jsonfile.Watch(ctx, logger, catalogFile, ordersFile); err != nil && ctx.Err() == nil {
			logger.Warn("data file watcher stopped", slog.String("error", err.Error()))
		}
	}()

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Catalog & shop status ───────────────────────────────
	catalogRepo := catalog.NewFileRepository(catalogFile)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Orders & reporting ──────────────────────────────────
	orderRepo := order.NewFileRepository(ordersFile, logger)
	orderService := order.NewService(orderRepo)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Static menu & admin pages ───────────────────────────
	publicDir := envOr("PUBLIC_DIR", "./public")
	router.Handle("/*", http.FileServer(http.Dir(publicDir)))

	// ── Start Server ────────────────────────────────────────
	port := envOr("PORT", "3000")
	logger.Info("acai shop server starting", slog.String("port", port), slog.String("dataDir", dataDir))
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
