package main

//go:generate swag init

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/vetsone/clinic-billing/billing"
	"github.com/vetsone/clinic-billing/config"
	"github.com/vetsone/clinic-billing/db"
	_ "github.com/vetsone/clinic-billing/docs"
	"github.com/vetsone/clinic-billing/handlers"
	"github.com/vetsone/clinic-billing/pdf"
)

// @title           Clinic Billing API
// @version         1.0.0
// @description     Local billing service: invoice drafts in, PDF receipts and a SQLite ledger out.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.basic  BasicAuth

func main() {
	// .env is optional; real environment wins
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	// Configure structured logging
	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	// Open database and run migrations
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Ensure the invoice output directory exists up front
	if err := os.MkdirAll(cfg.InvoiceDir, 0755); err != nil {
		slog.Error("failed to create invoice directory", "error", err)
		os.Exit(1)
	}

	store := db.NewStore(database)
	renderer := &pdf.Renderer{
		Clinic: pdf.ClinicInfo{
			Name:         cfg.ClinicName,
			Subtitle:     cfg.ClinicSubtitle,
			AddressLines: []string{cfg.ClinicAddress, cfg.ClinicPhone},
		},
		LogoPath: cfg.LogoPath,
	}

	handlers.Service = billing.NewService(store, renderer, cfg.InvoiceDir)
	handlers.Store = store

	// Router setup
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(handlers.BasicAuth(cfg.AuthUser, cfg.AuthPass))

		r.Post("/invoices", handlers.CommitInvoice)
		r.Post("/invoices/preview", handlers.PreviewDraft)
		r.Get("/invoices", handlers.ListInvoices)
		r.Get("/invoices/{receiptNo}", handlers.GetInvoice)
		r.Post("/invoices/{receiptNo}/print", handlers.PrintInvoice)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("server starting", "address", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
