package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/api"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/auth"
	"github.com/dcamara/simple-portfolio/pkg/portfolio/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	docs, cleanup, err := cfg.BuildDocumentStore(ctx)
	if err != nil {
		slog.Error("Failed to initialize document store", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	files, err := cfg.BuildFileStore()
	if err != nil {
		slog.Error("Failed to initialize file store", "err", err)
		os.Exit(1)
	}

	svc, err := portfolio.New(
		portfolio.WithDocumentStore(docs),
		portfolio.WithFileStore(files),
	)
	if err != nil {
		slog.Error("Failed to initialize service", "err", err)
		os.Exit(1)
	}

	gate, err := auth.New(docs, auth.Config{
		Secret:   cfg.Auth.Secret,
		TokenTTL: cfg.TokenTTL(),
	})
	if err != nil {
		slog.Error("Failed to initialize credential gate", "err", err)
		os.Exit(1)
	}

	if cfg.Auth.AdminPassword != "" {
		if err := gate.SeedCredential(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			slog.Error("Failed to seed admin credential", "err", err)
			os.Exit(1)
		}
	}

	authHandler := api.NewAuthHandler(gate)
	portfolioHandler := api.NewPortfolioHandler(svc, files)
	adminHandler := api.NewAdminHandler(svc)

	logger := httplog.NewLogger("simple-portfolio", httplog.Options{
		LogLevel: slog.LevelInfo,
		Concise:  true,
	})

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(httplog.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, http.StatusText(http.StatusOK))
	})

	r.Route("/api", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())
		r.Mount("/portfolio", portfolioHandler.Routes())

		r.Route("/admin", func(r chi.Router) {
			r.Use(gate.Verifier())
			r.Use(gate.Authenticator)
			r.Mount("/", adminHandler.Routes())
		})
	})

	r.Get("/uploads/*", portfolioHandler.ServeUpload)

	slog.Info("portfolio server listening", "port", cfg.Port, "document_store", cfg.DocumentStore, "file_store", cfg.FileStore)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("Server stopped", "err", err)
		os.Exit(1)
	}
}
