package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/refugio-dev/refugio/internal/config"
	"github.com/refugio-dev/refugio/internal/logger"
	"github.com/refugio-dev/refugio/internal/middleware/metrics"
	"github.com/refugio-dev/refugio/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("can't initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Public.Media.SweepInterval > 0 {
		deps.Sweeper.StartBackground(ctx, cfg.Public.Media.SweepInterval)
	}

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	h := deps.Handler
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Post("/v1/auth/login", h.Login)
	r.Post("/v1/auth/logout", h.Logout)

	r.Route("/v1/animals", func(r chi.Router) {
		r.Get("/", h.ListAnimals)
		r.Get("/{id}", h.GetAnimal)
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.NeedAuth())
			r.Post("/", h.CreateAnimal)
			r.Patch("/{id}", h.UpdateAnimal)
			r.Delete("/{id}", h.DeleteAnimal)
		})
	})

	r.Route("/v1/news", func(r chi.Router) {
		r.Get("/", h.ListNews)
		r.Get("/{id}", h.GetNews)
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.NeedAuth())
			r.Post("/", h.CreateNews)
			r.Patch("/{id}", h.UpdateNews)
			r.Delete("/{id}", h.DeleteNews)
		})
	})

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	server := &http.Server{Addr: ":" + httpPort, Handler: r}
	go func() {
		<-ctx.Done()
		server.Shutdown(context.Background())
	}()

	logger.Log.Info("server started", "port", httpPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
