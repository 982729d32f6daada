package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/sluice"
	"github.com/aretw0/sluice/internal/logging"
	httpAdapter "github.com/aretw0/sluice/pkg/adapters/http"
	"github.com/aretw0/sluice/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/sluice/pkg/adapters/redis"
	"github.com/aretw0/sluice/pkg/config"
	"github.com/aretw0/sluice/pkg/domain"
	"github.com/aretw0/sluice/pkg/observability"
	"github.com/aretw0/sluice/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bookshelf HTTP server",
	Long:  `Starts the demo catalog server. Reads are dispatched asynchronously: handlers return producers and sluice applies exactly one response per request.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfgPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")

		cfg := config.Default()
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				fmt.Printf("Error loading config: %v\n", err)
				os.Exit(1)
			}
			cfg = loaded
		}
		if listen != "" {
			cfg.Listen = listen
		}

		logger := logging.NewJSON(slog.LevelInfo)
		metrics := observability.New(prometheus.DefaultRegisterer)

		books, err := newSource(cfg, logger)
		if err != nil {
			fmt.Printf("Error initializing document source: %v\n", err)
			os.Exit(1)
		}

		dispatcher := sluice.New(
			sluice.WithLogger(logger),
			sluice.WithMetrics(metrics),
			sluice.WithTimeout(cfg.DispatchTimeout.Std()),
			sluice.WithDefaultAction(domain.Respond(nil, cfg.DefaultStatus)),
		)
		binder := httpAdapter.NewBinder(dispatcher, httpAdapter.WithLogger(logger))
		controller := &bookController{books: books}

		r := chi.NewRouter()
		r.Get("/books", binder.Handle(controller.listBooks))
		r.Get("/books/{id}", binder.Handle(controller.getBook))
		r.Post("/books", binder.Handle(controller.createBook))
		r.Handle("/metrics", promhttp.Handler())
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: r,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting bookshelf server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("bookshelf server stopped")
		}
	},
}

// newSource picks the document source: Redis when an address is
// configured, otherwise a seeded in-memory store.
func newSource(cfg *config.Config, logger *slog.Logger) (ports.DocumentSource, error) {
	if cfg.Redis.Addr != "" {
		client := backend.NewClient(&backend.Options{Addr: cfg.Redis.Addr})
		logger.Info("using redis document source", "addr", cfg.Redis.Addr)
		return redisAdapter.NewFromClient(client,
			redisAdapter.WithPrefix(cfg.Redis.Prefix),
			redisAdapter.WithTTL(cfg.Redis.TTL.Std()),
		), nil
	}

	store := memory.New()
	seed := []Book{
		{ID: "1", Title: "The Count of Monte Cristo", Author: "Alexandre Dumas"},
		{ID: "2", Title: "Wiersze wybrane", Author: "Wisława Szymborska"},
		{ID: "42", Title: "Mostly Harmless", Author: "Douglas Adams"},
	}
	for _, b := range seed {
		doc, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		if err := store.Put(context.Background(), bookPrefix+b.ID, doc); err != nil {
			return nil, err
		}
	}
	logger.Info("using in-memory document source", "seeded", len(seed))
	return store, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Listen address (overrides config)")
}
