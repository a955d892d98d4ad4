package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesboard/internal/board"
	"notesboard/internal/client"
	"notesboard/internal/config"
	"notesboard/internal/metrics"
	"notesboard/internal/web"
)

//go:embed static
var staticFS embed.FS

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Logger
	logger := config.NewLogger(cfg.LogLevel)

	// Wire dependencies
	users := client.NewUsersClient(cfg.UsersBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger.With("service", "users")),
	)
	notes := client.NewNotesClient(cfg.NotesBaseURL,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger.With("service", "notes")),
	)

	sessions := web.NewSessions(func(screen *web.Screen) *board.Controller {
		return board.New(users, notes, screen,
			board.WithLogger(logger),
			board.WithNotifyInterval(cfg.NotifyTimeout),
		)
	}, cfg.SessionTTL, cfg.PollInterval, cfg.NotifyTimeout, logger)
	boardHandler := web.NewHandler(sessions, logger)
	m := metrics.New("board")

	// HTTP router
	mux := http.NewServeMux()

	// Static files
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to get static fs: %v", err)
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))

	// Board page and HTMX fragments
	boardHandler.Register(mux)

	mux.Handle("GET /metrics", m.Handler())

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sessions.Run(ctx, time.Minute)

	// Start server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      m.Middleware(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down server...")
		stop()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("server starting", "port", cfg.Port)
	logger.Info("backends",
		"users", cfg.UsersBaseURL,
		"notes", cfg.NotesBaseURL,
		"poll_interval", cfg.PollInterval,
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}

	logger.Info("server stopped")
}
