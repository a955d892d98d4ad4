package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesboard/internal/config"
	"notesboard/internal/db"
	"notesboard/internal/httpapi"
	"notesboard/internal/metrics"
	"notesboard/internal/users"
)

func main() {
	// Config
	port := config.GetEnv("PORT", "5000")
	storeKind := config.GetEnv("STORE", "mysql")
	dsn := config.GetEnv("MYSQL_DSN", "notes:notes@tcp(localhost:3306)/users")

	// Logger
	logger := config.NewLogger(config.GetEnv("LOG_LEVEL", "info"))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var store users.Store
	switch storeKind {
	case "memory":
		logger.Warn("using in-memory store, users are lost on restart")
		store = users.NewMemoryStore()
	default:
		var pool *sql.DB
		err := db.Retry(ctx, logger, "mysql", 10, 5*time.Second, func(ctx context.Context) error {
			var err error
			pool, err = db.OpenMySQL(ctx, dsn)
			return err
		})
		if err != nil {
			log.Fatalf("failed to connect to MySQL: %v", err)
		}
		defer pool.Close()

		mysqlStore := users.NewMySQLStore(pool)
		if err := mysqlStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
		logger.Info("connected to MySQL and ensured tables exist")
		store = mysqlStore
	}

	// Wire dependencies
	userSvc := users.NewService(store)
	userHandler := users.NewHandler(userSvc, logger)
	m := metrics.New("users")

	mux := http.NewServeMux()
	userHandler.Register(mux)
	mux.Handle("GET /metrics", m.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      httpapi.CORS(m.Middleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down users service...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("users service starting", "port", port, "store", storeKind)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("users service stopped")
}
