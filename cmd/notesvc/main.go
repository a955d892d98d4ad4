package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"notesboard/internal/config"
	"notesboard/internal/db"
	"notesboard/internal/httpapi"
	mcpserver "notesboard/internal/mcp"
	"notesboard/internal/metrics"
	"notesboard/internal/notes"

	"github.com/mark3labs/mcp-go/server"
)

func main() {
	// Config
	port := config.GetEnv("PORT", "5001")
	storeKind := config.GetEnv("STORE", "mongo")
	mongoURI := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	mongoDB := config.GetEnv("MONGODB_DATABASE", "notes")

	// Logger
	logger := config.NewLogger(config.GetEnv("LOG_LEVEL", "info"))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	var store notes.Store
	switch storeKind {
	case "memory":
		logger.Warn("using in-memory store, notes are lost on restart")
		store = notes.NewMemoryStore()
	default:
		var database *mongo.Database
		err := db.Retry(ctx, logger, "mongodb", 10, 5*time.Second, func(ctx context.Context) error {
			var err error
			database, err = db.ConnectMongo(ctx, mongoURI, mongoDB)
			return err
		})
		if err != nil {
			log.Fatalf("failed to connect to MongoDB: %v", err)
		}
		defer database.Client().Disconnect(context.Background())
		logger.Info("connected to MongoDB", "database", mongoDB)

		repo := notes.NewRepo(database)
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure indexes", "error", err)
		}
		store = repo
	}

	// Wire dependencies
	noteSvc := notes.NewService(store)
	noteHandler := notes.NewHandler(noteSvc, logger)
	m := metrics.New("notes")

	// Create MCP server
	mcpSrv := mcpserver.NewServer(noteSvc)

	mux := http.NewServeMux()
	noteHandler.Register(mux)
	mux.Handle("GET /metrics", m.Handler())

	// MCP endpoint (HTTP transport)
	// MCP uses POST for requests and GET for SSE streams
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)
	mux.Handle("POST /mcp", mcpHTTP)
	mux.Handle("GET /mcp", mcpHTTP)
	mux.Handle("DELETE /mcp", mcpHTTP)

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

		logger.Info("shutting down notes service...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("notes service starting", "port", port, "store", storeKind)
	logger.Info("endpoints available",
		"api", "http://localhost:"+port+"/notes/",
		"mcp", "http://localhost:"+port+"/mcp",
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
	logger.Info("notes service stopped")
}
