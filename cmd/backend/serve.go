package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitrack/backend/apitoken"
	"github.com/fitrack/backend/cmd/backend/handlers"
	"github.com/fitrack/backend/database"
	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/session"
	"github.com/fitrack/backend/testcase"
	"github.com/fitrack/backend/user"
	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

var configFile string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Load configuration
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log := logger.NewLogrusLogger(cfg.Log.Level)
	log.Info(ctx, "starting server", logger.Fields{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	// Connect to database
	dbCfg := database.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	log.Info(ctx, "database connected", logger.Fields{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	// Initialize stores
	userStore := user.NewMySQLStore(db, log)
	folderStore := folder.NewMySQLStore(db, log)
	testCaseStore := testcase.NewMySQLStore(db, cfg.TestCase.KeyPrefix, log)
	stepStore := testcase.NewStepMySQLStore(db, log)
	tokenStore := apitoken.NewMySQLStore(db, log)

	// Initialize session manager
	sessionManager := session.NewManager(cfg.Session.Duration, log)
	sessionManager.StartCleanup(5 * time.Minute)
	defer sessionManager.StopCleanup()

	log.Info(ctx, "session manager initialized", logger.Fields{
		"duration": cfg.Session.Duration.String(),
	})

	// Setup router
	router := mux.NewRouter()

	// Health check endpoint (public)
	router.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Auth handlers (public)
	authHandler := handlers.NewAuthHandler(
		userStore,
		sessionManager,
		cfg.Session.CookieSecret,
		cfg.Session.CookieName,
		cfg.Session.Secure,
		log,
	)

	router.HandleFunc("/api/v1/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/api/v1/auth/logout", authHandler.Logout).Methods("POST")

	// Domain handlers
	folderHandler := handlers.NewFolderHandler(folderStore, log)
	testCaseHandler := handlers.NewTestCaseHandler(testCaseStore, log)
	stepHandler := handlers.NewStepHandler(stepStore, testCaseStore, log)
	tokenHandler := handlers.NewAPITokenHandler(tokenStore, log)

	// Public read endpoints
	router.HandleFunc("/api/v1/test-folders", folderHandler.List).Methods("GET")
	router.HandleFunc("/api/v1/test-cases", testCaseHandler.List).Methods("GET")
	router.HandleFunc("/api/v1/test-cases/{id}", testCaseHandler.GetByID).Methods("GET")
	router.HandleFunc("/api/v1/test-cases/{id}/steps", stepHandler.List).Methods("GET")

	// Protected routes
	authMiddleware := handlers.NewAuthMiddleware(
		sessionManager,
		tokenStore,
		cfg.Session.CookieSecret,
		cfg.Session.CookieName,
		log,
	)

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(authMiddleware.Handler)
	apiRouter.Use(handlers.WriteScopeMiddleware)

	apiRouter.HandleFunc("/test-folders", folderHandler.Create).Methods("POST")
	apiRouter.HandleFunc("/test-folders/{folder_id}", folderHandler.Update).Methods("PATCH")
	apiRouter.HandleFunc("/test-folders/{folder_id}", folderHandler.Delete).Methods("DELETE")

	apiRouter.HandleFunc("/test-cases", testCaseHandler.Create).Methods("POST")
	apiRouter.HandleFunc("/test-cases/{id}", testCaseHandler.Update).Methods("PATCH")
	apiRouter.HandleFunc("/test-cases/{id}", testCaseHandler.Delete).Methods("DELETE")

	apiRouter.HandleFunc("/test-cases/{id}/steps", stepHandler.Append).Methods("POST")
	apiRouter.HandleFunc("/test-cases/{id}/steps/{step_id}", stepHandler.Update).Methods("PATCH")
	apiRouter.HandleFunc("/test-cases/{id}/steps/{step_id}", stepHandler.Delete).Methods("DELETE")

	apiRouter.HandleFunc("/tokens", tokenHandler.Create).Methods("POST")
	apiRouter.HandleFunc("/tokens", tokenHandler.List).Methods("GET")
	apiRouter.HandleFunc("/tokens/{token_id}", tokenHandler.Revoke).Methods("DELETE")

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info(ctx, "server listening", logger.Fields{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", logger.Fields{
				"error": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
