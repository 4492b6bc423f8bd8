package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	slackclient "slackhub/clients/slack"
	"slackhub/config"
	"slackhub/db"
	"slackhub/handlers"
	"slackhub/middleware"
	"slackhub/oauthstate"
	"slackhub/services/auditlogs"
	"slackhub/services/organizations"
	"slackhub/services/slackintegrations"
	"slackhub/services/txmanager"
	"slackhub/services/users"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{
		WebhookURL:  cfg.SlackConfig.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "slackhub",
		LogsURL:     cfg.ServerLogsURL,
	})

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize repositories with shared connection
	organizationsRepo := db.NewPostgresOrganizationsRepository(dbConn, cfg.DatabaseSchema)
	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	slackIntegrationsRepo := db.NewPostgresSlackIntegrationsRepository(dbConn, cfg.DatabaseSchema)
	auditLogsRepo := db.NewPostgresAuditLogsRepository(dbConn, cfg.DatabaseSchema)

	// Initialize transaction manager
	txManager := txmanager.NewTransactionManager(dbConn)

	organizationsService := organizations.NewOrganizationsService(organizationsRepo)
	usersService := users.NewUsersService(usersRepo, organizationsService, txManager)
	auditLogsService := auditlogs.NewAuditLogsService(auditLogsRepo)

	stateSigner, err := oauthstate.NewSigner(cfg.SlackConfig.StateSecret)
	if err != nil {
		return err
	}

	slackOAuthClient := slackclient.NewSlackOAuthClient()
	slackInstaller := slackclient.NewOAuthInstaller(
		slackOAuthClient,
		stateSigner,
		cfg.SlackConfig.ClientID,
		cfg.SlackConfig.ClientSecret,
		cfg.SlackConfig.RedirectURL,
	)

	slackIntegrationsService := slackintegrations.NewSlackIntegrationsService(
		slackIntegrationsRepo,
		slackInstaller,
		auditLogsService,
		txManager,
	)

	authMiddleware := middleware.NewClerkAuthMiddleware(
		usersService,
		organizationsService,
		cfg.ClerkConfig.SecretKey,
	)
	rateLimiter := middleware.NewRateLimitMiddleware()

	slackHandler := handlers.NewSlackIntegrationsHTTPHandler(
		slackIntegrationsService,
		auditLogsService,
		alertMiddleware,
		cfg.SiteURL,
	)
	dashboardHandler := handlers.NewDashboardHTTPHandler(organizationsService)

	// Create a new router
	router := mux.NewRouter()

	// Setup endpoints with the new router
	slackHandler.SetupEndpoints(router, authMiddleware, rateLimiter)
	dashboardHandler.SetupEndpoints(router, authMiddleware, rateLimiter)

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			log.Printf("❌ Failed to write health check response: %v", err)
		}
	}).Methods("GET")

	// Setup CORS middleware
	allowedOrigins := strings.Split(cfg.CORSAllowedOrigins, ",")
	for i, origin := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(origin)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-API-Key"},
		AllowCredentials: true,
	})

	// Setup and handle graceful shutdown
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
