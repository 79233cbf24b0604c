// @title        TripCrew API
// @version      1.0
// @description  Group trip planning with shared expenses, balances and settlements.
// @BasePath     /api/v1
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/tripcrew/tripcrew/docs"
	"github.com/tripcrew/tripcrew/internal/blob"
	"github.com/tripcrew/tripcrew/internal/config"
	"github.com/tripcrew/tripcrew/internal/database"
	"github.com/tripcrew/tripcrew/internal/document"
	"github.com/tripcrew/tripcrew/internal/expense"
	expensesplit "github.com/tripcrew/tripcrew/internal/expense/split"
	"github.com/tripcrew/tripcrew/internal/group"
	"github.com/tripcrew/tripcrew/internal/itinerary"
	"github.com/tripcrew/tripcrew/internal/ledger"
	"github.com/tripcrew/tripcrew/internal/member"
	"github.com/tripcrew/tripcrew/internal/notification"
	"github.com/tripcrew/tripcrew/internal/payment"
	"github.com/tripcrew/tripcrew/internal/trippackage"
	"github.com/tripcrew/tripcrew/internal/writecoord"
	"github.com/tripcrew/tripcrew/pkg/logging"
	"github.com/tripcrew/tripcrew/pkg/metrics"
	mw "github.com/tripcrew/tripcrew/pkg/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	slog.Info("connected to database")

	// Blob storage for trip documents
	blobs, err := blob.NewFSStore(cfg.BlobDir, cfg.BlobBaseURL)
	if err != nil {
		slog.Error("failed to initialize blob storage", "error", err)
		os.Exit(1)
	}

	// Multi-step writes share one coordinator
	coord := writecoord.New(slog.Default())

	// Split Strategy Factory (Factory Pattern)
	splitFactory := expensesplit.NewFactory()

	// Notification feature (also serves the other features' notifiers)
	notificationRepo := notification.NewRepository(db)
	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	// Member feature
	memberRepo := member.NewRepository(db)
	memberService := member.NewService(memberRepo)
	memberHandler := member.NewHandler(memberService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, coord, notificationService)
	groupHandler := group.NewHandler(groupService)

	// Expense feature (with split factory injected)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, coord, notificationService)
	expenseHandler := expense.NewHandler(expenseService)

	// Payment feature
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, notificationService)
	paymentHandler := payment.NewHandler(paymentService)

	// Ledger: balances and settlement suggestions
	ledgerService := ledger.NewService(groupService, expenseService, paymentService)
	ledgerHandler := ledger.NewHandler(ledgerService)

	// Document feature
	documentRepo := document.NewRepository(db)
	documentService := document.NewService(documentRepo, blobs, coord)
	documentHandler := document.NewHandler(documentService)

	// Itinerary feature
	itineraryRepo := itinerary.NewRepository(db)
	itineraryService := itinerary.NewService(itineraryRepo)
	itineraryHandler := itinerary.NewHandler(itineraryService)

	// Trip package feature (copies template items through the itinerary store)
	packageRepo := trippackage.NewRepository(db)
	packageService := trippackage.NewService(packageRepo, itineraryRepo, coord)
	packageHandler := trippackage.NewHandler(packageService)

	r := chi.NewRouter()

	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(mw.DevMemberMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// The balance and settlement views hang off the group subtree
		groupRoutes := groupHandler.Routes()
		groupRoutes.Get("/{id}/balances", ledgerHandler.Balances)
		groupRoutes.Get("/{id}/settlements", ledgerHandler.Settlements)

		// Mount feature routers
		r.Mount("/members", memberHandler.Routes())
		r.Mount("/groups", groupRoutes)
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())
		r.Mount("/documents", documentHandler.Routes())
		r.Mount("/itinerary", itineraryHandler.Routes())
		r.Mount("/packages", packageHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
