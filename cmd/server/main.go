package main

import (
	"context"
	"database/sql"
	"facilitybooking/internal/api"
	"facilitybooking/internal/client"
	"facilitybooking/internal/config"
	"facilitybooking/internal/repository"
	"facilitybooking/internal/service"
	"facilitybooking/internal/utils"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

const (
	pendingCheckoutTTL = 2 * time.Hour
	jobTimeout         = 2 * time.Minute
)

func main() {
	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	loc := utils.LoadLocation(cfg.Server.Timezone)

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	bookingAPI := client.New(cfg.BookingAPI.URL, cfg.BookingAPI.Token, cfg.BookingAPI.Timeout())

	checkoutRepo := repository.NewCheckoutRepository(db)
	jobRepo := repository.NewJobRepository(db)

	selectionService := service.NewSelectionService(bookingAPI,
		cfg.Selection.DefaultDurationMinutes, cfg.Selection.DefaultParticipants)
	stripeService := service.NewStripeService(cfg.Stripe.SecretKey, cfg.Server.PublicURL)
	notifyService := service.NewNotifyService(cfg.SendGrid, cfg.Twilio)
	senderService := service.NewSenderService(notifyService, loc, cfg.SendGrid.FromName)
	checkoutService := service.NewCheckoutService(selectionService, bookingAPI, checkoutRepo,
		stripeService, senderService, cfg.Stripe.Currency)
	adminService := service.NewAdminService(bookingAPI, checkoutRepo)
	jobService := service.NewJobService(jobRepo, bookingAPI, selectionService)

	router := api.NewRouter(api.Handlers{
		Selection:  api.NewSelectionHandler(selectionService, loc),
		Checkout:   api.NewCheckoutHandler(checkoutService),
		Stripe:     api.NewStripeWebhookHandler(cfg.Stripe.WebhookSecret, checkoutService),
		Admin:      api.NewAdminHandler(adminService, loc),
		AdminToken: cfg.Server.AdminToken,
	})

	c := cron.New()
	_, err = c.AddFunc("@every 5m", func() {
		jobService.SweepSelections(cfg.Selection.IdleTimeout())
	})
	if err != nil {
		log.Fatalf("Could not schedule selection sweep: %v", err)
	}
	_, err = c.AddFunc("@every 10m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := jobService.UpdateFinishedCheckouts(ctx); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not schedule finished checkouts job: %v", err)
	}
	_, err = c.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if _, err := jobService.DeleteOldPendingCheckouts(ctx, time.Now().Add(-pendingCheckoutTTL)); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Could not schedule pending checkouts cleanup: %v", err)
	}
	c.Start()

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "Stripe-Signature"}),
	)
	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CombinedLoggingHandler(os.Stdout, cors(router)),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BookingAPI.Timeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	<-c.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
