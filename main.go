package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/korjavin/dailyquizbot/bot"
	"github.com/korjavin/dailyquizbot/config"
	"github.com/korjavin/dailyquizbot/database"
	"github.com/korjavin/dailyquizbot/health"
	"github.com/korjavin/dailyquizbot/identity"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting DailyQuizBot...")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := identity.NewChecker(db).Seed(ctx, cfg.AdminUsernames); err != nil {
		log.Fatalf("Failed to seed admins: %v", err)
	}

	b, err := bot.New(cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize bot: %v", err)
	}

	var srv *http.Server
	if cfg.HealthAddr != "" {
		srv = health.NewServer(cfg.HealthAddr, db)
		go func() {
			log.Printf("Health endpoint listening on %s", cfg.HealthAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Health server failed: %v", err)
			}
		}()
	}

	log.Println("Bot initialized successfully")
	b.Start(ctx)

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Health server shutdown: %v", err)
		}
	}
	log.Println("Shutdown complete")
}
