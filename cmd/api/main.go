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

	_ "github.com/jackc/pgx/v5/stdlib"

	"staffdesk.org/internal/audit"
	"staffdesk.org/internal/auth"
	"staffdesk.org/internal/config"
	"staffdesk.org/internal/employee"
	"staffdesk.org/internal/health"
	"staffdesk.org/internal/httpapi"
	"staffdesk.org/internal/obs"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init()
	obs.InitBuildInfo(version, commit)

	// Optional Postgres: when a DSN is configured the employee store and the
	// health probe use the database, otherwise everything is in-memory.
	var db *sql.DB
	var store employee.Store = employee.NewInMemory()
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		store = employee.NewPGStore(db)
	}

	auditLog := audit.NewObsLogger()

	authSvc, err := auth.NewService(cfg.AuthSecret, auth.DefaultCredentials(),
		auth.WithIssuer(cfg.TokenIssuer),
		auth.WithAudience(cfg.TokenAudience),
		auth.WithTokenTTL(cfg.TokenTTL),
		auth.WithAttemptRecorder(auditLog),
	)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	employees := employee.NewService(store)

	checks := []health.Check{
		health.CheckFunc{
			CheckName: "employee-store",
			Fn: func(ctx context.Context) error {
				_, err := store.List(ctx, employee.Filter{Limit: 1})
				return err
			},
		},
	}
	if db != nil {
		checks = append(checks, health.DBCheck{DB: db})
	}
	healthReg := health.NewRegistry("staffdesk-api", version, checks...)

	api := httpapi.New(cfg, authSvc, employees, auditLog, healthReg, version)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting staffdesk-api %s on %s", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
