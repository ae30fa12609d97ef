package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"caregate/internal/platform/config"
	"caregate/internal/platform/httpserver"
	"caregate/internal/platform/logger"
	"caregate/internal/platform/postgres"
	platformredis "caregate/internal/platform/redis"
	reghandler "caregate/internal/registration/handler"
	regmetrics "caregate/internal/registration/metrics"
	regservice "caregate/internal/registration/service"
	regstore "caregate/internal/registration/store"
	httptransport "caregate/internal/transport/http"
	verifhandler "caregate/internal/verification/handler"
	verifmetrics "caregate/internal/verification/metrics"
	verifservice "caregate/internal/verification/service"
	verifstore "caregate/internal/verification/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("database connection failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Error("database migration failed", "error", err.Error())
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	regMetrics := regmetrics.New()
	registration := regservice.New(
		regstore.NewPostgresAccounts(db),
		regstore.NewPostgresProfiles(db),
		regstore.NewPostgresLicenses(db),
		regstore.NewPostgresGuarantors(db),
		regstore.NewPostgresServiceUnits(db),
		regstore.NewPostgresTx(db),
		regservice.WithLogger(log),
		regservice.WithMetrics(regMetrics),
	)

	verifMetrics := verifmetrics.New()
	var certificates verifservice.Store = verifstore.NewPostgresCertificates(db)
	if redisClient != nil {
		certificates = verifstore.NewCachedCertificates(
			verifstore.NewPostgresCertificates(db), redisClient,
			cfg.Redis.CacheTTL, log, verifMetrics)
	}
	verification := verifservice.New(certificates,
		verifservice.WithLogger(log),
		verifservice.WithMetrics(verifMetrics),
		verifservice.WithSigningKey(cfg.Verify.SigningKey),
	)

	router := httptransport.NewRouter(log, cfg.Server.RequestTimeout,
		db.PingContext,
		reghandler.New(registration, log, regMetrics),
		verifhandler.New(verification, log, verifMetrics),
	)

	srv := httpserver.New(cfg.Server.Addr, router)

	log.Info("starting caregate", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
		os.Exit(1)
	}
}
