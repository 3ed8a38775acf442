package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/echnavi/charge-admin-backend/api/routes"
	"github.com/echnavi/charge-admin-backend/internal/agencies"
	"github.com/echnavi/charge-admin-backend/internal/charges"
	"github.com/echnavi/charge-admin-backend/internal/corporates"
	"github.com/echnavi/charge-admin-backend/internal/identity"
	"github.com/echnavi/charge-admin-backend/internal/permissions"
	"github.com/echnavi/charge-admin-backend/internal/powersupplies"
	"github.com/echnavi/charge-admin-backend/internal/stations"
	"github.com/echnavi/charge-admin-backend/internal/users"
	"github.com/echnavi/charge-admin-backend/pkg/cognito"
	"github.com/echnavi/charge-admin-backend/pkg/config"
	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
	"github.com/echnavi/charge-admin-backend/pkg/metrics"
	"github.com/echnavi/charge-admin-backend/pkg/migrate"
	"github.com/echnavi/charge-admin-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	identityPool, err := cognito.New(context.Background(), cfg.Cognito)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap identity pool client", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	identityService, err := identity.NewService(identity.ServiceParams{
		Repo:     identity.NewRepository(conn),
		Identity: identityPool,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	agencyService, err := agencies.NewService(agencies.ServiceParams{
		DB:   dbClient,
		Repo: agencies.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create agency service", err)
		os.Exit(1)
	}

	corporateService, err := corporates.NewService(corporates.ServiceParams{
		DB:   dbClient,
		Repo: corporates.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create corporate service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(users.ServiceParams{
		DB:       dbClient,
		Repo:     users.NewRepository(conn),
		Identity: identityPool,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	stationService, err := stations.NewService(stations.ServiceParams{
		DB:   dbClient,
		Repo: stations.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create station service", err)
		os.Exit(1)
	}

	powerSupplyService, err := powersupplies.NewService(powersupplies.ServiceParams{
		DB:   dbClient,
		Repo: powersupplies.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create power supply service", err)
		os.Exit(1)
	}

	chargeService, err := charges.NewService(charges.ServiceParams{
		Repo: charges.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create charge service", err)
		os.Exit(1)
	}

	permissionService, err := permissions.NewService(permissions.ServiceParams{
		Repo: permissions.NewRepository(conn),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create permission service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics("charge-admin-api")

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			httpMetrics,
			identityService,
			agencyService,
			corporateService,
			userService,
			stationService,
			powerSupplyService,
			chargeService,
			permissionService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
