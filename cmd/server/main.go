package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"esep-backend/internal/config"
	"esep-backend/internal/db"
	"esep-backend/internal/events"
	"esep-backend/internal/handler"
	"esep-backend/internal/repository"
	"esep-backend/internal/server"
	"esep-backend/internal/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.InitSchema(ctx); err != nil {
		logger.Error("failed to init schema", "err", err)
		os.Exit(1)
	}

	// repositories
	adminRepo := repository.AdminUserRepository{DB: pg}
	panchayathRepo := repository.PanchayathRepository{DB: pg}
	categoryRepo := repository.CategoryRepository{DB: pg}
	registrationRepo := repository.RegistrationRepository{DB: pg}

	if cfg.SeedDefaults {
		if err := adminRepo.SeedDefaults(ctx); err != nil {
			logger.Error("failed to seed admin users", "err", err)
			os.Exit(1)
		}
		if err := categoryRepo.SeedDefaults(ctx); err != nil {
			logger.Error("failed to seed categories", "err", err)
			os.Exit(1)
		}
	}

	// change notifications
	bus := events.NewBus()
	notifier := events.Notifier{DB: pg}
	listener := events.Listener{DatabaseURL: cfg.DatabaseURL, Bus: bus, Logger: logger}
	go listener.Run(ctx)

	// services
	authSvc := service.AuthService{Config: cfg, Admins: adminRepo, Logger: logger}

	// handlers
	healthHandler := handler.HealthHandler{DB: pg}
	authHandler := handler.AuthHandler{Service: &authSvc}
	categoryHandler := handler.CategoryHandler{Store: categoryRepo, Events: notifier}
	panchayathHandler := handler.PanchayathHandler{Store: panchayathRepo, Events: notifier}
	registrationHandler := handler.RegistrationHandler{Store: registrationRepo, Categories: categoryRepo, Events: notifier}
	adminUserHandler := handler.AdminUserHandler{Store: adminRepo, Events: notifier}
	dashboardHandler := handler.DashboardHandler{Registrations: registrationRepo, Panchayaths: panchayathRepo}
	eventsHandler := handler.EventsHandler{Bus: bus}

	router := server.NewRouter(cfg, logger, healthHandler, authHandler, categoryHandler, panchayathHandler, registrationHandler, adminUserHandler, dashboardHandler, eventsHandler)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
