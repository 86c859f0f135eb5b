package main

import (
	"fmt"
	"os"
	"time"

	"service-calendar/internal/auth"
	"service-calendar/internal/calendar"
	"service-calendar/internal/config"
	"service-calendar/internal/db"
	httphandler "service-calendar/internal/http"
	"service-calendar/internal/http/middleware"
	"service-calendar/internal/logger"
	"service-calendar/internal/repository"
	"service-calendar/internal/rpc"
	"service-calendar/internal/service"
	"service-calendar/internal/view"
	"service-calendar/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	orderRepo := repository.NewServiceOrderRepository(database)
	technicianRepo := repository.NewTechnicianRepository(database)
	partnerRepo := repository.NewPartnerRepository(database)

	location, err := time.LoadLocation(cfg.Calendar.TimeZone)
	if err != nil {
		log.Fatal().Err(err).Str("time_zone", cfg.Calendar.TimeZone).Msg("invalid calendar time zone")
	}

	lifecycle := service.NewLifecycleService(orderRepo, technicianRepo, location, log)
	backend := service.NewBackend(orderRepo, technicianRepo, partnerRepo, lifecycle)

	adapter := workflow.NewAdapter(backend, cfg.Workflow.DirectionsURL, log)
	calendarService := calendar.NewService(backend, cfg.Calendar.MaxRange)

	views, err := view.Default(rpc.ModelServiceOrder)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid view registry")
	}

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(adapter, calendarService, lifecycle, views, location, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting service calendar")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
