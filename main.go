package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/rmarquet/carfleet/internal/config"
	"github.com/rmarquet/carfleet/internal/console"
	"github.com/rmarquet/carfleet/internal/database"
	"github.com/rmarquet/carfleet/internal/logger"
	"github.com/rmarquet/carfleet/internal/services"
	"github.com/rmarquet/carfleet/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

	// Set up the audit event database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	customerStore := store.New(cfg.StorePath)
	eventService := services.NewEventService(db)
	rentalService := services.NewRentalService(customerStore, eventService)

	// Seed admin, persisted customers, fallback customers and the fleet
	rentalService.Bootstrap()

	// Hand control to the presentation layer
	ui := console.New(rentalService, eventService, os.Stdin, os.Stdout)
	ui.Run()
}
