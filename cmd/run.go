package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"concierge/bot"
	"concierge/config"
	"concierge/database"
	"concierge/events"
	"concierge/repository"
	"concierge/service"
	"concierge/web"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting concierge bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	log.Println("Initializing services...")
	configService := service.NewGuildConfigService(uowFactory)
	levelingService := service.NewLevelingService(uowFactory)
	casinoService := service.NewCasinoService(uowFactory)
	log.Println("Services initialized successfully")

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:         cfg.DiscordToken,
		GuildID:       cfg.DiscordGuildID,
		OwnerID:       cfg.OwnerID,
		SweepInterval: cfg.SweepInterval,
		SweepGrace:    cfg.SweepGrace,
	}
	discordBot, err := bot.New(botConfig, configService, levelingService, casinoService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Initialize the web dashboard if enabled
	var webServer *web.Server
	if cfg.WebEnabled {
		log.Println("Initializing web dashboard...")
		webServer, err = web.NewServer(configService, levelingService, discordBot)
		if err != nil {
			discordBot.Close()
			return fmt.Errorf("failed to initialize web dashboard: %w", err)
		}
		go func() {
			if err := webServer.Start(); err != nil {
				log.Printf("Web dashboard error: %v", err)
			}
		}()
	}

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the web dashboard first so it cannot serve from a closing database
	if webServer != nil {
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down web dashboard: %v", err)
		}
	}

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}
