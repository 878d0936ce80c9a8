package bot

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"concierge/bot/common"
	"concierge/bot/features/casino"
	"concierge/bot/features/leveling"
	"concierge/bot/features/moderation"
	"concierge/bot/features/settings"
	"concierge/bot/features/tempvoice"
	"concierge/bot/features/utility"
	"concierge/events"
	"concierge/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token         string
	GuildID       string
	OwnerID       string
	SweepInterval time.Duration
	SweepGrace    time.Duration
}

type Bot struct {
	config        Config
	session       *discordgo.Session
	configService service.GuildConfigService
	eventBus      *events.Bus

	levelingFeature   *leveling.Feature
	casinoFeature     *casino.Feature
	moderationFeature *moderation.Feature
	tempvoiceFeature  *tempvoice.Feature
	utilityFeature    *utility.Feature
	settingsFeature   *settings.Feature

	cancelSweeper context.CancelFunc
}

func New(config Config, configService service.GuildConfigService, levelingService service.LevelingService, casinoService service.CasinoService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsAll

	bot := &Bot{
		config:        config,
		session:       dg,
		configService: configService,
		eventBus:      eventBus,
	}

	bot.levelingFeature = leveling.NewFeature(dg, levelingService, configService)
	bot.casinoFeature = casino.NewFeature(dg, casinoService, configService)
	bot.moderationFeature = moderation.NewFeature(dg, configService)
	bot.tempvoiceFeature = tempvoice.NewFeature(dg, configService)
	bot.utilityFeature = utility.NewFeature(dg, configService, config.OwnerID, bot.registerCommands)
	bot.settingsFeature = settings.NewFeature(dg, configService)

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component and modal interaction handlers
	dg.AddHandler(bot.casinoFeature.HandleInteraction)

	// Register gateway event handlers
	dg.AddHandler(bot.levelingFeature.HandleMessageCreate)
	dg.AddHandler(bot.moderationFeature.HandleMemberRemove)
	dg.AddHandler(bot.tempvoiceFeature.HandleVoiceStateUpdate)
	dg.AddHandler(bot.handleGuildDelete)

	// Level-up announcements run after the awarding transaction commits
	eventBus.Subscribe(events.EventTypeLevelUp, bot.levelingFeature.HandleLevelUp)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	// Start the idle-member sweeper
	sweeperCtx, cancel := context.WithCancel(context.Background())
	bot.cancelSweeper = cancel
	go bot.startSweeper(sweeperCtx)

	return bot, nil
}

func (b *Bot) Close() error {
	if b.cancelSweeper != nil {
		b.cancelSweeper()
	}
	b.tempvoiceFeature.Cleanup(b.session)
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	// DM interactions carry User instead of Member; every handler assumes a guild
	if i.Member == nil {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "ping":
		b.utilityFeature.HandlePing(s, i)
	case "serverinfo":
		b.utilityFeature.HandleServerInfo(s, i)
	case "level":
		b.levelingFeature.HandleLevelCommand(s, i)
	case "config":
		b.settingsFeature.HandleConfigCommand(s, i)
	case "config-show":
		b.settingsFeature.HandleConfigShow(s, i)
	case "config-exit-channel":
		b.settingsFeature.HandleExitChannelCommand(s, i)
	case "leveling-toggle":
		b.settingsFeature.HandleLevelingToggle(s, i)
	case "bg-task-toggle":
		b.settingsFeature.HandleSweeperToggle(s, i)
	case "casino":
		b.casinoFeature.HandleCasinoCommand(s, i)
	case "casino-list":
		b.casinoFeature.HandleListCommand(s, i)
	case "casino-set-validation-channel":
		b.casinoFeature.HandleSetValidationChannel(s, i)
	case "close-casino":
		b.casinoFeature.HandleCloseCommand(s, i)
	case "list-id":
		b.utilityFeature.HandleListID(s, i)
	case "sync":
		b.utilityFeature.HandleSync(s, i)
	}
}

// handleGuildDelete drops a guild's configuration and progression when the
// bot is removed. Outages also fire this event with Unavailable set; those
// must keep their data.
func (b *Bot) handleGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	if g.Unavailable {
		return
	}

	guildID := common.ParseID(g.ID)
	if err := b.configService.RemoveGuild(context.Background(), guildID); err != nil {
		log.Errorf("Failed to remove data for departed guild %d: %v", guildID, err)
		return
	}
	log.Infof("Removed configuration and progression for departed guild %d", guildID)
}
