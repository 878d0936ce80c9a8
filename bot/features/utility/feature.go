package utility

import (
	"concierge/service"

	"github.com/bwmarrin/discordgo"
)

// Feature implements the small informational commands
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
	ownerID       string

	// resync re-registers the slash commands; wired by the bot
	resync func() error
}

// NewFeature creates a new utility feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService, ownerID string, resync func() error) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
		ownerID:       ownerID,
		resync:        resync,
	}
}
