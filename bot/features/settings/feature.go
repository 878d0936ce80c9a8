package settings

import (
	"concierge/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles guild configuration commands
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
}

// NewFeature creates a new settings feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
	}
}

// HandleConfigCommand routes /config subcommands to their handlers
func (f *Feature) HandleConfigCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "level-up-channel":
		f.handleLevelUpChannel(s, i)
	case "voice-creator-channel":
		f.handleVoiceCreatorChannel(s, i)
	case "invite-link":
		f.handleInviteLink(s, i)
	case "level-role":
		f.handleLevelRole(s, i)
	case "replace-level-roles":
		f.handleReplaceLevelRoles(s, i)
	}
}
