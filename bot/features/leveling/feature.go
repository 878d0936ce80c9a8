package leveling

import (
	"concierge/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles message XP, level-up announcements and the /level command
type Feature struct {
	session         *discordgo.Session
	levelingService service.LevelingService
	configService   service.GuildConfigService
}

// NewFeature creates a new leveling feature instance
func NewFeature(session *discordgo.Session, levelingService service.LevelingService, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:         session,
		levelingService: levelingService,
		configService:   configService,
	}
}
