package moderation

import (
	"context"
	"fmt"
	"strconv"

	"concierge/bot/common"
	"concierge/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature posts farewell messages when members leave
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService
}

// NewFeature creates a new moderation feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
	}
}

// HandleMemberRemove posts a farewell line to the configured exit channel
func (f *Feature) HandleMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.User == nil || m.User.Bot {
		return
	}

	guildID := common.ParseID(m.GuildID)
	config, err := f.configService.GetOrCreate(context.Background(), guildID)
	if err != nil {
		log.Errorf("Failed to load config for member remove in guild %d: %v", guildID, err)
		return
	}
	if config.ExitChannelID == nil {
		return
	}

	message := fmt.Sprintf("👋 **%s** has left the server.", m.User.Username)
	channelID := strconv.FormatInt(*config.ExitChannelID, 10)
	if _, err := s.ChannelMessageSend(channelID, message); err != nil {
		log.Errorf("Failed to send exit message for user %s in guild %d: %v", m.User.ID, guildID, err)
	}
}
