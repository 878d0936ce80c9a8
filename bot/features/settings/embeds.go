package settings

import (
	"fmt"
	"sort"
	"strings"

	"concierge/bot/common"
	"concierge/models"

	"github.com/bwmarrin/discordgo"
)

// BuildConfigEmbed creates the /config-show embed
func BuildConfigEmbed(config *models.GuildConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "⚙️ Server configuration",
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Leveling", Value: onOff(config.LevelingActive), Inline: true},
			{Name: "Idle sweeper", Value: onOff(config.SweeperActive), Inline: true},
			{Name: "Replace level roles", Value: onOff(config.ReplaceLevelRoles), Inline: true},
			{Name: "Level-up channel", Value: channelOrUnset(config.LevelUpChannelID), Inline: true},
			{Name: "Exit channel", Value: channelOrUnset(config.ExitChannelID), Inline: true},
			{Name: "Voice creator", Value: channelOrUnset(config.VoiceCreatorChannelID), Inline: true},
			{Name: "Casino validation", Value: channelOrUnset(config.CasinoValidationChannelID), Inline: true},
			{Name: "Invite link", Value: stringOrUnset(config.InviteLink), Inline: true},
			{Name: "Level roles", Value: formatLevelRoles(config.LevelRoles)},
		},
	}
}

func onOff(b bool) string {
	if b {
		return "✅ on"
	}
	return "⛔ off"
}

func channelOrUnset(id *int64) string {
	if id == nil {
		return "*unset*"
	}
	return common.FormatChannelMention(*id)
}

func stringOrUnset(s *string) string {
	if s == nil {
		return "*unset*"
	}
	return *s
}

func formatLevelRoles(roles map[int]int64) string {
	if len(roles) == 0 {
		return "*none configured*"
	}

	levels := make([]int, 0, len(roles))
	for level := range roles {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var lines []string
	for _, level := range levels {
		lines = append(lines, fmt.Sprintf("Level %d → <@&%d>", level, roles[level]))
	}
	return strings.Join(lines, "\n")
}
