package leveling

import (
	"fmt"

	"concierge/bot/common"
	"concierge/models"

	"github.com/bwmarrin/discordgo"
)

// BuildProgressEmbed creates the embed shown by the /level command
func BuildProgressEmbed(displayName, avatarURL string, progress *models.MemberProgress) *discordgo.MessageEmbed {
	_, xpToNext := models.LevelForXP(progress.TotalXP)

	nextValue := "Max level reached 🏆"
	if !progress.AtMaxLevel() {
		nextValue = fmt.Sprintf("%s XP to level %d", common.FormatXP(xpToNext), progress.Level+1)
	}

	bar := common.FormatProgressBar(progress.ProgressWithinLevel(), 12)

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📈 %s", displayName),
		Color: common.ColorPrimary,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: avatarURL,
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Level",
				Value:  fmt.Sprintf("%d / %d", progress.Level, models.MaxLevel),
				Inline: true,
			},
			{
				Name:   "Total XP",
				Value:  common.FormatXP(progress.TotalXP),
				Inline: true,
			},
			{
				Name:  "Progress",
				Value: fmt.Sprintf("`%s`\n%s", bar, nextValue),
			},
		},
	}
}

// BuildLeaderboardEmbed creates the top-members embed used by the dashboard
// preview and the scoreboard button
func BuildLeaderboardEmbed(guildName string, entries []*models.MemberProgress) *discordgo.MessageEmbed {
	description := "Nobody has earned XP yet."
	if len(entries) > 0 {
		description = ""
		for rank, entry := range entries {
			description += fmt.Sprintf("**%d.** %s: level %d (%s XP)\n",
				rank+1, common.FormatUserMention(entry.DiscordID), entry.Level, common.FormatXP(entry.TotalXP))
		}
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 %s: Top members", guildName),
		Description: description,
		Color:       common.ColorInfo,
	}
}
