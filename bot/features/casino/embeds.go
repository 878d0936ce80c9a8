package casino

import (
	"fmt"
	"strings"
	"time"

	"concierge/bot/common"
	"concierge/models"

	"github.com/bwmarrin/discordgo"
)

// BuildEventEmbed creates the announcement embed with one field per display band
func BuildEventEmbed(event *models.CasinoEvent, hostName string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎰 %s", event.Label),
		Description: fmt.Sprintf("Hosted by **%s**, pick a free slot below!", hostName),
		Color:       common.ColorWarning,
		Fields:      make([]*discordgo.MessageEmbedField, 0, len(models.DisplayBands)+1),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d/%d slots taken", len(event.Assignments), models.SlotCount),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if event.EntryCost > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "💰 Entry cost",
			Value:  common.FormatXP(event.EntryCost),
			Inline: true,
		})
	}

	for _, band := range models.DisplayBands {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("Slots %d-%d", band[0], band[1]),
			Value: formatBand(event, band[0], band[1]),
		})
	}

	return embed
}

// formatBand lists the claimed slots of one band, or a free-for-all marker
func formatBand(event *models.CasinoEvent, from, to int) string {
	var lines []string
	for slot := from; slot <= to; slot++ {
		if discordID, taken := event.Assignments[slot]; taken {
			lines = append(lines, fmt.Sprintf("`%3d` %s", slot, common.FormatUserMention(discordID)))
		}
	}
	if len(lines) == 0 {
		return "*all free*"
	}
	return strings.Join(lines, "\n")
}

// BuildClosedEmbed creates the final embed shown when an event is closed
func BuildClosedEmbed(event *models.CasinoEvent, hostName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🎰 %s (closed)", event.Label),
		Description: fmt.Sprintf("Hosted by **%s**. This event is over, thanks for playing!", hostName),
		Color:       common.ColorDanger,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d/%d slots were taken", len(event.Assignments), models.SlotCount),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildListEmbed summarizes a guild's open events
func BuildListEmbed(events []*models.CasinoEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "🎰 Open casino events",
		Color:     common.ColorInfo,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if len(events) == 0 {
		embed.Description = "No casino event is currently open."
		return embed
	}

	var lines []string
	for _, event := range events {
		lines = append(lines, fmt.Sprintf("**%s** in %s: %d/%d slots taken, hosted by %s",
			event.Label,
			common.FormatChannelMention(event.ChannelID),
			len(event.Assignments), models.SlotCount,
			common.FormatUserMention(event.HostID)))
	}
	embed.Description = strings.Join(lines, "\n")
	return embed
}

// BuildPendingEmbed creates the approval request posted to the validation channel
func BuildPendingEmbed(event *models.CasinoEvent, claimantID int64, slot int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🧾 Slot claim awaiting review",
		Description: fmt.Sprintf("%s wants slot **%d** in **%s**.", common.FormatUserMention(claimantID), slot, event.Label),
		Color:       common.ColorInfo,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Event %d", event.MessageID),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// BuildResolvedEmbed rewrites a validation message after a staff decision
func BuildResolvedEmbed(pending *models.PendingValidation, approved bool, moderatorName string) *discordgo.MessageEmbed {
	verdict := "rejected"
	color := common.ColorDanger
	if approved {
		verdict = "approved"
		color = common.ColorSuccess
	}

	return &discordgo.MessageEmbed{
		Title: "🧾 Slot claim " + verdict,
		Description: fmt.Sprintf("Slot **%d** for %s: %s by **%s**.",
			pending.Slot, common.FormatUserMention(pending.DiscordID), verdict, moderatorName),
		Color:     color,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
