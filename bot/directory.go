package bot

import (
	"concierge/bot/common"
)

// The web dashboard needs to know which guilds the bot can see and how to
// name their members. These methods answer from the session state cache so
// dashboard requests never hit the Discord API.

// HasGuild reports whether the bot is a member of the guild
func (b *Bot) HasGuild(guildID string) bool {
	guild, err := b.session.State.Guild(guildID)
	return err == nil && guild != nil
}

// GuildName returns the guild's name, or its ID when the cache misses
func (b *Bot) GuildName(guildID string) string {
	guild, err := b.session.State.Guild(guildID)
	if err != nil || guild == nil {
		return guildID
	}
	return guild.Name
}

// MemberDisplayName resolves a member's display name for the guild
func (b *Bot) MemberDisplayName(guildID string, userID int64) string {
	return common.GetDisplayNameInt64(b.session, guildID, userID)
}
