package models

import (
	"strings"
	"time"
)

// GuildConfig represents the per-guild configuration record.
// A record is created lazily with defaults on first access.
type GuildConfig struct {
	GuildID                   int64      `db:"guild_id"`
	LevelUpChannelID          *int64     `db:"level_up_channel_id"`
	ExitChannelID             *int64     `db:"exit_channel_id"`
	VoiceCreatorChannelID     *int64     `db:"voice_creator_channel_id"`
	CasinoValidationChannelID *int64     `db:"casino_validation_channel_id"`
	InviteLink                *string    `db:"invite_link"`
	LevelingActive            bool       `db:"leveling_active"`
	SweeperActive             bool       `db:"sweeper_active"`
	ReplaceLevelRoles         bool       `db:"replace_level_roles"`
	LevelRoles                map[int]int64
	CreatedAt                 time.Time `db:"created_at"`
	UpdatedAt                 time.Time `db:"updated_at"`
}

// NewGuildConfig returns the default configuration for a guild
func NewGuildConfig(guildID int64) *GuildConfig {
	return &GuildConfig{
		GuildID:        guildID,
		LevelingActive: true,
		SweeperActive:  true,
		LevelRoles:     make(map[int]int64),
	}
}

// RoleForLevel returns the configured role for a level, if any
func (c *GuildConfig) RoleForLevel(level int) (int64, bool) {
	roleID, ok := c.LevelRoles[level]
	return roleID, ok
}

// ValidInviteLink reports whether a link looks like a server invite
func ValidInviteLink(link string) bool {
	return strings.HasPrefix(link, "http") || strings.HasPrefix(link, "discord.gg")
}
