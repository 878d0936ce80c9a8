package testutil

import (
	"time"

	"concierge/models"
)

// CreateTestGuildConfig creates a guild config with default values
func CreateTestGuildConfig(guildID int64) *models.GuildConfig {
	config := models.NewGuildConfig(guildID)
	now := time.Now()
	config.CreatedAt = now
	config.UpdatedAt = now
	return config
}

// CreateTestProgress creates member progress with a specific XP total
func CreateTestProgress(guildID, discordID, totalXP int64) *models.MemberProgress {
	level, _ := models.LevelForXP(totalXP)
	now := time.Now()
	return &models.MemberProgress{
		GuildID:   guildID,
		DiscordID: discordID,
		TotalXP:   totalXP,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreateTestCasinoEvent creates a casino event with no assignments
func CreateTestCasinoEvent(messageID, guildID int64) *models.CasinoEvent {
	return &models.CasinoEvent{
		MessageID:   messageID,
		ChannelID:   messageID + 1,
		GuildID:     guildID,
		HostID:      messageID + 2,
		Label:       "Friday Night Slots",
		EntryCost:   500,
		Assignments: make(map[int]int64),
		CreatedAt:   time.Now(),
	}
}

// CreateTestPendingValidation creates a pending slot claim awaiting staff review
func CreateTestPendingValidation(validationMessageID, eventMessageID int64, slot int, discordID, guildID int64) *models.PendingValidation {
	return &models.PendingValidation{
		ValidationMessageID: validationMessageID,
		EventMessageID:      eventMessageID,
		Slot:                slot,
		DiscordID:           discordID,
		GuildID:             guildID,
		CreatedAt:           time.Now(),
	}
}
