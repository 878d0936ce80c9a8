package settings

import (
	"context"
	"errors"
	"fmt"

	"concierge/bot/common"
	"concierge/models"
	"concierge/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// channelOption extracts an optional channel option as an int64 pointer
func channelOption(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) *int64 {
	for _, opt := range options {
		if opt.Name == "channel" {
			if ch := opt.ChannelValue(s); ch != nil {
				id := common.ParseID(ch.ID)
				return &id
			}
		}
	}
	return nil
}

// requireAdmin gates every settings mutation
func requireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to change settings")
		return false
	}
	return true
}

func (f *Feature) handleLevelUpChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	channelID := channelOption(s, i, i.ApplicationCommandData().Options[0].Options)

	if err := f.configService.SetLevelUpChannel(context.Background(), guildID, channelID); err != nil {
		log.Errorf("Failed to set level-up channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Level-up announcements now go to the channel the message was sent in."
	if channelID != nil {
		message = fmt.Sprintf("Level-up announcements now go to %s.", common.FormatChannelMention(*channelID))
	}
	respondSettingsChanged(s, i, message)
}

func (f *Feature) handleVoiceCreatorChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	channelID := channelOption(s, i, i.ApplicationCommandData().Options[0].Options)

	if err := f.configService.SetVoiceCreatorChannel(context.Background(), guildID, channelID); err != nil {
		log.Errorf("Failed to set voice creator channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Ephemeral voice channels are disabled."
	if channelID != nil {
		message = fmt.Sprintf("Joining %s now creates a personal voice channel.", common.FormatChannelMention(*channelID))
	}
	respondSettingsChanged(s, i, message)
}

func (f *Feature) handleInviteLink(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	var link string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "link" {
			link = opt.StringValue()
		}
	}

	err := f.configService.SetInviteLink(context.Background(), guildID, link)
	if errors.Is(err, service.ErrInvalidInviteLink) {
		common.RespondWithError(s, i, "That does not look like an invite link.")
		return
	}
	if err != nil {
		log.Errorf("Failed to set invite link for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	respondSettingsChanged(s, i, fmt.Sprintf("Invite link set to %s", link))
}

func (f *Feature) handleLevelRole(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	var level int64
	var role *discordgo.Role
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "level":
			level = opt.IntValue()
		case "role":
			role = opt.RoleValue(s, i.GuildID)
		}
	}

	// Omitting the role clears the mapping for that level
	if role == nil {
		err := f.configService.RemoveLevelRole(context.Background(), guildID, int(level))
		if errors.Is(err, service.ErrInvalidLevel) {
			common.RespondWithError(s, i, fmt.Sprintf("Level must be between 1 and %d.", models.MaxLevel))
			return
		}
		if err != nil {
			log.Errorf("Failed to remove level role for guild %d: %v", guildID, err)
			common.RespondWithError(s, i, "Unable to update settings. Please try again.")
			return
		}
		respondSettingsChanged(s, i, fmt.Sprintf("Level %d no longer grants a role.", level))
		return
	}
	// The @everyone role shares its ID with the guild
	if role.ID == i.GuildID {
		common.RespondWithError(s, i, "@everyone cannot be used as a level role")
		return
	}

	err := f.configService.SetLevelRole(context.Background(), guildID, int(level), common.ParseID(role.ID))
	if errors.Is(err, service.ErrInvalidLevel) {
		common.RespondWithError(s, i, fmt.Sprintf("Level must be between 1 and %d.", models.MaxLevel))
		return
	}
	if err != nil {
		log.Errorf("Failed to set level role for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	respondSettingsChanged(s, i, fmt.Sprintf("Members reaching level %d now get <@&%s>.", level, role.ID))
}

func (f *Feature) handleReplaceLevelRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	var replace bool
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "enabled" {
			replace = opt.BoolValue()
		}
	}

	if err := f.configService.SetReplaceLevelRoles(context.Background(), guildID, replace); err != nil {
		log.Errorf("Failed to set replace-level-roles for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Level roles now stack as members level up."
	if replace {
		message = "The previous level role is now revoked on level-up."
	}
	respondSettingsChanged(s, i, message)
}

// HandleExitChannelCommand handles the /config-exit-channel slash command
func (f *Feature) HandleExitChannelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	channelID := channelOption(s, i, i.ApplicationCommandData().Options)

	if err := f.configService.SetExitChannel(context.Background(), guildID, channelID); err != nil {
		log.Errorf("Failed to set exit channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Exit messages are disabled."
	if channelID != nil {
		message = fmt.Sprintf("Exit messages now go to %s.", common.FormatChannelMention(*channelID))
	}
	respondSettingsChanged(s, i, message)
}

// boolOption extracts a required boolean option from a top-level command
func boolOption(i *discordgo.InteractionCreate, name string) bool {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.BoolValue()
		}
	}
	return false
}

// HandleLevelingToggle handles the /leveling-toggle slash command
func (f *Feature) HandleLevelingToggle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	active := boolOption(i, "enabled")

	if err := f.configService.SetLevelingActive(context.Background(), guildID, active); err != nil {
		log.Errorf("Failed to toggle leveling for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Leveling is now **disabled**."
	if active {
		message = "Leveling is now **enabled**."
	}
	respondSettingsChanged(s, i, message)
}

// HandleSweeperToggle handles the /bg-task-toggle slash command
func (f *Feature) HandleSweeperToggle(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !requireAdmin(s, i) {
		return
	}

	guildID := common.ParseID(i.GuildID)
	active := boolOption(i, "enabled")

	if err := f.configService.SetSweeperActive(context.Background(), guildID, active); err != nil {
		log.Errorf("Failed to toggle sweeper for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "The idle-member sweeper is now **disabled**."
	if active {
		message = "The idle-member sweeper is now **enabled**."
	}
	respondSettingsChanged(s, i, message)
}

// HandleConfigShow handles the /config-show slash command
func (f *Feature) HandleConfigShow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := common.ParseID(i.GuildID)
	config, err := f.configService.GetOrCreate(context.Background(), guildID)
	if err != nil {
		log.Errorf("Failed to load config for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve settings. Please try again.")
		return
	}

	embed := BuildConfigEmbed(config)
	if err := common.RespondWithEmbed(s, i, embed, nil, true); err != nil {
		log.Errorf("Error responding to config-show command: %v", err)
	}
}

func respondSettingsChanged(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error sending settings response: %v", err)
	}
}
