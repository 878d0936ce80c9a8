package leveling

import (
	"context"
	"fmt"
	"strconv"

	"concierge/bot/common"
	"concierge/events"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleMessageCreate awards XP for a qualifying guild message
func (f *Feature) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	guildID := common.ParseID(m.GuildID)
	userID := common.ParseID(m.Author.ID)
	channelID := common.ParseID(m.ChannelID)
	if guildID == 0 || userID == 0 {
		return
	}

	_, err := f.levelingService.AwardMessageXP(context.Background(), guildID, userID, channelID)
	if err != nil {
		log.Errorf("Failed to award message XP to user %d in guild %d: %v", userID, guildID, err)
	}
}

// HandleLevelUp announces a level-up and applies the configured level roles.
// Registered on the event bus; runs after the awarding transaction commits.
func (f *Feature) HandleLevelUp(ctx context.Context, event events.Event) {
	levelUp, ok := event.(events.LevelUpEvent)
	if !ok {
		return
	}

	config, err := f.configService.GetOrCreate(ctx, levelUp.GuildID)
	if err != nil {
		log.Errorf("Failed to load config for level-up in guild %d: %v", levelUp.GuildID, err)
		return
	}

	channelID := levelUp.FallbackChannelID
	if config.LevelUpChannelID != nil {
		channelID = *config.LevelUpChannelID
	}

	message := fmt.Sprintf("🎉 Congratulations %s, you reached **level %d**!",
		common.FormatUserMention(levelUp.UserID), levelUp.NewLevel)
	if _, err := f.session.ChannelMessageSend(strconv.FormatInt(channelID, 10), message); err != nil {
		log.Errorf("Failed to send level-up message in channel %d: %v", channelID, err)
	}

	f.applyLevelRoles(config.GuildID, levelUp.UserID, levelUp.OldLevel, levelUp.NewLevel, config.LevelRoles, config.ReplaceLevelRoles)
}

// applyLevelRoles grants the role for the new level and, when configured,
// revokes the previous one. Privilege failures are logged, never fatal.
func (f *Feature) applyLevelRoles(guildID, userID int64, oldLevel, newLevel int, levelRoles map[int]int64, replace bool) {
	guild := strconv.FormatInt(guildID, 10)
	user := strconv.FormatInt(userID, 10)

	if roleID, ok := levelRoles[newLevel]; ok {
		if err := f.session.GuildMemberRoleAdd(guild, user, strconv.FormatInt(roleID, 10)); err != nil {
			log.Errorf("Failed to grant level %d role to user %d in guild %d: %v", newLevel, userID, guildID, err)
		}
	}

	if !replace {
		return
	}

	if roleID, ok := levelRoles[oldLevel]; ok {
		if err := f.session.GuildMemberRoleRemove(guild, user, strconv.FormatInt(roleID, 10)); err != nil {
			log.Errorf("Failed to revoke level %d role from user %d in guild %d: %v", oldLevel, userID, guildID, err)
		}
	}
}

// HandleLevelCommand handles the /level slash command
func (f *Feature) HandleLevelCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := i.Member.User
	options := i.ApplicationCommandData().Options
	if len(options) > 0 && options[0].Name == "member" {
		if user := options[0].UserValue(s); user != nil {
			target = user
		}
	}

	guildID := common.ParseID(i.GuildID)
	userID := common.ParseID(target.ID)

	progress, err := f.levelingService.GetProgress(context.Background(), guildID, userID)
	if err != nil {
		log.Errorf("Failed to get progress for user %d in guild %d: %v", userID, guildID, err)
		common.RespondWithError(s, i, "Unable to retrieve level. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, target.ID)
	embed := BuildProgressEmbed(displayName, target.AvatarURL(""), progress)
	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to level command: %v", err)
	}
}
