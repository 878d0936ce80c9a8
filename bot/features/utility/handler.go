package utility

import (
	"context"
	"fmt"
	"strings"

	"concierge/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandlePing handles the /ping slash command
func (f *Feature) HandlePing(s *discordgo.Session, i *discordgo.InteractionCreate) {
	message := fmt.Sprintf("🏓 Pong! Gateway latency: **%dms**", s.HeartbeatLatency().Milliseconds())
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
	if err != nil {
		log.Errorf("Error responding to ping command: %v", err)
	}
}

// HandleServerInfo handles the /serverinfo slash command
func (f *Feature) HandleServerInfo(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		guild, err = s.Guild(i.GuildID)
		if err != nil {
			log.Errorf("Failed to fetch guild %s: %v", i.GuildID, err)
			common.RespondWithError(s, i, "Unable to retrieve server information.")
			return
		}
	}

	created, err := discordgo.SnowflakeTimestamp(guild.ID)
	if err != nil {
		log.Errorf("Failed to derive creation time for guild %s: %v", guild.ID, err)
	}

	inviteValue := "*not configured*"
	config, err := f.configService.GetOrCreate(context.Background(), common.ParseID(i.GuildID))
	if err != nil {
		log.Errorf("Failed to load config for serverinfo in guild %s: %v", i.GuildID, err)
	} else if config.InviteLink != nil {
		inviteValue = *config.InviteLink
	}

	embed := &discordgo.MessageEmbed{
		Title: guild.Name,
		Color: common.ColorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: guild.IconURL(""),
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "Server ID", Value: guild.ID, Inline: true},
			{Name: "Created", Value: common.FormatDiscordTimestamp(created, "D"), Inline: true},
			{Name: "Invite", Value: inviteValue, Inline: true},
		},
	}

	if err := common.RespondWithEmbed(s, i, embed, nil, false); err != nil {
		log.Errorf("Error responding to serverinfo command: %v", err)
	}
}

// HandleListID handles the /list-id slash command: dumps the IDs of every
// member holding a role as a text attachment
func (f *Feature) HandleListID(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var roleID string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "role" {
			if role := opt.RoleValue(s, i.GuildID); role != nil {
				roleID = role.ID
			}
		}
	}
	if roleID == "" {
		common.RespondWithError(s, i, "Please select a role")
		return
	}

	// Walking the member list can take a while on big servers
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring list-id response: %v", err)
		return
	}

	var ids []string
	after := ""
	for {
		members, err := s.GuildMembers(i.GuildID, after, 1000)
		if err != nil {
			log.Errorf("Failed to list members of guild %s: %v", i.GuildID, err)
			common.FollowUpWithError(s, i, "Unable to list members. Please try again.")
			return
		}
		if len(members) == 0 {
			break
		}
		for _, member := range members {
			for _, r := range member.Roles {
				if r == roleID {
					ids = append(ids, member.User.ID)
					break
				}
			}
		}
		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("%d members hold <@&%s>:", len(ids), roleID),
		Flags:   discordgo.MessageFlagsEphemeral,
		Files: []*discordgo.File{
			{
				Name:        "member-ids.txt",
				ContentType: "text/plain",
				Reader:      strings.NewReader(strings.Join(ids, "\n")),
			},
		},
	})
	if err != nil {
		log.Errorf("Error responding to list-id command: %v", err)
	}
}

// HandleSync handles the owner-only /sync slash command
func (f *Feature) HandleSync(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if f.ownerID == "" || i.Member.User.ID != f.ownerID {
		common.RespondWithError(s, i, "Only the bot owner can use this command")
		return
	}

	if err := f.resync(); err != nil {
		log.Errorf("Failed to re-register commands: %v", err)
		common.RespondWithError(s, i, "Command re-registration failed.")
		return
	}

	if err := common.RespondWithSuccess(s, i, "Slash commands re-registered.", true); err != nil {
		log.Errorf("Error responding to sync command: %v", err)
	}
}
