package bot

import (
	"fmt"

	"concierge/models"

	"github.com/bwmarrin/discordgo"
)

// commandDefinitions returns every slash command the bot registers.
// All commands are guild commands in spirit; DMPermission is off so a
// global registration cannot deliver interactions without a Member.
func commandDefinitions() []*discordgo.ApplicationCommand {
	noDM := false

	channelOption := func(description string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "channel",
			Description: description,
			Required:    false,
		}
	}
	toggleOption := func(description string) []*discordgo.ApplicationCommandOption {
		return []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "enabled",
				Description: description,
				Required:    true,
			},
		}
	}

	minLevel := float64(1)

	return []*discordgo.ApplicationCommand{
		{
			Name:         "ping",
			Description:  "Check that the bot is alive",
			DMPermission: &noDM,
		},
		{
			Name:         "serverinfo",
			Description:  "Show information about this server",
			DMPermission: &noDM,
		},
		{
			Name:         "level",
			Description:  "Show a member's level and XP progress",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "Member to look up (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:         "config",
			Description:  "Configure the bot for this server",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "level-up-channel",
					Description: "Where level-up announcements are posted (omit to clear)",
					Options: []*discordgo.ApplicationCommandOption{
						channelOption("Announcement channel"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "voice-creator-channel",
					Description: "Voice channel that spawns personal channels (omit to disable)",
					Options: []*discordgo.ApplicationCommandOption{
						channelOption("Creator voice channel"),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "invite-link",
					Description: "Set the invite link shown by /serverinfo",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "link",
							Description: "Invite link",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "level-role",
					Description: "Role granted when a member reaches a level (omit role to clear)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "level",
							Description: fmt.Sprintf("Level (1-%d)", models.MaxLevel),
							Required:    true,
							MinValue:    &minLevel,
							MaxValue:    models.MaxLevel,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to grant (omit to clear the mapping)",
							Required:    false,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "replace-level-roles",
					Description: "Whether the previous level role is revoked on level-up",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Revoke the previous level role",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:         "config-show",
			Description:  "Show the current server configuration",
			DMPermission: &noDM,
		},
		{
			Name:         "config-exit-channel",
			Description:  "Where farewell messages are posted (omit to disable)",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("Farewell channel"),
			},
		},
		{
			Name:         "leveling-toggle",
			Description:  "Turn the leveling system on or off",
			DMPermission: &noDM,
			Options:      toggleOption("Whether leveling is active"),
		},
		{
			Name:         "bg-task-toggle",
			Description:  "Turn the idle-member sweeper on or off",
			DMPermission: &noDM,
			Options:      toggleOption("Whether the sweeper is active"),
		},
		{
			Name:         "casino",
			Description:  "Open a casino event with 100 numbered slots",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "label",
					Description: "Name of the event",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "cost",
					Description: "Entry cost per slot",
					Required:    false,
				},
				channelOption("Channel to announce in (defaults to here)"),
			},
		},
		{
			Name:         "casino-list",
			Description:  "List the open casino events in this server",
			DMPermission: &noDM,
		},
		{
			Name:         "casino-set-validation-channel",
			Description:  "Channel where staff approve slot claims (omit to disable)",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				channelOption("Validation channel"),
			},
		},
		{
			Name:         "close-casino",
			Description:  "Close a casino event",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message-id",
					Description: "Message ID of the announcement",
					Required:    true,
				},
			},
		},
		{
			Name:         "list-id",
			Description:  "Export the IDs of every member holding a role",
			DMPermission: &noDM,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role to list",
					Required:    true,
				},
			},
		},
		{
			Name:         "sync",
			Description:  "Re-register slash commands (owner only)",
			DMPermission: &noDM,
		},
	}
}

func (b *Bot) registerCommands() error {
	for _, cmd := range commandDefinitions() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}

	return nil
}
