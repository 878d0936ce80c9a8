package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandDefinitions_DisallowDMs(t *testing.T) {
	for _, cmd := range commandDefinitions() {
		require.NotNil(t, cmd.DMPermission, "command %s allows DMs", cmd.Name)
		assert.False(t, *cmd.DMPermission, "command %s allows DMs", cmd.Name)
	}
}

func TestCommandDefinitions_TogglesTakeExplicitState(t *testing.T) {
	byName := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range commandDefinitions() {
		byName[cmd.Name] = cmd
	}

	for _, name := range []string{"leveling-toggle", "bg-task-toggle"} {
		cmd := byName[name]
		require.NotNil(t, cmd, "command %s is not registered", name)
		require.Len(t, cmd.Options, 1, "command %s", name)

		opt := cmd.Options[0]
		assert.Equal(t, discordgo.ApplicationCommandOptionBoolean, opt.Type, "command %s", name)
		assert.Equal(t, "enabled", opt.Name, "command %s", name)
		assert.True(t, opt.Required, "command %s", name)
	}
}

func TestHandleCommands_IgnoresInteractionsWithoutMember(t *testing.T) {
	b := &Bot{}

	// A DM interaction carries User instead of Member; the dispatcher must
	// bail out before any feature handler dereferences it
	assert.NotPanics(t, func() {
		b.handleCommands(nil, &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionApplicationCommand,
				User: &discordgo.User{ID: "123"},
			},
		})
	})
}
