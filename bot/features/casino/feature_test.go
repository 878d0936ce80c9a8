package casino

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestHandleInteraction_IgnoresInteractionsWithoutMember(t *testing.T) {
	f := &Feature{}

	// Component interactions relayed outside a guild carry User, not Member
	assert.NotPanics(t, func() {
		f.HandleInteraction(nil, &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionMessageComponent,
				User: &discordgo.User{ID: "123"},
			},
		})
	})
}
