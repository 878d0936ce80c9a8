package casino

import (
	"strings"

	"concierge/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles casino reservation events: announcements, slot claims,
// staff validation and closing
type Feature struct {
	session       *discordgo.Session
	casinoService service.CasinoService
	configService service.GuildConfigService
}

// NewFeature creates a new casino feature instance
func NewFeature(session *discordgo.Session, casinoService service.CasinoService, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		casinoService: casinoService,
		configService: configService,
	}
}

// HandleInteraction routes casino component and modal interactions
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// Claim and decision handlers all read i.Member, which DMs do not carry
	if i.Member == nil {
		return
	}

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		switch {
		case strings.HasPrefix(customID, "casino_claim_"):
			f.handleClaimButton(s, i)
		case customID == "casino_approve":
			f.handleDecisionButton(s, i, true)
		case customID == "casino_reject":
			f.handleDecisionButton(s, i, false)
		}

	case discordgo.InteractionModalSubmit:
		if strings.HasPrefix(i.ModalSubmitData().CustomID, "casino_slot_modal_") {
			f.handleSlotModal(s, i)
		}
	}
}
