package casino

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// BuildClaimComponents creates the claim button attached to an announcement
func BuildClaimComponents(eventMessageID int64, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "🎰 Claim a slot",
					Style:    discordgo.PrimaryButton,
					CustomID: fmt.Sprintf("casino_claim_%d", eventMessageID),
					Disabled: disabled,
				},
			},
		},
	}
}

// BuildValidationComponents creates the staff approve/reject buttons
func BuildValidationComponents(disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "✅ Approve",
					Style:    discordgo.SuccessButton,
					CustomID: "casino_approve",
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    "❌ Reject",
					Style:    discordgo.DangerButton,
					CustomID: "casino_reject",
					Disabled: disabled,
				},
			},
		},
	}
}

// BuildSlotModal creates the modal asking the claimant for a slot number
func BuildSlotModal(eventMessageID int64) discordgo.InteractionResponseData {
	return discordgo.InteractionResponseData{
		CustomID: fmt.Sprintf("casino_slot_modal_%d", eventMessageID),
		Title:    "Claim a slot",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "casino_slot_input",
						Label:       "Slot number (1-100)",
						Style:       discordgo.TextInputShort,
						Placeholder: "42",
						Required:    true,
						MinLength:   1,
						MaxLength:   3,
					},
				},
			},
		},
	}
}
