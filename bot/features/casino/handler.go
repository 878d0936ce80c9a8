package casino

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"concierge/bot/common"
	"concierge/models"
	"concierge/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// HandleCasinoCommand handles the /casino slash command
func (f *Feature) HandleCasinoCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var label string
	var entryCost int64
	targetChannelID := i.ChannelID

	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "label":
			label = opt.StringValue()
		case "cost":
			entryCost = opt.IntValue()
		case "channel":
			if ch := opt.ChannelValue(s); ch != nil {
				targetChannelID = ch.ID
			}
		}
	}

	if label == "" {
		common.RespondWithError(s, i, "Please provide a label for the event")
		return
	}
	if entryCost < 0 {
		common.RespondWithError(s, i, "Entry cost cannot be negative")
		return
	}

	hostName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	event := &models.CasinoEvent{
		ChannelID:   common.ParseID(targetChannelID),
		GuildID:     common.ParseID(i.GuildID),
		HostID:      common.ParseID(i.Member.User.ID),
		Label:       label,
		EntryCost:   entryCost,
		Assignments: make(map[int]int64),
	}

	// The announcement must exist before the event, since its message ID is
	// the event's identity. The claim button is attached once the ID is known.
	msg, err := s.ChannelMessageSendComplex(targetChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{BuildEventEmbed(event, hostName)},
	})
	if err != nil {
		log.Errorf("Failed to post casino announcement in channel %s: %v", targetChannelID, err)
		common.RespondWithError(s, i, "Unable to post the announcement. Please try again.")
		return
	}

	event.MessageID = common.ParseID(msg.ID)
	if err := f.casinoService.OpenEvent(context.Background(), event); err != nil {
		log.Errorf("Failed to open casino event %d: %v", event.MessageID, err)
		if delErr := s.ChannelMessageDelete(targetChannelID, msg.ID); delErr != nil {
			log.Errorf("Failed to remove orphaned announcement %s: %v", msg.ID, delErr)
		}
		common.RespondWithError(s, i, "Unable to open the event. Please try again.")
		return
	}

	components := BuildClaimComponents(event.MessageID, false)
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         msg.ID,
		Channel:    targetChannelID,
		Components: &components,
	}); err != nil {
		log.Errorf("Failed to attach claim button to announcement %s: %v", msg.ID, err)
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Event **%s** is open in %s", label, common.FormatChannelMention(event.ChannelID)), true); err != nil {
		log.Errorf("Error responding to casino command: %v", err)
	}
}

// handleClaimButton opens the slot number modal
func (f *Feature) handleClaimButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	eventMessageID := common.ParseID(strings.TrimPrefix(i.MessageComponentData().CustomID, "casino_claim_"))
	if eventMessageID == 0 {
		common.RespondWithError(s, i, "Invalid event")
		return
	}

	modal := BuildSlotModal(eventMessageID)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &modal,
	})
	if err != nil {
		log.Errorf("Error showing slot modal: %v", err)
	}
}

// handleSlotModal processes a submitted slot claim
func (f *Feature) handleSlotModal(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	eventMessageID := common.ParseID(strings.TrimPrefix(i.ModalSubmitData().CustomID, "casino_slot_modal_"))
	claimantID := common.ParseID(i.Member.User.ID)

	raw := i.ModalSubmitData().Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
	slot, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		common.RespondWithError(s, i, fmt.Sprintf("`%s` is not a number. Choose a slot between 1 and %d.", raw, models.SlotCount))
		return
	}

	result, err := f.casinoService.ClaimSlot(ctx, eventMessageID, claimantID, slot)
	switch {
	case errors.Is(err, service.ErrInvalidSlot):
		common.RespondWithError(s, i, fmt.Sprintf("Choose a slot between 1 and %d.", models.SlotCount))
		return
	case errors.Is(err, service.ErrSlotTaken):
		common.RespondWithError(s, i, fmt.Sprintf("Slot %d is already taken. Pick another one.", slot))
		return
	case errors.Is(err, service.ErrEventClosed):
		common.RespondWithError(s, i, "This event is closed.")
		return
	case err != nil:
		log.Errorf("Failed to claim slot %d on event %d: %v", slot, eventMessageID, err)
		common.RespondWithError(s, i, "Unable to claim the slot. Please try again.")
		return
	}

	if result.RequiresApproval {
		f.parkForValidation(s, i, result)
		return
	}

	f.refreshAnnouncement(s, result.Event)
	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Slot **%d** is yours!", slot), true); err != nil {
		log.Errorf("Error responding to slot claim: %v", err)
	}
}

// parkForValidation posts the approval request and records it
func (f *Feature) parkForValidation(s *discordgo.Session, i *discordgo.InteractionCreate, result *service.ClaimResult) {
	ctx := context.Background()
	claimantID := common.ParseID(i.Member.User.ID)

	config, err := f.configService.GetOrCreate(ctx, result.Event.GuildID)
	if err != nil || config.CasinoValidationChannelID == nil {
		log.Errorf("Validation channel unavailable for guild %d: %v", result.Event.GuildID, err)
		common.RespondWithError(s, i, "Unable to submit the claim for review. Please try again.")
		return
	}

	validationChannel := strconv.FormatInt(*config.CasinoValidationChannelID, 10)
	msg, err := s.ChannelMessageSendComplex(validationChannel, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{BuildPendingEmbed(result.Event, claimantID, result.Slot)},
		Components: BuildValidationComponents(false),
	})
	if err != nil {
		log.Errorf("Failed to post validation request in channel %s: %v", validationChannel, err)
		common.RespondWithError(s, i, "Unable to submit the claim for review. Please try again.")
		return
	}

	pending := &models.PendingValidation{
		ValidationMessageID: common.ParseID(msg.ID),
		EventMessageID:      result.Event.MessageID,
		Slot:                result.Slot,
		DiscordID:           claimantID,
		GuildID:             result.Event.GuildID,
	}
	if err := f.casinoService.RecordPending(ctx, pending); err != nil {
		log.Errorf("Failed to record pending validation %d: %v", pending.ValidationMessageID, err)
		if delErr := s.ChannelMessageDelete(validationChannel, msg.ID); delErr != nil {
			log.Errorf("Failed to remove orphaned validation request %s: %v", msg.ID, delErr)
		}
		common.RespondWithError(s, i, "Unable to submit the claim for review. Please try again.")
		return
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Your claim for slot **%d** was sent to the staff for approval.", result.Slot), true); err != nil {
		log.Errorf("Error responding to parked claim: %v", err)
	}
}

// handleDecisionButton applies a staff approve/reject decision
func (f *Feature) handleDecisionButton(s *discordgo.Session, i *discordgo.InteractionCreate, approve bool) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to review claims")
		return
	}

	ctx := context.Background()
	validationMessageID := common.ParseID(i.Message.ID)

	resolution, err := f.casinoService.ResolvePending(ctx, validationMessageID, approve)
	switch {
	case errors.Is(err, service.ErrAlreadyProcessed):
		common.RespondWithError(s, i, "This claim was already processed.")
		return
	case errors.Is(err, service.ErrEventClosed):
		common.RespondWithError(s, i, "The event this claim belongs to is closed.")
		return
	case errors.Is(err, service.ErrSlotTaken):
		common.RespondWithError(s, i, "That slot was taken while the claim sat in review.")
		return
	case err != nil:
		log.Errorf("Failed to resolve pending validation %d: %v", validationMessageID, err)
		common.RespondWithError(s, i, "Unable to process the decision. Please try again.")
		return
	}

	moderatorName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	embed := BuildResolvedEmbed(resolution.Pending, resolution.Approved, moderatorName)
	components := BuildValidationComponents(true)
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		log.Errorf("Error updating validation message %d: %v", validationMessageID, err)
	}

	if resolution.Approved {
		f.refreshAnnouncement(s, resolution.Event)
		return
	}

	f.notifyRejection(s, resolution.Pending)
}

// notifyRejection tells the claimant by DM that their claim was declined
func (f *Feature) notifyRejection(s *discordgo.Session, pending *models.PendingValidation) {
	dm, err := s.UserChannelCreate(strconv.FormatInt(pending.DiscordID, 10))
	if err != nil {
		log.Errorf("Failed to open DM with user %d: %v", pending.DiscordID, err)
		return
	}

	message := fmt.Sprintf("Your claim for slot **%d** was declined by the staff.", pending.Slot)
	if _, err := s.ChannelMessageSend(dm.ID, message); err != nil {
		log.Errorf("Failed to DM rejection to user %d: %v", pending.DiscordID, err)
	}
}

// refreshAnnouncement redraws the announcement embed after an assignment
func (f *Feature) refreshAnnouncement(s *discordgo.Session, event *models.CasinoEvent) {
	if event == nil {
		return
	}

	channelID := strconv.FormatInt(event.ChannelID, 10)
	messageID := strconv.FormatInt(event.MessageID, 10)
	hostName := common.GetDisplayNameInt64(s, strconv.FormatInt(event.GuildID, 10), event.HostID)

	embeds := []*discordgo.MessageEmbed{BuildEventEmbed(event, hostName)}
	components := BuildClaimComponents(event.MessageID, event.IsFull())
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         messageID,
		Channel:    channelID,
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		log.Errorf("Failed to refresh announcement %d: %v", event.MessageID, err)
	}
}

// HandleListCommand handles the /casino-list slash command
func (f *Feature) HandleListCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guildID := common.ParseID(i.GuildID)

	events, err := f.casinoService.ListEvents(context.Background(), guildID)
	if err != nil {
		log.Errorf("Failed to list casino events for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to list the events. Please try again.")
		return
	}

	if err := common.RespondWithEmbed(s, i, BuildListEmbed(events), nil, true); err != nil {
		log.Errorf("Error responding to casino-list command: %v", err)
	}
}

// HandleCloseCommand handles the /close-casino slash command
func (f *Feature) HandleCloseCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to close an event")
		return
	}

	var messageID int64
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "message-id" {
			messageID = common.ParseID(opt.StringValue())
		}
	}
	if messageID == 0 {
		common.RespondWithError(s, i, "Please provide the announcement message id")
		return
	}

	event, err := f.casinoService.CloseEvent(context.Background(), messageID)
	if errors.Is(err, service.ErrEventClosed) {
		common.RespondWithError(s, i, "No open event with that message id.")
		return
	}
	if err != nil {
		log.Errorf("Failed to close casino event %d: %v", messageID, err)
		common.RespondWithError(s, i, "Unable to close the event. Please try again.")
		return
	}

	hostName := common.GetDisplayNameInt64(s, i.GuildID, event.HostID)
	embeds := []*discordgo.MessageEmbed{BuildClosedEmbed(event, hostName)}
	components := BuildClaimComponents(event.MessageID, true)
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:         strconv.FormatInt(event.MessageID, 10),
		Channel:    strconv.FormatInt(event.ChannelID, 10),
		Embeds:     &embeds,
		Components: &components,
	}); err != nil {
		log.Errorf("Failed to mark announcement %d closed: %v", event.MessageID, err)
	}

	if err := common.RespondWithSuccess(s, i, fmt.Sprintf("Event **%s** is closed.", event.Label), true); err != nil {
		log.Errorf("Error responding to close-casino command: %v", err)
	}
}

// HandleSetValidationChannel handles the /casino-set-validation-channel command
func (f *Feature) HandleSetValidationChannel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsUserAdmin(s, i.GuildID, i.Member.User.ID) {
		common.RespondWithError(s, i, "You need administrator permissions to change settings")
		return
	}

	guildID := common.ParseID(i.GuildID)
	var channelID *int64

	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "channel" {
			if ch := opt.ChannelValue(s); ch != nil {
				parsed := common.ParseID(ch.ID)
				channelID = &parsed
			}
		}
	}

	if err := f.configService.SetCasinoValidationChannel(context.Background(), guildID, channelID); err != nil {
		log.Errorf("Failed to set validation channel for guild %d: %v", guildID, err)
		common.RespondWithError(s, i, "Unable to update settings. Please try again.")
		return
	}

	message := "Casino claims no longer require staff approval."
	if channelID != nil {
		message = fmt.Sprintf("Casino claims now require approval in %s.", common.FormatChannelMention(*channelID))
	}
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to casino-set-validation-channel: %v", err)
	}
}
