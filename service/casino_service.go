package service

import (
	"context"
	"fmt"

	"concierge/models"
)

// casinoService implements the CasinoService interface
type casinoService struct {
	uowFactory UnitOfWorkFactory
}

// NewCasinoService creates a new casino service
func NewCasinoService(uowFactory UnitOfWorkFactory) CasinoService {
	return &casinoService{
		uowFactory: uowFactory,
	}
}

// OpenEvent records a newly announced casino event
func (s *casinoService) OpenEvent(ctx context.Context, event *models.CasinoEvent) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.CasinoEventRepository().Create(ctx, event); err != nil {
		return fmt.Errorf("failed to create casino event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListEvents returns the open events for a guild
func (s *casinoService) ListEvents(ctx context.Context, guildID int64) ([]*models.CasinoEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	events, err := uow.CasinoEventRepository().ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list casino events: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return events, nil
}

// GetEvent returns an event with its assignments, ErrEventClosed when missing
func (s *casinoService) GetEvent(ctx context.Context, messageID int64) (*models.CasinoEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	event, err := uow.CasinoEventRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casino event: %w", err)
	}
	if event == nil {
		return nil, ErrEventClosed
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, nil
}

// ClaimSlot validates and applies a participant's slot claim
func (s *casinoService) ClaimSlot(ctx context.Context, eventMessageID, claimantID int64, slot int) (*ClaimResult, error) {
	if !models.ValidSlot(slot) {
		return nil, ErrInvalidSlot
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	event, err := uow.CasinoEventRepository().GetByMessageID(ctx, eventMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casino event: %w", err)
	}
	if event == nil {
		return nil, ErrEventClosed
	}
	if event.SlotTaken(slot) {
		return nil, ErrSlotTaken
	}

	guildConfig, err := uow.GuildConfigRepository().GetOrCreate(ctx, event.GuildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}

	// With a validation channel configured the claim is parked for staff
	// review instead of being assigned here
	if guildConfig.CasinoValidationChannelID != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &ClaimResult{RequiresApproval: true, Event: event, Slot: slot}, nil
	}

	assigned, err := uow.CasinoEventRepository().AssignSlot(ctx, eventMessageID, slot, claimantID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign slot: %w", err)
	}
	if !assigned {
		return nil, ErrSlotTaken
	}

	event, err = uow.CasinoEventRepository().GetByMessageID(ctx, eventMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload casino event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &ClaimResult{Event: event, Slot: slot}, nil
}

// RecordPending stores the approval request posted to the validation channel
func (s *casinoService) RecordPending(ctx context.Context, pending *models.PendingValidation) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.PendingValidationRepository().Create(ctx, pending); err != nil {
		return fmt.Errorf("failed to record pending validation: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ResolvePending applies a staff decision on a parked claim
func (s *casinoService) ResolvePending(ctx context.Context, validationMessageID int64, approve bool) (*PendingResolution, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	pending, err := uow.PendingValidationRepository().Take(ctx, validationMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to take pending validation: %w", err)
	}
	if pending == nil {
		return nil, ErrAlreadyProcessed
	}

	resolution := &PendingResolution{Pending: pending, Approved: approve}

	if approve {
		event, err := uow.CasinoEventRepository().GetByMessageID(ctx, pending.EventMessageID)
		if err != nil {
			return nil, fmt.Errorf("failed to get casino event: %w", err)
		}
		if event == nil {
			return nil, ErrEventClosed
		}

		// The slot may have been taken while the claim sat in review
		assigned, err := uow.CasinoEventRepository().AssignSlot(ctx, pending.EventMessageID, pending.Slot, pending.DiscordID)
		if err != nil {
			return nil, fmt.Errorf("failed to assign slot: %w", err)
		}
		if !assigned {
			return nil, ErrSlotTaken
		}

		event, err = uow.CasinoEventRepository().GetByMessageID(ctx, pending.EventMessageID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload casino event: %w", err)
		}
		resolution.Event = event
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return resolution, nil
}

// CloseEvent deletes an event and returns its final state for the closing
// announcement. Outstanding pending validations die with it.
func (s *casinoService) CloseEvent(ctx context.Context, messageID int64) (*models.CasinoEvent, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	event, err := uow.CasinoEventRepository().GetByMessageID(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to get casino event: %w", err)
	}
	if event == nil {
		return nil, ErrEventClosed
	}

	deleted, err := uow.CasinoEventRepository().Delete(ctx, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete casino event: %w", err)
	}
	if !deleted {
		return nil, ErrEventClosed
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return event, nil
}
