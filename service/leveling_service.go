package service

import (
	"context"
	"fmt"

	"concierge/config"
	"concierge/events"
	"concierge/models"
)

// levelingService implements the LevelingService interface
type levelingService struct {
	uowFactory UnitOfWorkFactory
}

// NewLevelingService creates a new leveling service
func NewLevelingService(uowFactory UnitOfWorkFactory) LevelingService {
	return &levelingService{
		uowFactory: uowFactory,
	}
}

// AwardMessageXP grants XP for one qualifying message. The progress row is
// locked for the duration of the transaction, so concurrent messages from
// the same member serialize instead of losing updates.
func (s *levelingService) AwardMessageXP(ctx context.Context, guildID, userID, fallbackChannelID int64) (*models.MemberProgress, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	guildConfig, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guild config: %w", err)
	}
	if !guildConfig.LevelingActive {
		return nil, nil
	}

	progress, err := uow.ProgressRepository().GetOrCreateForUpdate(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member progress: %w", err)
	}

	// XP stops accruing at the final level
	if progress.AtMaxLevel() {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return progress, nil
	}

	oldLevel := progress.Level
	progress.TotalXP += config.Get().XPPerMessage
	progress.Level, _ = models.LevelForXP(progress.TotalXP)

	if err := uow.ProgressRepository().Update(ctx, progress); err != nil {
		return nil, fmt.Errorf("failed to update member progress: %w", err)
	}

	if progress.Level > oldLevel {
		uow.EventBus().Publish(events.LevelUpEvent{
			GuildID:           guildID,
			UserID:            userID,
			OldLevel:          oldLevel,
			NewLevel:          progress.Level,
			FallbackChannelID: fallbackChannelID,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return progress, nil
}

// GetProgress returns a member's progress, zeroed when they have none
func (s *levelingService) GetProgress(ctx context.Context, guildID, userID int64) (*models.MemberProgress, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	progress, err := uow.ProgressRepository().Get(ctx, guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member progress: %w", err)
	}
	if progress == nil {
		progress = &models.MemberProgress{
			GuildID:   guildID,
			DiscordID: userID,
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return progress, nil
}

// Leaderboard returns the top members of a guild by XP
func (s *levelingService) Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.MemberProgress, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	top, err := uow.ProgressRepository().Top(ctx, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return top, nil
}
