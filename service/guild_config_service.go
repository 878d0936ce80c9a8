package service

import (
	"context"
	"fmt"

	"concierge/models"
)

// guildConfigService implements the GuildConfigService interface
type guildConfigService struct {
	uowFactory UnitOfWorkFactory
}

// NewGuildConfigService creates a new guild config service
func NewGuildConfigService(uowFactory UnitOfWorkFactory) GuildConfigService {
	return &guildConfigService{
		uowFactory: uowFactory,
	}
}

// GetOrCreate retrieves a guild's configuration, creating defaults on first access
func (s *guildConfigService) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create guild config: %w", err)
	}

	// Commit in case a default record was created
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return config, nil
}

// updateConfig loads a guild's configuration, applies the mutation, and saves
// it in one transaction
func (s *guildConfigService) updateConfig(ctx context.Context, guildID int64, mutate func(*models.GuildConfig)) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	config, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID)
	if err != nil {
		return fmt.Errorf("failed to get guild config: %w", err)
	}

	mutate(config)

	if err := uow.GuildConfigRepository().Update(ctx, config); err != nil {
		return fmt.Errorf("failed to update guild config: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetLevelUpChannel sets (or clears, with nil) the level-up announcement channel
func (s *guildConfigService) SetLevelUpChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.LevelUpChannelID = channelID
	})
}

// SetExitChannel sets (or clears) the member-leave announcement channel
func (s *guildConfigService) SetExitChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.ExitChannelID = channelID
	})
}

// SetVoiceCreatorChannel sets (or clears) the temp-voice creator channel
func (s *guildConfigService) SetVoiceCreatorChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.VoiceCreatorChannelID = channelID
	})
}

// SetCasinoValidationChannel sets (or clears) the staff validation channel
func (s *guildConfigService) SetCasinoValidationChannel(ctx context.Context, guildID int64, channelID *int64) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.CasinoValidationChannelID = channelID
	})
}

// SetInviteLink validates and stores the guild's invite link
func (s *guildConfigService) SetInviteLink(ctx context.Context, guildID int64, link string) error {
	if !models.ValidInviteLink(link) {
		return ErrInvalidInviteLink
	}
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.InviteLink = &link
	})
}

// SetLevelRole sets the role granted when a member reaches a level
func (s *guildConfigService) SetLevelRole(ctx context.Context, guildID int64, level int, roleID int64) error {
	if level < 1 || level > models.MaxLevel {
		return ErrInvalidLevel
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	// Ensure the guild row exists before inserting against it
	if _, err := uow.GuildConfigRepository().GetOrCreate(ctx, guildID); err != nil {
		return fmt.Errorf("failed to get guild config: %w", err)
	}

	if err := uow.GuildConfigRepository().SetLevelRole(ctx, guildID, level, roleID); err != nil {
		return fmt.Errorf("failed to set level role: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// RemoveLevelRole clears the role granted at a level
func (s *guildConfigService) RemoveLevelRole(ctx context.Context, guildID int64, level int) error {
	if level < 1 || level > models.MaxLevel {
		return ErrInvalidLevel
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.GuildConfigRepository().RemoveLevelRole(ctx, guildID, level); err != nil {
		return fmt.Errorf("failed to remove level role: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SetLevelingActive toggles the leveling system
func (s *guildConfigService) SetLevelingActive(ctx context.Context, guildID int64, active bool) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.LevelingActive = active
	})
}

// SetSweeperActive toggles the idle-member sweeper
func (s *guildConfigService) SetSweeperActive(ctx context.Context, guildID int64, active bool) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.SweeperActive = active
	})
}

// SetReplaceLevelRoles toggles revoking the previous level role on level-up
func (s *guildConfigService) SetReplaceLevelRoles(ctx context.Context, guildID int64, replace bool) error {
	return s.updateConfig(ctx, guildID, func(c *models.GuildConfig) {
		c.ReplaceLevelRoles = replace
	})
}

// RemoveGuild deletes configuration and progression for a guild the bot left
func (s *guildConfigService) RemoveGuild(ctx context.Context, guildID int64) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if err := uow.GuildConfigRepository().Delete(ctx, guildID); err != nil {
		return fmt.Errorf("failed to delete guild config: %w", err)
	}

	if err := uow.ProgressRepository().DeleteByGuild(ctx, guildID); err != nil {
		return fmt.Errorf("failed to delete guild progress: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
