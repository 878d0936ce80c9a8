package repository

import (
	"context"
	"fmt"

	"concierge/database"
	"concierge/models"
)

// GuildConfigRepository implements the service.GuildConfigRepository interface
type GuildConfigRepository struct {
	q queryable
}

// NewGuildConfigRepository creates a new guild config repository
func NewGuildConfigRepository(db *database.DB) *GuildConfigRepository {
	return &GuildConfigRepository{q: db.Pool}
}

// newGuildConfigRepositoryWithTx creates a new guild config repository with a transaction
func newGuildConfigRepositoryWithTx(tx queryable) *GuildConfigRepository {
	return &GuildConfigRepository{q: tx}
}

// GetOrCreate retrieves a guild's configuration, inserting the default
// record first if none exists
func (r *GuildConfigRepository) GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error) {
	query := `
		INSERT INTO guild_configs (guild_id)
		VALUES ($1)
		ON CONFLICT (guild_id) DO UPDATE SET guild_id = EXCLUDED.guild_id
		RETURNING guild_id, level_up_channel_id, exit_channel_id,
			voice_creator_channel_id, casino_validation_channel_id,
			invite_link, leveling_active, sweeper_active,
			replace_level_roles, created_at, updated_at
	`

	var config models.GuildConfig
	err := r.q.QueryRow(ctx, query, guildID).Scan(
		&config.GuildID,
		&config.LevelUpChannelID,
		&config.ExitChannelID,
		&config.VoiceCreatorChannelID,
		&config.CasinoValidationChannelID,
		&config.InviteLink,
		&config.LevelingActive,
		&config.SweeperActive,
		&config.ReplaceLevelRoles,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create config for guild %d: %w", guildID, err)
	}

	config.LevelRoles, err = r.loadLevelRoles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	return &config, nil
}

func (r *GuildConfigRepository) loadLevelRoles(ctx context.Context, guildID int64) (map[int]int64, error) {
	rows, err := r.q.Query(ctx, `SELECT level, role_id FROM level_roles WHERE guild_id = $1`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load level roles for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	roles := make(map[int]int64)
	for rows.Next() {
		var level int
		var roleID int64
		if err := rows.Scan(&level, &roleID); err != nil {
			return nil, fmt.Errorf("failed to scan level role: %w", err)
		}
		roles[level] = roleID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate level roles: %w", err)
	}

	return roles, nil
}

// Update persists the scalar fields of a configuration record
func (r *GuildConfigRepository) Update(ctx context.Context, config *models.GuildConfig) error {
	query := `
		UPDATE guild_configs
		SET level_up_channel_id = $2,
			exit_channel_id = $3,
			voice_creator_channel_id = $4,
			casino_validation_channel_id = $5,
			invite_link = $6,
			leveling_active = $7,
			sweeper_active = $8,
			replace_level_roles = $9,
			updated_at = NOW()
		WHERE guild_id = $1
	`

	result, err := r.q.Exec(ctx, query,
		config.GuildID,
		config.LevelUpChannelID,
		config.ExitChannelID,
		config.VoiceCreatorChannelID,
		config.CasinoValidationChannelID,
		config.InviteLink,
		config.LevelingActive,
		config.SweeperActive,
		config.ReplaceLevelRoles,
	)
	if err != nil {
		return fmt.Errorf("failed to update config for guild %d: %w", config.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no config record for guild %d", config.GuildID)
	}

	return nil
}

// SetLevelRole sets or replaces the role granted at a level
func (r *GuildConfigRepository) SetLevelRole(ctx context.Context, guildID int64, level int, roleID int64) error {
	query := `
		INSERT INTO level_roles (guild_id, level, role_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (guild_id, level) DO UPDATE SET role_id = EXCLUDED.role_id
	`

	if _, err := r.q.Exec(ctx, query, guildID, level, roleID); err != nil {
		return fmt.Errorf("failed to set level %d role for guild %d: %w", level, guildID, err)
	}

	return nil
}

// RemoveLevelRole clears the role granted at a level
func (r *GuildConfigRepository) RemoveLevelRole(ctx context.Context, guildID int64, level int) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM level_roles WHERE guild_id = $1 AND level = $2`, guildID, level); err != nil {
		return fmt.Errorf("failed to remove level %d role for guild %d: %w", level, guildID, err)
	}

	return nil
}

// Delete removes a guild's configuration; level roles cascade
func (r *GuildConfigRepository) Delete(ctx context.Context, guildID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM guild_configs WHERE guild_id = $1`, guildID); err != nil {
		return fmt.Errorf("failed to delete config for guild %d: %w", guildID, err)
	}

	return nil
}
