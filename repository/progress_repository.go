package repository

import (
	"context"
	"fmt"

	"concierge/database"
	"concierge/models"

	"github.com/jackc/pgx/v5"
)

// ProgressRepository implements the service.ProgressRepository interface
type ProgressRepository struct {
	q queryable
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{q: db.Pool}
}

// newProgressRepositoryWithTx creates a new progress repository with a transaction
func newProgressRepositoryWithTx(tx queryable) *ProgressRepository {
	return &ProgressRepository{q: tx}
}

// Get retrieves a member's progress, nil when the member has none
func (r *ProgressRepository) Get(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error) {
	query := `
		SELECT guild_id, discord_id, total_xp, level, created_at, updated_at
		FROM member_progress
		WHERE guild_id = $1 AND discord_id = $2
	`

	var progress models.MemberProgress
	err := r.q.QueryRow(ctx, query, guildID, discordID).Scan(
		&progress.GuildID,
		&progress.DiscordID,
		&progress.TotalXP,
		&progress.Level,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for member %d in guild %d: %w", discordID, guildID, err)
	}

	return &progress, nil
}

// GetOrCreateForUpdate retrieves a member's progress with a row lock,
// inserting a zeroed record first if none exists. The lock serializes
// concurrent XP awards for the same member.
func (r *ProgressRepository) GetOrCreateForUpdate(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error) {
	insert := `
		INSERT INTO member_progress (guild_id, discord_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id, discord_id) DO NOTHING
	`
	if _, err := r.q.Exec(ctx, insert, guildID, discordID); err != nil {
		return nil, fmt.Errorf("failed to ensure progress row for member %d in guild %d: %w", discordID, guildID, err)
	}

	query := `
		SELECT guild_id, discord_id, total_xp, level, created_at, updated_at
		FROM member_progress
		WHERE guild_id = $1 AND discord_id = $2
		FOR UPDATE
	`

	var progress models.MemberProgress
	err := r.q.QueryRow(ctx, query, guildID, discordID).Scan(
		&progress.GuildID,
		&progress.DiscordID,
		&progress.TotalXP,
		&progress.Level,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to lock progress for member %d in guild %d: %w", discordID, guildID, err)
	}

	return &progress, nil
}

// Update persists a member's XP and level
func (r *ProgressRepository) Update(ctx context.Context, progress *models.MemberProgress) error {
	query := `
		UPDATE member_progress
		SET total_xp = $3, level = $4, updated_at = NOW()
		WHERE guild_id = $1 AND discord_id = $2
	`

	result, err := r.q.Exec(ctx, query, progress.GuildID, progress.DiscordID, progress.TotalXP, progress.Level)
	if err != nil {
		return fmt.Errorf("failed to update progress for member %d in guild %d: %w", progress.DiscordID, progress.GuildID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no progress record for member %d in guild %d", progress.DiscordID, progress.GuildID)
	}

	return nil
}

// Top returns the highest-XP members of a guild
func (r *ProgressRepository) Top(ctx context.Context, guildID int64, limit int) ([]*models.MemberProgress, error) {
	query := `
		SELECT guild_id, discord_id, total_xp, level, created_at, updated_at
		FROM member_progress
		WHERE guild_id = $1
		ORDER BY total_xp DESC, discord_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var members []*models.MemberProgress
	for rows.Next() {
		var progress models.MemberProgress
		err := rows.Scan(
			&progress.GuildID,
			&progress.DiscordID,
			&progress.TotalXP,
			&progress.Level,
			&progress.CreatedAt,
			&progress.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		members = append(members, &progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return members, nil
}

// DeleteByGuild removes all progress records for a guild
func (r *ProgressRepository) DeleteByGuild(ctx context.Context, guildID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM member_progress WHERE guild_id = $1`, guildID); err != nil {
		return fmt.Errorf("failed to delete progress for guild %d: %w", guildID, err)
	}

	return nil
}
