package repository

import (
	"context"
	"fmt"

	"concierge/database"
	"concierge/models"

	"github.com/jackc/pgx/v5"
)

// PendingValidationRepository implements the service.PendingValidationRepository interface
type PendingValidationRepository struct {
	q queryable
}

// NewPendingValidationRepository creates a new pending validation repository
func NewPendingValidationRepository(db *database.DB) *PendingValidationRepository {
	return &PendingValidationRepository{q: db.Pool}
}

// newPendingValidationRepositoryWithTx creates a new pending validation repository with a transaction
func newPendingValidationRepositoryWithTx(tx queryable) *PendingValidationRepository {
	return &PendingValidationRepository{q: tx}
}

// Create inserts a new pending validation
func (r *PendingValidationRepository) Create(ctx context.Context, pending *models.PendingValidation) error {
	query := `
		INSERT INTO casino_pending (validation_message_id, event_message_id, slot, discord_id, guild_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		pending.ValidationMessageID,
		pending.EventMessageID,
		pending.Slot,
		pending.DiscordID,
		pending.GuildID,
	).Scan(&pending.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pending validation %d: %w", pending.ValidationMessageID, err)
	}

	return nil
}

// Take removes and returns a pending validation in one statement, so two
// concurrent decisions can never both win. Returns nil when the request
// was already resolved or died with its event.
func (r *PendingValidationRepository) Take(ctx context.Context, validationMessageID int64) (*models.PendingValidation, error) {
	query := `
		DELETE FROM casino_pending
		WHERE validation_message_id = $1
		RETURNING validation_message_id, event_message_id, slot, discord_id, guild_id, created_at
	`

	var pending models.PendingValidation
	err := r.q.QueryRow(ctx, query, validationMessageID).Scan(
		&pending.ValidationMessageID,
		&pending.EventMessageID,
		&pending.Slot,
		&pending.DiscordID,
		&pending.GuildID,
		&pending.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to take pending validation %d: %w", validationMessageID, err)
	}

	return &pending, nil
}
