package repository

import (
	"context"
	"fmt"

	"concierge/database"
	"concierge/models"

	"github.com/jackc/pgx/v5"
)

// CasinoEventRepository implements the service.CasinoEventRepository interface
type CasinoEventRepository struct {
	q queryable
}

// NewCasinoEventRepository creates a new casino event repository
func NewCasinoEventRepository(db *database.DB) *CasinoEventRepository {
	return &CasinoEventRepository{q: db.Pool}
}

// newCasinoEventRepositoryWithTx creates a new casino event repository with a transaction
func newCasinoEventRepositoryWithTx(tx queryable) *CasinoEventRepository {
	return &CasinoEventRepository{q: tx}
}

// Create inserts a new event record
func (r *CasinoEventRepository) Create(ctx context.Context, event *models.CasinoEvent) error {
	query := `
		INSERT INTO casino_events (message_id, channel_id, guild_id, host_id, label, entry_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		event.MessageID,
		event.ChannelID,
		event.GuildID,
		event.HostID,
		event.Label,
		event.EntryCost,
	).Scan(&event.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create casino event %d: %w", event.MessageID, err)
	}

	if event.Assignments == nil {
		event.Assignments = make(map[int]int64)
	}

	return nil
}

// GetByMessageID retrieves an event with its assignments, nil when the
// event does not exist
func (r *CasinoEventRepository) GetByMessageID(ctx context.Context, messageID int64) (*models.CasinoEvent, error) {
	query := `
		SELECT message_id, channel_id, guild_id, host_id, label, entry_cost, created_at
		FROM casino_events
		WHERE message_id = $1
	`

	var event models.CasinoEvent
	err := r.q.QueryRow(ctx, query, messageID).Scan(
		&event.MessageID,
		&event.ChannelID,
		&event.GuildID,
		&event.HostID,
		&event.Label,
		&event.EntryCost,
		&event.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get casino event %d: %w", messageID, err)
	}

	event.Assignments, err = r.loadAssignments(ctx, messageID)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

func (r *CasinoEventRepository) loadAssignments(ctx context.Context, messageID int64) (map[int]int64, error) {
	rows, err := r.q.Query(ctx, `
		SELECT slot, discord_id FROM casino_assignments WHERE event_message_id = $1
	`, messageID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignments for event %d: %w", messageID, err)
	}
	defer rows.Close()

	assignments := make(map[int]int64)
	for rows.Next() {
		var slot int
		var discordID int64
		if err := rows.Scan(&slot, &discordID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments[slot] = discordID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return assignments, nil
}

// AssignSlot claims a slot for a member. Returns false when the slot is
// already taken. The primary key on (event, slot) makes double claims
// impossible regardless of interleaving.
func (r *CasinoEventRepository) AssignSlot(ctx context.Context, eventMessageID int64, slot int, discordID int64) (bool, error) {
	query := `
		INSERT INTO casino_assignments (event_message_id, slot, discord_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_message_id, slot) DO NOTHING
	`

	result, err := r.q.Exec(ctx, query, eventMessageID, slot, discordID)
	if err != nil {
		return false, fmt.Errorf("failed to assign slot %d on event %d: %w", slot, eventMessageID, err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes an event, cascading to its assignments and pending
// validations. Returns false when no such event exists.
func (r *CasinoEventRepository) Delete(ctx context.Context, messageID int64) (bool, error) {
	result, err := r.q.Exec(ctx, `DELETE FROM casino_events WHERE message_id = $1`, messageID)
	if err != nil {
		return false, fmt.Errorf("failed to delete casino event %d: %w", messageID, err)
	}

	return result.RowsAffected() > 0, nil
}

// ListByGuild returns all open events for a guild
func (r *CasinoEventRepository) ListByGuild(ctx context.Context, guildID int64) ([]*models.CasinoEvent, error) {
	query := `
		SELECT message_id, channel_id, guild_id, host_id, label, entry_cost, created_at
		FROM casino_events
		WHERE guild_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list casino events for guild %d: %w", guildID, err)
	}
	defer rows.Close()

	var events []*models.CasinoEvent
	for rows.Next() {
		var event models.CasinoEvent
		err := rows.Scan(
			&event.MessageID,
			&event.ChannelID,
			&event.GuildID,
			&event.HostID,
			&event.Label,
			&event.EntryCost,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan casino event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate casino events: %w", err)
	}

	for _, event := range events {
		event.Assignments, err = r.loadAssignments(ctx, event.MessageID)
		if err != nil {
			return nil, err
		}
	}

	return events, nil
}
