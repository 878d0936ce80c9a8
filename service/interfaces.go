package service

import (
	"context"

	"concierge/events"
	"concierge/models"
)

// GuildConfigRepository defines the interface for guild configuration data access
type GuildConfigRepository interface {
	// GetOrCreate retrieves a guild's configuration, inserting the default
	// record first if none exists
	GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// Update persists the scalar fields of a configuration record
	Update(ctx context.Context, config *models.GuildConfig) error

	// SetLevelRole sets or replaces the role granted at a level
	SetLevelRole(ctx context.Context, guildID int64, level int, roleID int64) error

	// RemoveLevelRole clears the role granted at a level
	RemoveLevelRole(ctx context.Context, guildID int64, level int) error

	// Delete removes a guild's configuration and its level roles
	Delete(ctx context.Context, guildID int64) error
}

// ProgressRepository defines the interface for member progression data access
type ProgressRepository interface {
	// Get retrieves a member's progress, nil when the member has none
	Get(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error)

	// GetOrCreateForUpdate retrieves a member's progress with a row lock,
	// inserting a zeroed record first if none exists. Must be called
	// inside a transaction.
	GetOrCreateForUpdate(ctx context.Context, guildID, discordID int64) (*models.MemberProgress, error)

	// Update persists a member's XP and level
	Update(ctx context.Context, progress *models.MemberProgress) error

	// Top returns the highest-XP members of a guild
	Top(ctx context.Context, guildID int64, limit int) ([]*models.MemberProgress, error)

	// DeleteByGuild removes all progress records for a guild
	DeleteByGuild(ctx context.Context, guildID int64) error
}

// CasinoEventRepository defines the interface for casino event data access
type CasinoEventRepository interface {
	// Create inserts a new event record
	Create(ctx context.Context, event *models.CasinoEvent) error

	// GetByMessageID retrieves an event with its assignments, nil when
	// the event does not exist (or has been closed)
	GetByMessageID(ctx context.Context, messageID int64) (*models.CasinoEvent, error)

	// AssignSlot claims a slot for a member. Returns false when the slot
	// is already taken.
	AssignSlot(ctx context.Context, eventMessageID int64, slot int, discordID int64) (bool, error)

	// Delete removes an event, cascading to its assignments and pending
	// validations. Returns false when no such event exists.
	Delete(ctx context.Context, messageID int64) (bool, error)

	// ListByGuild returns all open events for a guild
	ListByGuild(ctx context.Context, guildID int64) ([]*models.CasinoEvent, error)
}

// PendingValidationRepository defines the interface for approval-request data access
type PendingValidationRepository interface {
	// Create inserts a new pending validation
	Create(ctx context.Context, pending *models.PendingValidation) error

	// Take removes and returns a pending validation, nil when it has
	// already been resolved (or died with its event)
	Take(ctx context.Context, validationMessageID int64) (*models.PendingValidation, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// GuildConfigService defines the interface for guild configuration operations
type GuildConfigService interface {
	// GetOrCreate retrieves a guild's configuration, creating defaults on first access
	GetOrCreate(ctx context.Context, guildID int64) (*models.GuildConfig, error)

	// SetLevelUpChannel sets (or clears, with nil) the level-up announcement channel
	SetLevelUpChannel(ctx context.Context, guildID int64, channelID *int64) error

	// SetExitChannel sets (or clears) the member-leave announcement channel
	SetExitChannel(ctx context.Context, guildID int64, channelID *int64) error

	// SetVoiceCreatorChannel sets (or clears) the temp-voice creator channel
	SetVoiceCreatorChannel(ctx context.Context, guildID int64, channelID *int64) error

	// SetCasinoValidationChannel sets (or clears) the staff validation channel
	SetCasinoValidationChannel(ctx context.Context, guildID int64, channelID *int64) error

	// SetInviteLink validates and stores the guild's invite link
	SetInviteLink(ctx context.Context, guildID int64, link string) error

	// SetLevelRole sets the role granted when a member reaches a level
	SetLevelRole(ctx context.Context, guildID int64, level int, roleID int64) error

	// RemoveLevelRole clears the role granted at a level
	RemoveLevelRole(ctx context.Context, guildID int64, level int) error

	// SetLevelingActive toggles the leveling system
	SetLevelingActive(ctx context.Context, guildID int64, active bool) error

	// SetSweeperActive toggles the idle-member sweeper
	SetSweeperActive(ctx context.Context, guildID int64, active bool) error

	// SetReplaceLevelRoles toggles revoking the previous level role on level-up
	SetReplaceLevelRoles(ctx context.Context, guildID int64, replace bool) error

	// RemoveGuild deletes configuration and progression for a guild the bot left
	RemoveGuild(ctx context.Context, guildID int64) error
}

// LevelingService defines the interface for progression operations
type LevelingService interface {
	// AwardMessageXP grants XP for one qualifying message and publishes a
	// LevelUpEvent when a threshold is crossed. Returns the updated
	// progress, or nil when leveling is disabled for the guild.
	AwardMessageXP(ctx context.Context, guildID, userID, fallbackChannelID int64) (*models.MemberProgress, error)

	// GetProgress returns a member's progress, zeroed when they have none
	GetProgress(ctx context.Context, guildID, userID int64) (*models.MemberProgress, error)

	// Leaderboard returns the top members of a guild by XP
	Leaderboard(ctx context.Context, guildID int64, limit int) ([]*models.MemberProgress, error)
}

// ClaimResult describes the outcome of a slot claim
type ClaimResult struct {
	// RequiresApproval is set when the guild has a validation channel;
	// the claim is parked until staff decide
	RequiresApproval bool

	// Event is the refreshed event including assignments (set when the
	// claim was assigned directly)
	Event *models.CasinoEvent

	Slot int
}

// PendingResolution describes the outcome of a staff decision
type PendingResolution struct {
	Pending  *models.PendingValidation
	Approved bool

	// Event is the refreshed event after an approval was applied
	Event *models.CasinoEvent
}

// CasinoService defines the interface for casino event operations
type CasinoService interface {
	// OpenEvent records a newly announced casino event
	OpenEvent(ctx context.Context, event *models.CasinoEvent) error

	// GetEvent returns an event with its assignments, ErrEventClosed when missing
	GetEvent(ctx context.Context, messageID int64) (*models.CasinoEvent, error)

	// ClaimSlot validates and applies a participant's slot claim. The
	// claim is assigned directly unless the guild has a validation
	// channel, in which case the caller must post the approval request
	// and follow up with RecordPending.
	ClaimSlot(ctx context.Context, eventMessageID, claimantID int64, slot int) (*ClaimResult, error)

	// RecordPending stores the approval request posted to the validation channel
	RecordPending(ctx context.Context, pending *models.PendingValidation) error

	// ResolvePending applies a staff decision. Idempotent: a second
	// decision on the same request returns ErrAlreadyProcessed.
	ResolvePending(ctx context.Context, validationMessageID int64, approve bool) (*PendingResolution, error)

	// ListEvents returns the open events for a guild
	ListEvents(ctx context.Context, guildID int64) ([]*models.CasinoEvent, error)

	// CloseEvent deletes an event and returns its final state for the
	// closing announcement. Outstanding pending validations die with it.
	CloseEvent(ctx context.Context, messageID int64) (*models.CasinoEvent, error)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	GuildConfigRepository() GuildConfigRepository
	ProgressRepository() ProgressRepository
	CasinoEventRepository() CasinoEventRepository
	PendingValidationRepository() PendingValidationRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh, unstarted UnitOfWork
	Create() UnitOfWork
}
