package models

import (
	"time"
)

// SlotCount is the fixed number of reservable slots per casino event
const SlotCount = 100

// DisplayBands groups the slots into three contiguous bands for the
// announcement embed. Display only, no bearing on assignment rules.
var DisplayBands = [3][2]int{{1, 34}, {35, 67}, {68, 100}}

// CasinoEvent represents one hosted casino night, keyed by the
// announcement message
type CasinoEvent struct {
	MessageID int64     `db:"message_id"`
	ChannelID int64     `db:"channel_id"`
	GuildID   int64     `db:"guild_id"`
	HostID    int64     `db:"host_id"`
	Label     string    `db:"label"`
	EntryCost int64     `db:"entry_cost"`
	CreatedAt time.Time `db:"created_at"`

	// Assignments maps slot number to the claimant's Discord ID
	Assignments map[int]int64
}

// ValidSlot reports whether n is a claimable slot number
func ValidSlot(n int) bool {
	return n >= 1 && n <= SlotCount
}

// SlotTaken reports whether a slot already has a claimant
func (e *CasinoEvent) SlotTaken(slot int) bool {
	_, taken := e.Assignments[slot]
	return taken
}

// IsFull reports whether every slot has been claimed
func (e *CasinoEvent) IsFull() bool {
	return len(e.Assignments) >= SlotCount
}

// PendingValidation is one outstanding staff-approval request, keyed by
// the message posted in the validation channel
type PendingValidation struct {
	ValidationMessageID int64     `db:"validation_message_id"`
	EventMessageID      int64     `db:"event_message_id"`
	Slot                int       `db:"slot"`
	DiscordID           int64     `db:"discord_id"`
	GuildID             int64     `db:"guild_id"`
	CreatedAt           time.Time `db:"created_at"`
}
