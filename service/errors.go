package service

import "errors"

// Sentinel errors the presentation layer maps to user-facing replies.
var (
	// ErrEventClosed is returned when a casino event does not exist,
	// either because the ID is wrong or the host already closed it.
	ErrEventClosed = errors.New("casino event does not exist or has been closed")

	// ErrInvalidSlot is returned for slot numbers outside [1, 100].
	ErrInvalidSlot = errors.New("slot number out of range")

	// ErrSlotTaken is returned when the requested slot already has a claimant.
	ErrSlotTaken = errors.New("slot already taken")

	// ErrAlreadyProcessed is returned when a staff decision targets a
	// validation request that was already resolved or whose event closed.
	ErrAlreadyProcessed = errors.New("validation request already processed")

	// ErrInvalidInviteLink is returned for invite links that do not look
	// like a server invite.
	ErrInvalidInviteLink = errors.New("invalid invite link")

	// ErrInvalidLevel is returned for level numbers outside [1, MaxLevel].
	ErrInvalidLevel = errors.New("level out of range")
)
