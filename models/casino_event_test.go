package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSlot(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidSlot(0))
	assert.True(t, ValidSlot(1))
	assert.True(t, ValidSlot(100))
	assert.False(t, ValidSlot(101))
	assert.False(t, ValidSlot(-5))
}

func TestDisplayBands_CoverEverySlotOnce(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	for _, band := range DisplayBands {
		for slot := band[0]; slot <= band[1]; slot++ {
			assert.False(t, seen[slot], "slot %d appears in two bands", slot)
			seen[slot] = true
		}
	}
	assert.Len(t, seen, SlotCount)
	assert.True(t, seen[1])
	assert.True(t, seen[SlotCount])
}

func TestCasinoEvent_SlotTakenAndIsFull(t *testing.T) {
	t.Parallel()

	event := &CasinoEvent{Assignments: map[int]int64{7: 111}}
	assert.True(t, event.SlotTaken(7))
	assert.False(t, event.SlotTaken(8))
	assert.False(t, event.IsFull())

	for slot := 1; slot <= SlotCount; slot++ {
		event.Assignments[slot] = int64(slot)
	}
	assert.True(t, event.IsFull())
}
