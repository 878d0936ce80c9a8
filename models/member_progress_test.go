package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		name         string
		totalXP      int64
		wantLevel    int
		wantXPToNext int64
	}{
		{"zero xp", 0, 0, 15},
		{"just below level 1", 14, 0, 1},
		{"exactly level 1", 15, 1, 85},
		{"between 1 and 2", 50, 1, 50},
		{"just below level 2", 99, 1, 1},
		{"exactly level 2", 100, 2, 200},
		{"exactly level 3", 300, 3, 200},
		{"exactly level 4", 500, 4, 1000},
		{"just below max", 1499, 4, 1},
		{"exactly max", 1500, 5, 0},
		{"beyond max", 99999, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, xpToNext := LevelForXP(tt.totalXP)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantXPToNext, xpToNext)
		})
	}
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev, _ := LevelForXP(0)
	for xp := int64(1); xp <= 2000; xp++ {
		level, _ := LevelForXP(xp)
		assert.GreaterOrEqual(t, level, prev, "level regressed at xp=%d", xp)
		prev = level
	}
}

func TestThresholdForLevel(t *testing.T) {
	assert.Equal(t, int64(0), ThresholdForLevel(0))
	assert.Equal(t, int64(15), ThresholdForLevel(1))
	assert.Equal(t, int64(100), ThresholdForLevel(2))
	assert.Equal(t, int64(300), ThresholdForLevel(3))
	assert.Equal(t, int64(500), ThresholdForLevel(4))
	assert.Equal(t, int64(1500), ThresholdForLevel(5))
	assert.Equal(t, int64(0), ThresholdForLevel(6))
}

func TestProgressWithinLevel(t *testing.T) {
	p := &MemberProgress{TotalXP: 15, Level: 1}
	// 15 of the way from threshold 15 to threshold 100 is 0
	assert.InDelta(t, 0.0, p.ProgressWithinLevel(), 0.001)

	p = &MemberProgress{TotalXP: 57, Level: 1}
	assert.InDelta(t, 42.0/85.0, p.ProgressWithinLevel(), 0.001)

	p = &MemberProgress{TotalXP: 1500, Level: 5}
	assert.Equal(t, 1.0, p.ProgressWithinLevel())
}

func TestValidInviteLink(t *testing.T) {
	assert.True(t, ValidInviteLink("https://discord.gg/abc"))
	assert.True(t, ValidInviteLink("discord.gg/abc"))
	assert.False(t, ValidInviteLink("ftp://example.com"))
	assert.False(t, ValidInviteLink("join my server"))
}
