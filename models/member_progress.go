package models

import (
	"time"
)

// MaxLevel is the highest attainable level
const MaxLevel = 5

// levelThresholds maps level n to the total XP required to reach it,
// indexed at n-1. The table is strictly ascending.
var levelThresholds = [MaxLevel]int64{15, 100, 300, 500, 1500}

// LevelForXP returns the highest level whose threshold is at or below
// totalXP (0 if below the first threshold), and the XP still needed to
// reach the next level (0 at max level).
func LevelForXP(totalXP int64) (level int, xpToNext int64) {
	for i, threshold := range levelThresholds {
		if totalXP < threshold {
			return i, threshold - totalXP
		}
	}
	return MaxLevel, 0
}

// ThresholdForLevel returns the total XP required to reach a level.
// Level 0 (and anything out of range below it) requires nothing.
func ThresholdForLevel(level int) int64 {
	if level < 1 || level > MaxLevel {
		return 0
	}
	return levelThresholds[level-1]
}

// MemberProgress tracks experience and level for one member of one guild
type MemberProgress struct {
	GuildID   int64     `db:"guild_id"`
	DiscordID int64     `db:"discord_id"`
	TotalXP   int64     `db:"total_xp"`
	Level     int       `db:"level"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// AtMaxLevel reports whether the member can no longer earn XP
func (p *MemberProgress) AtMaxLevel() bool {
	return p.Level >= MaxLevel
}

// ProgressWithinLevel returns the fraction [0,1] of the way from the
// current level's threshold to the next one. Returns 1 at max level.
func (p *MemberProgress) ProgressWithinLevel() float64 {
	if p.AtMaxLevel() {
		return 1
	}
	level, _ := LevelForXP(p.TotalXP)
	prev := ThresholdForLevel(level)
	next := ThresholdForLevel(level + 1)
	return float64(p.TotalXP-prev) / float64(next-prev)
}
