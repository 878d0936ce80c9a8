package common

import (
	"fmt"
	"strings"
	"time"
)

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// FormatUserMention formats an int64 Discord ID as a mention
func FormatUserMention(discordID int64) string {
	return fmt.Sprintf("<@%d>", discordID)
}

// FormatChannelMention formats an int64 channel ID as a mention
func FormatChannelMention(channelID int64) string {
	return fmt.Sprintf("<#%d>", channelID)
}

// FormatProgressBar renders progress toward the next level as a text bar
func FormatProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(fraction * float64(width))
	var bar strings.Builder
	bar.WriteString(strings.Repeat("█", filled))
	bar.WriteString(strings.Repeat("░", width-filled))
	return bar.String()
}

// FormatXP formats an XP amount with thousand separators
func FormatXP(xp int64) string {
	str := fmt.Sprintf("%d", xp)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}
