package bot

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func sweepMember(id string, bot bool, roles []string, joinedAgo time.Duration, now time.Time) *discordgo.Member {
	return &discordgo.Member{
		User: &discordgo.User{
			ID:  id,
			Bot: bot,
		},
		Roles:    roles,
		JoinedAt: now.Add(-joinedAgo),
	}
}

func TestSweepable(t *testing.T) {
	now := time.Now()
	const grace = 48 * time.Hour
	const botID = "1"
	const ownerID = "2"

	tests := []struct {
		name   string
		member *discordgo.Member
		want   bool
	}{
		{
			name:   "roleless member past the grace period",
			member: sweepMember("10", false, nil, 49*time.Hour, now),
			want:   true,
		},
		{
			name:   "roleless member within the grace period",
			member: sweepMember("10", false, nil, 47*time.Hour, now),
			want:   false,
		},
		{
			name:   "member with a role past the grace period",
			member: sweepMember("10", false, []string{"555"}, 49*time.Hour, now),
			want:   false,
		},
		{
			name:   "bot account",
			member: sweepMember("10", true, nil, 49*time.Hour, now),
			want:   false,
		},
		{
			name:   "guild owner",
			member: sweepMember(ownerID, false, nil, 49*time.Hour, now),
			want:   false,
		},
		{
			name:   "the bot itself",
			member: sweepMember(botID, false, nil, 49*time.Hour, now),
			want:   false,
		},
		{
			name:   "exactly at the grace boundary",
			member: sweepMember("10", false, nil, grace, now),
			want:   false,
		},
		{
			name: "unknown join date",
			member: &discordgo.Member{
				User: &discordgo.User{ID: "10"},
			},
			want: false,
		},
		{
			name:   "nil member",
			member: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sweepable(tt.member, botID, ownerID, now, grace))
		})
	}
}
