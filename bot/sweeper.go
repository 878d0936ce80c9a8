package bot

import (
	"context"
	"time"

	"concierge/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Sweepable reports whether a member should be kicked by the idle sweep:
// a non-bot member, neither the guild owner nor the bot itself, who still
// holds only the @everyone role past the grace period after joining.
func Sweepable(member *discordgo.Member, botUserID, ownerID string, now time.Time, grace time.Duration) bool {
	if member == nil || member.User == nil {
		return false
	}
	if member.User.Bot {
		return false
	}
	if member.User.ID == ownerID || member.User.ID == botUserID {
		return false
	}
	// Discord omits @everyone from the role list, so any entry means the
	// member has been given something
	if len(member.Roles) > 0 {
		return false
	}
	if member.JoinedAt.IsZero() {
		return false
	}
	return now.Sub(member.JoinedAt) > grace
}

// startSweeper runs the idle-member sweep on a fixed interval until the
// context is cancelled
func (b *Bot) startSweeper(ctx context.Context) {
	ticker := time.NewTicker(b.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.sweepAllGuilds(ctx)
		}
	}
}

func (b *Bot) sweepAllGuilds(ctx context.Context) {
	for _, guild := range b.session.State.Guilds {
		b.sweepGuild(ctx, guild.ID)
	}
}

// sweepGuild kicks every sweepable member of one guild. Per-member failures
// are logged and never abort the sweep.
func (b *Bot) sweepGuild(ctx context.Context, guildID string) {
	config, err := b.configService.GetOrCreate(ctx, common.ParseID(guildID))
	if err != nil {
		log.Errorf("Sweep: failed to load config for guild %s: %v", guildID, err)
		return
	}
	if !config.SweeperActive {
		return
	}
	if !b.canKick(guildID) {
		log.Warnf("Sweep: missing kick permission in guild %s, skipping", guildID)
		return
	}

	ownerID := ""
	if guild, err := b.session.State.Guild(guildID); err == nil {
		ownerID = guild.OwnerID
	}

	now := time.Now()
	swept := 0
	after := ""
	for {
		members, err := b.session.GuildMembers(guildID, after, 1000)
		if err != nil {
			log.Errorf("Sweep: failed to list members of guild %s: %v", guildID, err)
			return
		}
		if len(members) == 0 {
			break
		}

		for _, member := range members {
			if !Sweepable(member, b.session.State.User.ID, ownerID, now, b.config.SweepGrace) {
				continue
			}
			err := b.session.GuildMemberDeleteWithReason(guildID, member.User.ID, "Idle member sweep: no role assigned within the grace period")
			if err != nil {
				log.Errorf("Sweep: failed to kick member %s from guild %s: %v", member.User.ID, guildID, err)
				continue
			}
			swept++
		}

		after = members[len(members)-1].User.ID
		if len(members) < 1000 {
			break
		}
	}

	if swept > 0 {
		log.WithFields(log.Fields{
			"guild": guildID,
			"swept": swept,
		}).Info("Idle member sweep complete")
	}
}

// canKick reports whether the bot holds kick permissions in a guild
func (b *Bot) canKick(guildID string) bool {
	guild, err := b.session.State.Guild(guildID)
	if err != nil {
		log.Errorf("Sweep: failed to get guild %s from state: %v", guildID, err)
		return false
	}
	if guild.OwnerID == b.session.State.User.ID {
		return true
	}

	member, err := b.session.State.Member(guildID, b.session.State.User.ID)
	if err != nil {
		member, err = b.session.GuildMember(guildID, b.session.State.User.ID)
		if err != nil {
			log.Errorf("Sweep: failed to get own member record in guild %s: %v", guildID, err)
			return false
		}
	}

	var permissions int64
	for _, roleID := range member.Roles {
		role, err := b.session.State.Role(guildID, roleID)
		if err != nil {
			continue
		}
		permissions |= role.Permissions
	}

	return permissions&(discordgo.PermissionAdministrator|discordgo.PermissionKickMembers) != 0
}
