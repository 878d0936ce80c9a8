package tempvoice

import (
	"context"
	"fmt"
	"sync"

	"concierge/bot/common"
	"concierge/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Feature creates an ephemeral voice channel when a member joins the
// configured creator channel and deletes it once it empties. The tracking
// table lives only in memory; channels orphaned by a restart stay behind.
type Feature struct {
	session       *discordgo.Session
	configService service.GuildConfigService

	mu      sync.Mutex
	tracked map[string]string // channel ID -> owner user ID
}

// NewFeature creates a new tempvoice feature instance
func NewFeature(session *discordgo.Session, configService service.GuildConfigService) *Feature {
	return &Feature{
		session:       session,
		configService: configService,
		tracked:       make(map[string]string),
	}
}

// HandleVoiceStateUpdate reacts to members moving between voice channels
func (f *Feature) HandleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.UserID == s.State.User.ID {
		return
	}

	guildID := common.ParseID(v.GuildID)
	config, err := f.configService.GetOrCreate(context.Background(), guildID)
	if err != nil {
		log.Errorf("Failed to load config for voice update in guild %d: %v", guildID, err)
		return
	}

	if config.VoiceCreatorChannelID != nil &&
		v.ChannelID == fmt.Sprintf("%d", *config.VoiceCreatorChannelID) {
		f.createMemberChannel(s, v)
	}

	// The member may have vacated a tracked channel, whether they joined
	// the creator, another channel, or disconnected entirely
	if v.BeforeUpdate != nil && v.BeforeUpdate.ChannelID != "" {
		f.reapIfEmpty(s, v.GuildID, v.BeforeUpdate.ChannelID)
	}
}

// createMemberChannel creates and tracks a personal voice channel
func (f *Feature) createMemberChannel(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	creator, err := s.Channel(v.ChannelID)
	if err != nil {
		log.Errorf("Failed to fetch creator channel %s: %v", v.ChannelID, err)
		return
	}

	name := common.GetDisplayName(s, v.GuildID, v.UserID)
	channel, err := s.GuildChannelCreateComplex(v.GuildID, discordgo.GuildChannelCreateData{
		Name:     name,
		Type:     discordgo.ChannelTypeGuildVoice,
		ParentID: creator.ParentID,
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{
				ID:    v.UserID,
				Type:  discordgo.PermissionOverwriteTypeMember,
				Allow: discordgo.PermissionManageChannels,
			},
		},
	})
	if err != nil {
		// Likely a privilege problem; drop the member back out of the
		// creator channel so they are not stuck there
		log.Errorf("Failed to create voice channel for user %s in guild %s: %v", v.UserID, v.GuildID, err)
		if dcErr := s.GuildMemberMove(v.GuildID, v.UserID, nil); dcErr != nil {
			log.Errorf("Failed to disconnect user %s after channel creation failure: %v", v.UserID, dcErr)
		}
		return
	}

	f.mu.Lock()
	f.tracked[channel.ID] = v.UserID
	f.mu.Unlock()

	if err := s.GuildMemberMove(v.GuildID, v.UserID, &channel.ID); err != nil {
		log.Errorf("Failed to move user %s into channel %s: %v", v.UserID, channel.ID, err)
	}
}

// reapIfEmpty deletes a tracked channel once nobody is left in it
func (f *Feature) reapIfEmpty(s *discordgo.Session, guildID, channelID string) {
	f.mu.Lock()
	_, ours := f.tracked[channelID]
	f.mu.Unlock()
	if !ours {
		return
	}

	guild, err := s.State.Guild(guildID)
	if err != nil {
		log.Errorf("Failed to get guild %s from state: %v", guildID, err)
		return
	}

	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			return
		}
	}

	if _, err := s.ChannelDelete(channelID); err != nil {
		// Keep the mapping; the next occupancy change retries the delete
		log.Errorf("Failed to delete empty voice channel %s: %v", channelID, err)
		return
	}

	f.mu.Lock()
	delete(f.tracked, channelID)
	f.mu.Unlock()
}

// TrackedChannels returns a snapshot of channel IDs currently tracked
func (f *Feature) TrackedChannels() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.tracked))
	for id := range f.tracked {
		ids = append(ids, id)
	}
	return ids
}

// Cleanup deletes every tracked channel. Called on graceful shutdown so
// personal channels do not outlive the process that tracks them.
func (f *Feature) Cleanup(s *discordgo.Session) {
	for _, id := range f.TrackedChannels() {
		if _, err := s.ChannelDelete(id); err != nil {
			log.Errorf("Failed to delete voice channel %s on shutdown: %v", id, err)
			continue
		}
		f.mu.Lock()
		delete(f.tracked, id)
		f.mu.Unlock()
	}
}
