package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestSessionStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	store := newSessionStore()
	user := discordUser{ID: "123", Username: "tester"}
	token := &oauth2.Token{AccessToken: "access"}

	id := store.Create(user, []userGuild{{ID: "456", Name: "Test Guild"}}, token)
	require.NotEmpty(t, id)

	session := store.Get(id)
	require.NotNil(t, session)
	assert.Equal(t, "tester", session.User.Username)
	assert.Len(t, session.Guilds, 1)
}

func TestSessionStore_ExpiredSessionIsDropped(t *testing.T) {
	t.Parallel()

	store := newSessionStore()
	id := store.Create(discordUser{ID: "123"}, nil, &oauth2.Token{})

	store.mu.Lock()
	store.sessions[id].ExpiresAt = time.Now().Add(-time.Minute)
	store.mu.Unlock()

	assert.Nil(t, store.Get(id))
	assert.Nil(t, store.Get(id), "expired session should stay gone")
}

func TestSessionStore_Delete(t *testing.T) {
	t.Parallel()

	store := newSessionStore()
	id := store.Create(discordUser{ID: "123"}, nil, &oauth2.Token{})

	store.Delete(id)
	assert.Nil(t, store.Get(id))
}

func TestSignState_RoundTrip(t *testing.T) {
	t.Parallel()

	signed := signState("secret", "some-state")

	state, ok := verifyState("secret", signed)
	assert.True(t, ok)
	assert.Equal(t, "some-state", state)
}

func TestVerifyState_RejectsTampering(t *testing.T) {
	t.Parallel()

	signed := signState("secret", "some-state")

	_, ok := verifyState("secret", "other-state"+signed[len("some-state"):])
	assert.False(t, ok, "altered state must fail verification")

	_, ok = verifyState("wrong-secret", signed)
	assert.False(t, ok, "wrong secret must fail verification")

	_, ok = verifyState("secret", "no-signature")
	assert.False(t, ok)
}

func TestUserGuild_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		permissions string
		want        bool
	}{
		{name: "administrator bit set", permissions: "8", want: true},
		{name: "administrator among other bits", permissions: "2147483656", want: true},
		{name: "no administrator bit", permissions: "2048", want: false},
		{name: "unparseable permissions", permissions: "not-a-number", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guild := userGuild{Permissions: tt.permissions}
			assert.Equal(t, tt.want, guild.IsAdmin())
		})
	}
}
