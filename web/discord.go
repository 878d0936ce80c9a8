package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/oauth2"
)

const discordAPIBase = "https://discord.com/api/v10"

// discordUser is the subset of /users/@me this dashboard needs
type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// userGuild is one entry of /users/@me/guilds
type userGuild struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Permissions string `json:"permissions"`
}

// IsAdmin reports whether the user holds administrator permissions in the guild
func (g userGuild) IsAdmin() bool {
	permissions, err := strconv.ParseInt(g.Permissions, 10, 64)
	if err != nil {
		return false
	}
	return permissions&0x8 != 0
}

// fetchIdentity retrieves the logged-in user's identity
func fetchIdentity(ctx context.Context, ts oauth2.TokenSource) (*discordUser, error) {
	var user discordUser
	if err := apiGet(ctx, ts, "/users/@me", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch identity: %w", err)
	}
	return &user, nil
}

// fetchUserGuilds retrieves the guilds the logged-in user belongs to
func fetchUserGuilds(ctx context.Context, ts oauth2.TokenSource) ([]userGuild, error) {
	var guilds []userGuild
	if err := apiGet(ctx, ts, "/users/@me/guilds", &guilds); err != nil {
		return nil, fmt.Errorf("failed to fetch guilds: %w", err)
	}
	return guilds, nil
}

func apiGet(ctx context.Context, ts oauth2.TokenSource, path string, out interface{}) error {
	client := oauth2.NewClient(ctx, ts)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discordAPIBase+path, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("discord api returned %s for %s", resp.Status, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
