package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"concierge/config"
	"concierge/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// discordEndpoint is the OAuth2 endpoint for Discord
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

// GuildDirectory answers questions about the guilds the bot is in.
// The bot session implements it, the dashboard only reads from it.
type GuildDirectory interface {
	HasGuild(guildID string) bool
	GuildName(guildID string) string
	MemberDisplayName(guildID string, userID int64) string
}

// Server serves the read-only web dashboard
type Server struct {
	httpServer      *http.Server
	oauth           *oauth2.Config
	sessions        *sessionStore
	templates       *template.Template
	configService   service.GuildConfigService
	levelingService service.LevelingService
	directory       GuildDirectory
	sessionSecret   string
}

// NewServer creates the dashboard server. It does not start listening.
func NewServer(
	configService service.GuildConfigService,
	levelingService service.LevelingService,
	directory GuildDirectory,
) (*Server, error) {
	cfg := config.Get()

	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	server := &Server{
		oauth: &oauth2.Config{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"identify", "guilds"},
			Endpoint:     discordEndpoint,
		},
		sessions:        newSessionStore(),
		templates:       templates,
		configService:   configService,
		levelingService: levelingService,
		directory:       directory,
		sessionSecret:   cfg.SessionSecret,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", server.handleIndex)
	mux.HandleFunc("/login", server.handleLogin)
	mux.HandleFunc("/callback", server.handleCallback)
	mux.HandleFunc("/logout", server.handleLogout)
	mux.HandleFunc("/guild/", server.handleGuild)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	server.httpServer = &http.Server{
		Addr:         cfg.WebAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server, nil
}

// Start begins serving HTTP. It blocks until the server stops.
func (s *Server) Start() error {
	log.WithField("addr", s.httpServer.Addr).Info("Starting web dashboard")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Shutting down web dashboard")
	return s.httpServer.Shutdown(ctx)
}

// currentSession resolves the session for a request, or nil when logged out
func (s *Server) currentSession(r *http.Request) *webSession {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	return s.sessions.Get(cookie.Value)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    signState(s.sessionSecret, state),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil {
		http.Error(w, "missing login state", http.StatusBadRequest)
		return
	}
	state, ok := verifyState(s.sessionSecret, cookie.Value)
	if !ok || state != r.URL.Query().Get("state") {
		http.Error(w, "login state mismatch", http.StatusBadRequest)
		return
	}

	token, err := s.oauth.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.WithError(err).Warn("OAuth2 code exchange failed")
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	tokenSource := s.oauth.TokenSource(r.Context(), token)
	user, err := fetchIdentity(r.Context(), tokenSource)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch identity after login")
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}
	guilds, err := fetchUserGuilds(r.Context(), tokenSource)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch guild list after login")
		http.Error(w, "login failed", http.StatusBadGateway)
		return
	}

	sessionID := s.sessions.Create(*user, guilds, token)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
	})
	// Clear the state cookie, it is single use
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

	log.WithFields(log.Fields{
		"userID":   user.ID,
		"username": user.Username,
	}).Info("Dashboard login")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

// guildListEntry is one guild on the index page
type guildListEntry struct {
	ID   string
	Name string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	session := s.currentSession(r)
	if session == nil {
		s.render(w, "login.html", nil)
		return
	}

	guilds := s.manageableGuilds(session)
	s.render(w, "index.html", map[string]interface{}{
		"Username": session.User.Username,
		"Guilds":   guilds,
	})
}

// manageableGuilds returns the guilds the user administers and the bot is in
func (s *Server) manageableGuilds(session *webSession) []guildListEntry {
	var entries []guildListEntry
	for _, guild := range session.Guilds {
		if !guild.IsAdmin() || !s.directory.HasGuild(guild.ID) {
			continue
		}
		entries = append(entries, guildListEntry{ID: guild.ID, Name: guild.Name})
	}
	return entries
}

// leaderboardRow is one ranked member on the guild page
type leaderboardRow struct {
	Rank  int
	Name  string
	Level int
	XP    int64
}

func (s *Server) handleGuild(w http.ResponseWriter, r *http.Request) {
	session := s.currentSession(r)
	if session == nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	guildIDStr := strings.TrimPrefix(r.URL.Path, "/guild/")
	guildID, err := strconv.ParseInt(guildIDStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// The user must administer this guild themselves
	var authorized bool
	for _, guild := range session.Guilds {
		if guild.ID == guildIDStr && guild.IsAdmin() {
			authorized = true
			break
		}
	}
	if !authorized || !s.directory.HasGuild(guildIDStr) {
		http.Error(w, "you do not manage this server", http.StatusForbidden)
		return
	}

	guildConfig, err := s.configService.GetOrCreate(r.Context(), guildID)
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Error("Failed to load guild config for dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	progress, err := s.levelingService.Leaderboard(r.Context(), guildID, 10)
	if err != nil {
		log.WithError(err).WithField("guildID", guildID).Error("Failed to load leaderboard for dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := make([]leaderboardRow, 0, len(progress))
	for i, p := range progress {
		rows = append(rows, leaderboardRow{
			Rank:  i + 1,
			Name:  s.directory.MemberDisplayName(guildIDStr, p.DiscordID),
			Level: p.Level,
			XP:    p.TotalXP,
		})
	}

	s.render(w, "guild.html", map[string]interface{}{
		"GuildName":         s.directory.GuildName(guildIDStr),
		"Config":            guildConfig,
		"InviteLink":        stringOrDash(guildConfig.InviteLink),
		"LevelUpChannel":    channelOrDash(guildConfig.LevelUpChannelID),
		"ExitChannel":       channelOrDash(guildConfig.ExitChannelID),
		"VoiceCreator":      channelOrDash(guildConfig.VoiceCreatorChannelID),
		"ValidationChannel": channelOrDash(guildConfig.CasinoValidationChannelID),
		"Leaderboard":       rows,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).WithField("template", name).Error("Failed to render template")
	}
}

func stringOrDash(value *string) string {
	if value == nil {
		return "not set"
	}
	return *value
}

func channelOrDash(channelID *int64) string {
	if channelID == nil {
		return "not set"
	}
	return strconv.FormatInt(*channelID, 10)
}
