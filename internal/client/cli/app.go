package cli

import (
	"bufio"
	"context"
	"os"
	"time"

	"github.com/gmubooktrade/booktrade/internal/client/api"
	"github.com/gmubooktrade/booktrade/internal/client/config"
	"github.com/gmubooktrade/booktrade/internal/client/services"
	"github.com/gmubooktrade/booktrade/internal/client/session"
	"github.com/gmubooktrade/booktrade/internal/client/store"
	"github.com/gmubooktrade/booktrade/internal/client/verify"
	"github.com/gmubooktrade/booktrade/internal/logging"
)

// Mode reflects backend reachability. Listings keep working offline from the
// local cache; everything that needs the backend reports an error instead.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	api      api.Client
	tokens   *store.TokenStore
	session  *session.Manager
	verify   *verify.Flow
	listings *services.ListingService
	log      logging.Logger
	Mode     Mode
	reader   *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := store.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "initializing database", "path", cfg.DatabasePath, "error", err)
		return nil, err
	}

	tokens := store.NewTokenStore(repos.Metadata)
	apiClient := api.NewHTTPClient(cfg.ServerEndpointAddr, cfg.RequestTimeout, tokens, log)

	return &App{
		config:   cfg,
		api:      apiClient,
		tokens:   tokens,
		session:  session.NewManager(apiClient, tokens, log),
		verify:   verify.NewFlow(apiClient, tokens, log),
		listings: services.NewListingService(apiClient, repos.Listings, log),
		log:      log,
		Mode:     ModeOnline,
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	printlnFn("Welcome to BookTrade CLI (type 'help' for commands)")

	a.session.Initialize(ctx)
	if snap := a.session.Snapshot(); snap.IsAuthenticated() {
		printlnFn("Logged in as " + snap.User.Email)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	s := ""
	if snap := a.session.Snapshot(); snap.IsAuthenticated() {
		s = snap.User.Email + " "
	}
	return "(" + s + string(a.Mode) + ")"
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

// requireAuth gates a protected command on the session state. While the
// session is still resolving nothing is allowed; an unauthenticated user is
// pointed at the marketplace and asked to log in.
func (a *App) requireAuth() bool {
	d := session.Authorize(a.session.Snapshot())
	switch d.Action {
	case session.ActionAllow:
		return true
	case session.ActionWait:
		printlnFn("Still checking your session, try again in a moment.")
		return false
	default:
		printlnFn("You need to be logged in for that. Taking you back to " + d.RedirectTo + ".")
		if d.RequestLogin {
			a.session.RequestLogin()
			printlnFn("Use 'login' to sign in.")
		}
		return false
	}
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn("Switched to " + string(mode) + " mode")
	}
}

// StartOnlineStatusWatcher probes the backend health endpoint on a fixed
// interval and flips the mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
