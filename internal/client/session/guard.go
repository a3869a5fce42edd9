package session

// Action tells a gated surface what to do with the current session state.
type Action int

const (
	// ActionWait means the session is still resolving; render nothing gated.
	ActionWait Action = iota
	// ActionAllow means the gated content may be shown.
	ActionAllow
	// ActionRedirect means the caller must navigate to Decision.RedirectTo.
	ActionRedirect
)

// DefaultFallbackRoute is where unauthenticated users land when they hit a
// protected surface.
const DefaultFallbackRoute = "/marketplace"

// Decision is the outcome of gating a snapshot.
type Decision struct {
	Action     Action
	RedirectTo string
	// RequestLogin asks the caller to raise the login prompt after
	// redirecting, so the user can resume where they were heading.
	RequestLogin bool
}

// Authorize gates a protected surface with the default fallback route.
func Authorize(snap Snapshot) Decision {
	return AuthorizeTo(snap, DefaultFallbackRoute)
}

// AuthorizeTo is a pure predicate over the snapshot. While the session state
// is Unknown it always waits, so protected content is never flashed to a
// visitor who turns out to be unauthenticated.
func AuthorizeTo(snap Snapshot, fallback string) Decision {
	switch snap.State {
	case StateAuthenticated:
		return Decision{Action: ActionAllow}
	case StateUnauthenticated:
		return Decision{Action: ActionRedirect, RedirectTo: fallback, RequestLogin: true}
	default:
		return Decision{Action: ActionWait}
	}
}
