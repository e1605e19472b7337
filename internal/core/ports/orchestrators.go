package ports

import "context"

// TokenSource yields the current session token for outbound requests; empty
// when unauthenticated. The implementation must read atomically with
// respect to login/logout.
type TokenSource func() string

// TokenStore is the durable home of the session token, the only client
// state that survives a restart. The stored value is an opaque string.
type TokenStore interface {
	Token() string
	Set(token string) error
	Clear() error
}

// DashboardRefresher re-fetches the dashboard summary and recent datasets.
type DashboardRefresher interface {
	Refresh(ctx context.Context) error
}

// RefreshScheduler requests a dashboard refresh without blocking the
// caller. Bursts of requests may be coalesced.
type RefreshScheduler interface {
	Schedule()
}
