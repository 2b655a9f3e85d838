package client

import (
	"context"
	"sync"
	"time"

	"github.com/shopware/sw-sync-cli/pkg/errs"
)

// Token is a short-lived bearer token plus expiry (spec.md §3
// "Credentials & tokens"). Owned exclusively by Authenticator.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Expired reports whether the token is no longer usable as of now.
func (t Token) Expired(now time.Time) bool {
	return t.AccessToken == "" || !now.Before(t.ExpiresAt)
}

// TokenSource performs the actual credential exchange.
// credentials.TokenSource is the production implementation; tests
// supply fakes.
type TokenSource interface {
	Authenticate(ctx context.Context) (Token, error)
}

type authState int

const (
	stateUnauthenticated authState = iota
	stateAuthenticating
	stateReady
	stateRefreshing
	stateFailed
)

// refreshFuture lets concurrent callers that observe a 401 while a
// refresh is already in flight wait on the same result instead of each
// starting their own exchange (spec.md §4.D: "concurrent requests
// observing 401 coalesce onto the same refresh future"). The pack
// carries no golang.org/x/sync/singleflight dependency, so this is
// hand-rolled with a mutex-guarded pointer and a close-to-broadcast
// channel, in the teacher's own mutex-guarded-shared-state style
// (pkg/security/auth's RWMutex-guarded map).
type refreshFuture struct {
	done  chan struct{}
	token Token
	err   error
}

// Authenticator drives the Unauthenticated → Authenticating → Ready →
// Refreshing → Ready|Failed state machine (spec.md §4.D).
type Authenticator struct {
	mu         sync.Mutex
	state      authState
	token      Token
	refreshing *refreshFuture
	source     TokenSource
}

// NewAuthenticator wraps source in the token lifecycle state machine.
func NewAuthenticator(source TokenSource) *Authenticator {
	return &Authenticator{source: source, state: stateUnauthenticated}
}

// Authenticate performs the initial exchange if one hasn't already
// succeeded, returning the current token otherwise.
func (a *Authenticator) Authenticate(ctx context.Context) (Token, error) {
	a.mu.Lock()
	if a.state == stateReady {
		t := a.token
		a.mu.Unlock()
		return t, nil
	}
	if a.state == stateFailed {
		a.mu.Unlock()
		return Token{}, &errs.AuthError{Message: "authentication previously failed"}
	}
	a.state = stateAuthenticating
	a.mu.Unlock()

	token, err := a.source.Authenticate(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.state = stateFailed
		return Token{}, &errs.AuthError{Message: "initial authentication failed", Cause: err}
	}
	a.token = token
	a.state = stateReady
	return token, nil
}

// Token returns the current token and whether the state machine is
// Ready. Callers needing a token for a request should call Authenticate
// first to guarantee a Ready state.
func (a *Authenticator) Token() (Token, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token, a.state == stateReady
}

// Refresh re-authenticates, coalescing concurrent callers onto one
// in-flight exchange. A refresh failure transitions to Failed and fails
// every pending and future caller with AuthError until a new
// Authenticator is constructed (spec.md §4.D).
func (a *Authenticator) Refresh(ctx context.Context) (Token, error) {
	a.mu.Lock()
	if a.state == stateFailed {
		a.mu.Unlock()
		return Token{}, &errs.AuthError{Message: "token refresh previously failed"}
	}
	if a.refreshing != nil {
		f := a.refreshing
		a.mu.Unlock()
		select {
		case <-f.done:
			return f.token, f.err
		case <-ctx.Done():
			return Token{}, ctx.Err()
		}
	}

	f := &refreshFuture{done: make(chan struct{})}
	a.refreshing = f
	a.state = stateRefreshing
	a.mu.Unlock()

	token, err := a.source.Authenticate(ctx)

	a.mu.Lock()
	if err != nil {
		a.state = stateFailed
		f.err = &errs.AuthError{Message: "token refresh failed", Cause: err}
	} else {
		a.token = token
		a.state = stateReady
		f.token = token
	}
	a.refreshing = nil
	a.mu.Unlock()
	close(f.done)

	return f.token, f.err
}
