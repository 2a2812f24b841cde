package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionAuthenticating SessionState = "authenticating"
	SessionAuthenticated  SessionState = "authenticated"
	SessionSigningOut     SessionState = "signing_out"
)

// SessionEvent is one edge from the auth provider: a non-nil UserID is
// a sign-in, nil is a sign-out or session expiry.
type SessionEvent struct {
	UserID *uuid.UUID
}

// SessionWatcher is how the auth provider hands session edges to the
// orchestrator without knowing anything about it.
type SessionWatcher interface {
	OnSessionChange(evt SessionEvent)
}

// Publisher is anything the orchestrator can broadcast sync events
// through; the in-process hub always, a Redis forwarder optionally.
type Publisher interface {
	Publish(ctx context.Context, evt bus.Event) error
}

// Orchestrator reacts to session edges: it clears locally cached state
// when identities change, wipes the device on sign-out, kicks off
// best-effort reconciliation on sign-in, and broadcasts completion so
// UI state containers reload. Events are processed strictly in arrival
// order by a single goroutine; a sign-out arriving while sign-in work
// is in flight waits its turn instead of interleaving.
type Orchestrator struct {
	log        *logger.Logger
	flag       *unified.ModeFlag
	prefs      repos.PreferenceRepo
	wiper      LocalWiper
	reconciler Reconciler
	publishers []Publisher

	events chan SessionEvent

	mu          sync.RWMutex
	state       SessionState
	currentUser uuid.UUID
	lastWipeErr error
}

func NewOrchestrator(
	flag *unified.ModeFlag,
	prefs repos.PreferenceRepo,
	wiper LocalWiper,
	reconciler Reconciler,
	baseLog *logger.Logger,
	publishers ...Publisher,
) *Orchestrator {
	return &Orchestrator{
		log:        baseLog.With("service", "Orchestrator"),
		flag:       flag,
		prefs:      prefs,
		wiper:      wiper,
		reconciler: reconciler,
		publishers: publishers,
		events:     make(chan SessionEvent, 32),
		state:      SessionAnonymous,
	}
}

// Start runs the event loop until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt := <-o.events:
				o.handle(ctx, evt)
			}
		}
	}()
}

// OnSessionChange queues a session edge for in-order processing.
func (o *Orchestrator) OnSessionChange(evt SessionEvent) {
	o.events <- evt
}

func (o *Orchestrator) State() SessionState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.state
}

func (o *Orchestrator) CurrentUserID() uuid.UUID {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.currentUser
}

// LastWipeError reports a failed local wipe so the UI can warn that
// residual data may remain on the device.
func (o *Orchestrator) LastWipeError() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.lastWipeErr
}

func (o *Orchestrator) handle(ctx context.Context, evt SessionEvent) {
	if evt.UserID != nil {
		o.signIn(ctx, *evt.UserID)
		return
	}
	o.signOut(ctx)
}

func (o *Orchestrator) signIn(ctx context.Context, userID uuid.UUID) {
	o.setState(SessionAuthenticating, uuid.Nil)

	if err := o.clearForIncomingUser(ctx, userID); err != nil {
		// The wipe is retried on the next sign-in because last_user_id
		// was not advanced. The session still proceeds: a user locked
		// out of their own account is worse than a deferred wipe.
		o.log.Error("Local cache clear failed on sign-in", "error", err)
		o.setWipeErr(err)
	} else if err := o.prefs.Set(ctx, types.PreferenceKeyLastUserID, userID.String()); err != nil {
		o.log.Error("Failed to record session user id", "error", err)
	}

	o.setState(SessionAuthenticated, userID)

	if o.reconciler != nil {
		if err := o.reconciler.Reconcile(ctx, userID); err != nil {
			// Best-effort by design: the user keeps working locally.
			o.log.Warn("Background reconciliation incomplete", "error", err)
		}
	}

	o.publish(ctx, bus.KindSyncCompleted)
}

// clearForIncomingUser wipes the local store when it was last
// populated by a different account, so no aggregate of one user ever
// bleeds into another's session. A device with no recorded user
// (fresh install or anonymous use) is left intact.
func (o *Orchestrator) clearForIncomingUser(ctx context.Context, incoming uuid.UUID) error {
	stored, err := o.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	if err != nil {
		if errors.Is(err, syncerr.ErrNotFound) {
			return nil
		}
		return err
	}
	cached, err := uuid.Parse(stored)
	if err != nil || cached == uuid.Nil || cached == incoming {
		return nil
	}

	mismatch := &syncerr.IdentityMismatchError{CachedUserID: cached, IncomingUserID: incoming}
	o.log.Warn("Cached data belongs to another account, wiping local store", "error", mismatch)
	if err := o.wiper.WipeAll(ctx); err != nil {
		return err
	}
	o.setWipeErr(nil)
	return nil
}

// signOut wipes the device before the session is considered gone: a
// local cache holding another identity's financial and personal data
// is the higher-priority risk. A failed wipe is surfaced but never
// blocks leaving the account.
func (o *Orchestrator) signOut(ctx context.Context) {
	o.setState(SessionSigningOut, o.CurrentUserID())

	if err := o.wiper.WipeAll(ctx); err != nil {
		o.log.Error("Local wipe failed during sign-out, residual data may remain", "error", err)
		o.setWipeErr(err)
	} else {
		o.setWipeErr(nil)
		if err := o.prefs.Delete(ctx, types.PreferenceKeyLastUserID); err != nil {
			o.log.Warn("Failed to clear session user id", "error", err)
		}
	}

	if err := o.flag.Set(ctx, types.StorageModeLocal); err != nil {
		o.log.Error("Failed to reset storage mode on sign-out", "error", err)
	}

	o.setState(SessionAnonymous, uuid.Nil)
	o.publish(ctx, bus.KindDataCleared)
}

func (o *Orchestrator) setState(state SessionState, userID uuid.UUID) {
	o.mu.Lock()
	o.state = state
	o.currentUser = userID
	o.mu.Unlock()
}

func (o *Orchestrator) setWipeErr(err error) {
	o.mu.Lock()
	o.lastWipeErr = err
	o.mu.Unlock()
}

func (o *Orchestrator) publish(ctx context.Context, kind bus.Kind) {
	for _, pub := range o.publishers {
		if err := pub.Publish(ctx, bus.Event{Kind: kind}); err != nil {
			o.log.Warn("Failed to broadcast sync event", "kind", string(kind), "error", err)
		}
	}
}
