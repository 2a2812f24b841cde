package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/bus"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
	"github.com/daybook-app/daybook-backend/internal/unified"
)

type fakeReconciler struct {
	mu    sync.Mutex
	calls []uuid.UUID
}

func (f *fakeReconciler) Reconcile(ctx context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, userID)
	return nil
}

func (f *fakeReconciler) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []bus.Event
}

func (p *capturePublisher) Publish(ctx context.Context, evt bus.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *capturePublisher) kinds() []bus.Kind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]bus.Kind, 0, len(p.events))
	for _, evt := range p.events {
		out = append(out, evt.Kind)
	}
	return out
}

// flakyWiper forwards to the real wiper until told to fail.
type flakyWiper struct {
	inner LocalWiper

	mu   sync.Mutex
	fail bool
}

func (f *flakyWiper) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = fail
}

func (f *flakyWiper) WipeAll(ctx context.Context) error {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return errors.New("simulated wipe failure")
	}
	return f.inner.WipeAll(ctx)
}

type orchestratorEnv struct {
	db           *gorm.DB
	prefs        repos.PreferenceRepo
	flag         *unified.ModeFlag
	wallets      repos.WalletRepo
	txns         repos.TransactionRepo
	wiper        *flakyWiper
	reconciler   *fakeReconciler
	publisher    *capturePublisher
	orchestrator *Orchestrator
}

func newOrchestratorEnv(t *testing.T) *orchestratorEnv {
	t.Helper()
	ctx := context.Background()
	log := testLogger()
	db := testDB(t)

	prefs := repos.NewPreferenceRepo(db, log)
	flag, err := unified.LoadModeFlag(ctx, prefs, log)
	require.NoError(t, err)

	wallets := repos.NewWalletRepo(db, types.StoreTierLocal, log)
	txns := repos.NewTransactionRepo(db, types.StoreTierLocal, log)
	budgets := repos.NewBudgetRepo(db, types.StoreTierLocal, log)
	assignments := repos.NewBudgetAssignmentRepo(db, types.StoreTierLocal, log)
	pages := repos.NewPageRepo(db, types.StoreTierLocal, log)
	events := repos.NewEventRepo(db, types.StoreTierLocal, log)

	wiper := &flakyWiper{inner: NewLocalWiper(db, wallets, txns, budgets, assignments, pages, events, log)}
	reconciler := &fakeReconciler{}
	publisher := &capturePublisher{}
	orchestrator := NewOrchestrator(flag, prefs, wiper, reconciler, log, publisher)

	env := &orchestratorEnv{
		db:           db,
		prefs:        prefs,
		flag:         flag,
		wallets:      wallets,
		txns:         txns,
		wiper:        wiper,
		reconciler:   reconciler,
		publisher:    publisher,
		orchestrator: orchestrator,
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	orchestrator.Start(runCtx)
	return env
}

func (e *orchestratorEnv) waitForState(t *testing.T, want SessionState) {
	t.Helper()
	require.Eventually(t, func() bool {
		return e.orchestrator.State() == want
	}, 2*time.Second, 10*time.Millisecond, "orchestrator never reached state %s", want)
}

// signIn enqueues the edge and waits for its broadcast, so the wipe,
// preference write and reconcile have all finished when it returns.
func (e *orchestratorEnv) signIn(t *testing.T, userID uuid.UUID) {
	t.Helper()
	before := len(e.publisher.kinds())
	e.orchestrator.OnSessionChange(SessionEvent{UserID: &userID})
	require.Eventually(t, func() bool {
		return len(e.publisher.kinds()) == before+1 &&
			e.orchestrator.State() == SessionAuthenticated &&
			e.orchestrator.CurrentUserID() == userID
	}, 2*time.Second, 10*time.Millisecond)
}

func (e *orchestratorEnv) rowCount(t *testing.T, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, e.db.Model(model).Count(&count).Error)
	return count
}

func TestSignInFreshDeviceKeepsLocalData(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)

	// Data created while anonymous survives the first sign-in.
	wallet, err := env.wallets.Create(ctx, &types.Wallet{Name: "Guest wallet"})
	require.NoError(t, err)

	userID := uuid.New()
	env.signIn(t, userID)

	_, err = env.wallets.GetByID(ctx, wallet.ID)
	assert.NoError(t, err)

	stored, err := env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), stored)

	assert.Equal(t, 1, env.reconciler.callCount())
	assert.Contains(t, env.publisher.kinds(), bus.KindSyncCompleted)
}

func TestSignInSameUserDoesNotWipe(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)
	userID := uuid.New()

	env.signIn(t, userID)
	wallet, err := env.wallets.Create(ctx, &types.Wallet{OwnerUserID: userID, Name: "Cash"})
	require.NoError(t, err)

	// Session expiry and re-login with the same account.
	env.signIn(t, userID)

	_, err = env.wallets.GetByID(ctx, wallet.ID)
	assert.NoError(t, err)
}

func TestSignInDifferentUserWipesLocalStore(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)
	first, second := uuid.New(), uuid.New()

	env.signIn(t, first)
	_, err := env.wallets.Create(ctx, &types.Wallet{OwnerUserID: first, Name: "First user's"})
	require.NoError(t, err)

	env.signIn(t, second)

	assert.Equal(t, int64(0), env.rowCount(t, &types.Wallet{}),
		"another account's cached data must not survive an identity switch")

	stored, err := env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	require.NoError(t, err)
	assert.Equal(t, second.String(), stored)
}

func TestSignOutWipesEverythingAndResetsMode(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)
	userID := uuid.New()

	env.signIn(t, userID)
	require.NoError(t, env.flag.Set(ctx, types.StorageModeCloud))

	wallet, err := env.wallets.Create(ctx, &types.Wallet{OwnerUserID: userID, Name: "Cash"})
	require.NoError(t, err)
	_, err = env.txns.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindExpense,
		Amount:     decimal.NewFromInt(1000),
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	env.orchestrator.OnSessionChange(SessionEvent{UserID: nil})
	env.waitForState(t, SessionAnonymous)
	require.Eventually(t, func() bool {
		return len(env.publisher.kinds()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, int64(0), env.rowCount(t, &types.Wallet{}))
	assert.Equal(t, int64(0), env.rowCount(t, &types.FinanceTransaction{}))
	assert.Equal(t, types.StorageModeLocal, env.flag.Get())
	assert.Equal(t, uuid.Nil, env.orchestrator.CurrentUserID())
	assert.NoError(t, env.orchestrator.LastWipeError())

	_, err = env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	assert.ErrorIs(t, err, syncerr.ErrNotFound)

	kinds := env.publisher.kinds()
	assert.Equal(t, bus.KindDataCleared, kinds[len(kinds)-1])
}

// A failed wipe never blocks leaving the account: the session still
// ends, the mode still resets and data-cleared still fires, but the
// failure is retained and last_user_id is kept so the wipe is retried
// on the next sign-in.
func TestSignOutProceedsWhenWipeFails(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)
	first, second := uuid.New(), uuid.New()

	env.signIn(t, first)
	_, err := env.wallets.Create(ctx, &types.Wallet{OwnerUserID: first, Name: "Residual"})
	require.NoError(t, err)
	require.NoError(t, env.flag.Set(ctx, types.StorageModeCloud))

	env.wiper.setFail(true)
	env.orchestrator.OnSessionChange(SessionEvent{UserID: nil})
	env.waitForState(t, SessionAnonymous)
	require.Eventually(t, func() bool {
		return len(env.publisher.kinds()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	assert.Error(t, env.orchestrator.LastWipeError())
	assert.Equal(t, types.StorageModeLocal, env.flag.Get())
	assert.Equal(t, bus.KindDataCleared, env.publisher.kinds()[1])
	assert.Equal(t, int64(1), env.rowCount(t, &types.Wallet{}),
		"the residual rows are exactly why the failure must be surfaced")

	stored, err := env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	require.NoError(t, err)
	assert.Equal(t, first.String(), stored,
		"last_user_id survives a failed wipe so the next sign-in retries it")

	// Next sign-in by another account hits the identity mismatch and
	// completes the deferred wipe.
	env.wiper.setFail(false)
	env.signIn(t, second)

	assert.Equal(t, int64(0), env.rowCount(t, &types.Wallet{}))
	assert.NoError(t, env.orchestrator.LastWipeError())
	stored, err = env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	require.NoError(t, err)
	assert.Equal(t, second.String(), stored)
}

// When the identity-mismatch wipe itself fails, the session proceeds
// but last_user_id is not advanced, so the wipe stays owed.
func TestSignInWipeFailureDoesNotAdvanceLastUser(t *testing.T) {
	ctx := context.Background()
	env := newOrchestratorEnv(t)
	first, second := uuid.New(), uuid.New()

	env.signIn(t, first)
	_, err := env.wallets.Create(ctx, &types.Wallet{OwnerUserID: first, Name: "First user's"})
	require.NoError(t, err)

	env.wiper.setFail(true)
	env.signIn(t, second)

	assert.Error(t, env.orchestrator.LastWipeError())
	assert.Equal(t, int64(1), env.rowCount(t, &types.Wallet{}))
	stored, err := env.prefs.Get(ctx, types.PreferenceKeyLastUserID)
	require.NoError(t, err)
	assert.Equal(t, first.String(), stored)

	// The retry succeeds once the store cooperates again.
	env.wiper.setFail(false)
	env.signIn(t, second)
	assert.Equal(t, int64(0), env.rowCount(t, &types.Wallet{}))
	assert.NoError(t, env.orchestrator.LastWipeError())
}

func TestSessionEventsProcessedInArrivalOrder(t *testing.T) {
	env := newOrchestratorEnv(t)
	userID := uuid.New()

	// A burst of sign-in/sign-out edges must settle on the last one.
	env.orchestrator.OnSessionChange(SessionEvent{UserID: &userID})
	env.orchestrator.OnSessionChange(SessionEvent{UserID: nil})
	env.orchestrator.OnSessionChange(SessionEvent{UserID: &userID})

	// Each edge broadcasts exactly one event, so three events means all
	// three edges were processed.
	require.Eventually(t, func() bool {
		return len(env.publisher.kinds()) == 3
	}, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, []bus.Kind{
		bus.KindSyncCompleted,
		bus.KindDataCleared,
		bus.KindSyncCompleted,
	}, env.publisher.kinds())
	assert.Equal(t, SessionAuthenticated, env.orchestrator.State())
	assert.Equal(t, userID, env.orchestrator.CurrentUserID())
}
