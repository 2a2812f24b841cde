package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/types"
)

type reconcileEnv struct {
	lw, rw repos.WalletRepo
	lt, rt repos.TransactionRepo
	lb, rb repos.BudgetRepo
	la, ra repos.BudgetAssignmentRepo
	lp, rp repos.PageRepo
	rec    Reconciler
}

func newReconcileEnv(t *testing.T) *reconcileEnv {
	t.Helper()
	log := testLogger()
	localDB, remoteDB := testDB(t), testDB(t)

	env := &reconcileEnv{
		lw: repos.NewWalletRepo(localDB, types.StoreTierLocal, log),
		rw: repos.NewWalletRepo(remoteDB, types.StoreTierRemote, log),
		lt: repos.NewTransactionRepo(localDB, types.StoreTierLocal, log),
		rt: repos.NewTransactionRepo(remoteDB, types.StoreTierRemote, log),
		lb: repos.NewBudgetRepo(localDB, types.StoreTierLocal, log),
		rb: repos.NewBudgetRepo(remoteDB, types.StoreTierRemote, log),
		la: repos.NewBudgetAssignmentRepo(localDB, types.StoreTierLocal, log),
		ra: repos.NewBudgetAssignmentRepo(remoteDB, types.StoreTierRemote, log),
		lp: repos.NewPageRepo(localDB, types.StoreTierLocal, log),
		rp: repos.NewPageRepo(remoteDB, types.StoreTierRemote, log),
	}
	walletSync := NewWalletSyncService(env.lw, env.rw, env.lt, env.rt, log)
	budgetSync := NewBudgetSyncService(env.lb, env.rb, env.la, env.ra, log)
	pageSync := NewPageSyncService(env.lp, env.rp, log)
	env.rec = NewReconciler(
		env.lw, env.rw,
		env.lb, env.rb,
		env.lp, env.rp,
		walletSync, budgetSync, pageSync,
		log,
	)
	return env
}

func TestReconcilePullsCloudAggregatesAbsentLocally(t *testing.T) {
	ctx := context.Background()
	env := newReconcileEnv(t)
	userID := uuid.New()

	wallet, err := env.rw.Create(ctx, &types.Wallet{OwnerUserID: userID, Name: "Cloud cash"})
	require.NoError(t, err)
	_, err = env.rt.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindIncome,
		Amount:     decimal.NewFromInt(100000),
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	budget, err := env.rb.Create(ctx, &types.Budget{OwnerUserID: userID, Name: "August", Month: "2026-08"})
	require.NoError(t, err)
	page, err := env.rp.Create(ctx, &types.Page{OwnerUserID: userID, Title: "Notes"})
	require.NoError(t, err)

	require.NoError(t, env.rec.Reconcile(ctx, userID))

	gotWallet, err := env.lw.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cloud cash", gotWallet.Name)

	localTxns, err := env.lt.GetAll(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Len(t, localTxns, 1, "dependents travel with the pulled aggregate")

	_, err = env.lb.GetByID(ctx, budget.ID)
	assert.NoError(t, err)
	_, err = env.lp.GetByID(ctx, page.ID)
	assert.NoError(t, err)
}

func TestReconcileLeavesExistingLocalAggregatesAlone(t *testing.T) {
	ctx := context.Background()
	env := newReconcileEnv(t)
	userID := uuid.New()

	wallet, err := env.lw.Create(ctx, &types.Wallet{OwnerUserID: userID, Name: "Edited offline"})
	require.NoError(t, err)
	// Same wallet exists in the cloud with an older name. Divergence is
	// only resolved by an explicit push or pull, never here.
	require.NoError(t, env.rw.Upsert(ctx, nil, &types.Wallet{
		ID:          wallet.ID,
		OwnerUserID: userID,
		Name:        "Old cloud name",
	}))

	require.NoError(t, env.rec.Reconcile(ctx, userID))

	got, err := env.lw.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited offline", got.Name)
}

func TestReconcileEmptyCloudIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newReconcileEnv(t)
	assert.NoError(t, env.rec.Reconcile(ctx, uuid.New()))
}
