package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&types.Preference{},
		&types.Wallet{},
		&types.FinanceTransaction{},
		&types.Budget{},
		&types.BudgetAssignment{},
		&types.Page{},
		&types.ScheduleEvent{},
	))
	return db
}

// twoTierWallets builds local and remote wallet/transaction adapters
// over two separate stores, the same shape the app wires at boot.
func twoTierWallets(t *testing.T) (localDB, remoteDB *gorm.DB, lw, rw repos.WalletRepo, lt, rt repos.TransactionRepo) {
	t.Helper()
	log := testLogger()
	localDB, remoteDB = testDB(t), testDB(t)
	lw = repos.NewWalletRepo(localDB, types.StoreTierLocal, log)
	rw = repos.NewWalletRepo(remoteDB, types.StoreTierRemote, log)
	lt = repos.NewTransactionRepo(localDB, types.StoreTierLocal, log)
	rt = repos.NewTransactionRepo(remoteDB, types.StoreTierRemote, log)
	return
}

func seedWalletAggregate(t *testing.T, wallets repos.WalletRepo, txns repos.TransactionRepo) *types.Wallet {
	t.Helper()
	ctx := context.Background()
	wallet, err := wallets.Create(ctx, &types.Wallet{Name: "Cash", Currency: "IDR"})
	require.NoError(t, err)
	_, err = txns.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindExpense,
		Amount:     decimal.NewFromInt(50000),
		Note:       "groceries",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	_, err = txns.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindIncome,
		Amount:     decimal.NewFromInt(100000),
		Note:       "salary",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)
	return wallet
}

func TestWalletPushThenPullRoundTrips(t *testing.T) {
	ctx := context.Background()
	_, _, lw, rw, lt, rt := twoTierWallets(t)
	svc := NewWalletSyncService(lw, rw, lt, rt, testLogger())

	wallet := seedWalletAggregate(t, lw, lt)

	pushed, err := svc.PushToCloud(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pushed.DependentsTotal)
	assert.Equal(t, 2, pushed.DependentsWritten)
	assert.True(t, pushed.Complete())

	remoteRoot, err := rw.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.Name, remoteRoot.Name)

	// Pulling back overwrites the local aggregate with the cloud copy,
	// including a transaction added remotely in the meantime.
	_, err = rt.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindExpense,
		Amount:     decimal.NewFromInt(25000),
		Note:       "coffee",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	pulled, err := svc.PullToLocal(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, pulled.DependentsWritten)

	localTxns, err := lt.GetAll(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Len(t, localTxns, 3)
}

func TestWalletPullRemovesStaleLocalDependents(t *testing.T) {
	ctx := context.Background()
	_, _, lw, rw, lt, rt := twoTierWallets(t)
	svc := NewWalletSyncService(lw, rw, lt, rt, testLogger())

	wallet := seedWalletAggregate(t, lw, lt)
	_, err := svc.PushToCloud(ctx, wallet.ID)
	require.NoError(t, err)

	// A transaction created locally after the push does not exist in
	// the cloud; a pull must not keep it.
	stale, err := lt.Create(ctx, &types.FinanceTransaction{
		WalletID:   wallet.ID,
		Kind:       types.TransactionKindExpense,
		Amount:     decimal.NewFromInt(999),
		Note:       "local only",
		OccurredAt: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.PullToLocal(ctx, wallet.ID)
	require.NoError(t, err)

	_, err = lt.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, syncerr.ErrNotFound)
	localTxns, err := lt.GetAll(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Len(t, localTxns, 2)
}

func TestWalletPushMissingRoot(t *testing.T) {
	_, _, lw, rw, lt, rt := twoTierWallets(t)
	svc := NewWalletSyncService(lw, rw, lt, rt, testLogger())
	_, err := svc.PushToCloud(context.Background(), uuid.New())
	assert.ErrorIs(t, err, syncerr.ErrNotFound)
}

// failingUpsertTxns fails the upsert of one chosen transaction and
// forwards everything else.
type failingUpsertTxns struct {
	repos.TransactionRepo
	failID uuid.UUID
}

func (f *failingUpsertTxns) Upsert(ctx context.Context, tx *gorm.DB, txn *types.FinanceTransaction) error {
	if txn.ID == f.failID {
		return errors.New("simulated write failure")
	}
	return f.TransactionRepo.Upsert(ctx, tx, txn)
}

func TestWalletPushPartialFailureKeepsWrites(t *testing.T) {
	ctx := context.Background()
	_, _, lw, rw, lt, rt := twoTierWallets(t)

	wallet := seedWalletAggregate(t, lw, lt)
	deps, err := lt.GetAll(ctx, wallet.ID)
	require.NoError(t, err)
	require.Len(t, deps, 2)

	flaky := &failingUpsertTxns{TransactionRepo: rt, failID: deps[0].ID}
	svc := NewWalletSyncService(lw, rw, lt, flaky, testLogger())

	result, err := svc.PushToCloud(ctx, wallet.ID)
	require.Error(t, err)

	var partial *syncerr.PartialSyncError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, wallet.ID, partial.RootID)
	assert.Equal(t, 1, partial.Written)
	assert.Equal(t, 2, partial.Total)
	assert.Equal(t, 1, result.DependentsWritten)

	// No rollback: the root and the successful dependent stay written.
	_, err = rw.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	remoteTxns, err := rt.GetAll(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Len(t, remoteTxns, 1)
	assert.Equal(t, deps[1].ID, remoteTxns[0].ID)
}

func TestBudgetPushCarriesAssignments(t *testing.T) {
	ctx := context.Background()
	log := testLogger()
	localDB, remoteDB := testDB(t), testDB(t)
	lb := repos.NewBudgetRepo(localDB, types.StoreTierLocal, log)
	rb := repos.NewBudgetRepo(remoteDB, types.StoreTierRemote, log)
	la := repos.NewBudgetAssignmentRepo(localDB, types.StoreTierLocal, log)
	ra := repos.NewBudgetAssignmentRepo(remoteDB, types.StoreTierRemote, log)
	svc := NewBudgetSyncService(lb, rb, la, ra, log)

	budget, err := lb.Create(ctx, &types.Budget{Name: "August", Month: "2026-08"})
	require.NoError(t, err)
	_, err = la.Create(ctx, &types.BudgetAssignment{
		BudgetID: budget.ID,
		Category: "food",
		Planned:  decimal.NewFromInt(2000000),
		Spent:    decimal.NewFromInt(350000),
	})
	require.NoError(t, err)

	result, err := svc.PushToCloud(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DependentsWritten)

	remoteAssignments, err := ra.GetAll(ctx, budget.ID)
	require.NoError(t, err)
	require.Len(t, remoteAssignments, 1)
	assert.Equal(t, "food", remoteAssignments[0].Category)
}

func TestPagePushCarriesChildren(t *testing.T) {
	ctx := context.Background()
	log := testLogger()
	localDB, remoteDB := testDB(t), testDB(t)
	lp := repos.NewPageRepo(localDB, types.StoreTierLocal, log)
	rp := repos.NewPageRepo(remoteDB, types.StoreTierRemote, log)
	svc := NewPageSyncService(lp, rp, log)

	root, err := lp.Create(ctx, &types.Page{Title: "Journal"})
	require.NoError(t, err)
	_, err = lp.Create(ctx, &types.Page{ParentID: &root.ID, Title: "Week 34"})
	require.NoError(t, err)

	result, err := svc.PushToCloud(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DependentsWritten)

	children, err := rp.GetChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Week 34", children[0].Title)
}
