package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

// WalletSyncService moves a wallet aggregate (the wallet plus every
// transaction referencing it) across the local/remote boundary in one
// direction. The destination is overwritten, never merged; callers are
// expected to have confirmed that with the user.
type WalletSyncService interface {
	PushToCloud(ctx context.Context, walletID uuid.UUID) (*SyncResult, error)
	PullToLocal(ctx context.Context, walletID uuid.UUID) (*SyncResult, error)
}

type walletSyncService struct {
	localWallets  repos.WalletRepo
	remoteWallets repos.WalletRepo
	localTxns     repos.TransactionRepo
	remoteTxns    repos.TransactionRepo
	log           *logger.Logger
}

func NewWalletSyncService(
	localWallets, remoteWallets repos.WalletRepo,
	localTxns, remoteTxns repos.TransactionRepo,
	baseLog *logger.Logger,
) WalletSyncService {
	return &walletSyncService{
		localWallets:  localWallets,
		remoteWallets: remoteWallets,
		localTxns:     localTxns,
		remoteTxns:    remoteTxns,
		log:           baseLog.With("service", "WalletSyncService"),
	}
}

func (ws *walletSyncService) PushToCloud(ctx context.Context, walletID uuid.UUID) (*SyncResult, error) {
	return ws.transfer(ctx, walletID, ws.localWallets, ws.localTxns, ws.remoteWallets, ws.remoteTxns)
}

func (ws *walletSyncService) PullToLocal(ctx context.Context, walletID uuid.UUID) (*SyncResult, error) {
	return ws.transfer(ctx, walletID, ws.remoteWallets, ws.remoteTxns, ws.localWallets, ws.localTxns)
}

// transfer writes the root before any dependent, so a failure partway
// leaves the destination root-present with dependents missing, never
// orphaned dependents. Dependent failures are collected rather than
// aborting, so the caller learns exactly how far the transfer got.
func (ws *walletSyncService) transfer(
	ctx context.Context,
	walletID uuid.UUID,
	srcWallets repos.WalletRepo, srcTxns repos.TransactionRepo,
	dstWallets repos.WalletRepo, dstTxns repos.TransactionRepo,
) (*SyncResult, error) {
	root, err := srcWallets.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	deps, err := srcTxns.GetAll(ctx, walletID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{RootID: walletID, DependentsTotal: len(deps)}

	if err := dstWallets.Upsert(ctx, nil, root); err != nil {
		return result, err
	}

	var errs []error
	if err := dstTxns.DeleteByWallet(ctx, nil, walletID); err != nil {
		ws.log.Warn("Failed to clear destination transactions before overwrite", "wallet_id", walletID, "error", err)
		errs = append(errs, err)
	}
	for _, dep := range deps {
		if err := dstTxns.Upsert(ctx, nil, dep); err != nil {
			errs = append(errs, err)
			continue
		}
		result.DependentsWritten++
	}

	if len(errs) > 0 {
		return result, &syncerr.PartialSyncError{
			RootID:  walletID,
			Written: result.DependentsWritten,
			Total:   result.DependentsTotal,
			Errs:    errs,
		}
	}
	ws.log.Info("Wallet aggregate transferred",
		"wallet_id", walletID,
		"destination", string(dstWallets.Tier()),
		"dependents", result.DependentsWritten)
	return result, nil
}
