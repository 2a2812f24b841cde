package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
)

// PageSyncService moves a page and its child pages across the
// local/remote boundary. Children are the pages referencing the root
// by parent id; grandchildren move when their own parent is synced.
type PageSyncService interface {
	PushToCloud(ctx context.Context, pageID uuid.UUID) (*SyncResult, error)
	PullToLocal(ctx context.Context, pageID uuid.UUID) (*SyncResult, error)
}

type pageSyncService struct {
	localPages  repos.PageRepo
	remotePages repos.PageRepo
	log         *logger.Logger
}

func NewPageSyncService(localPages, remotePages repos.PageRepo, baseLog *logger.Logger) PageSyncService {
	return &pageSyncService{
		localPages:  localPages,
		remotePages: remotePages,
		log:         baseLog.With("service", "PageSyncService"),
	}
}

func (ps *pageSyncService) PushToCloud(ctx context.Context, pageID uuid.UUID) (*SyncResult, error) {
	return ps.transfer(ctx, pageID, ps.localPages, ps.remotePages)
}

func (ps *pageSyncService) PullToLocal(ctx context.Context, pageID uuid.UUID) (*SyncResult, error) {
	return ps.transfer(ctx, pageID, ps.remotePages, ps.localPages)
}

func (ps *pageSyncService) transfer(ctx context.Context, pageID uuid.UUID, src, dst repos.PageRepo) (*SyncResult, error) {
	root, err := src.GetByID(ctx, pageID)
	if err != nil {
		return nil, err
	}
	children, err := src.GetChildren(ctx, pageID)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{RootID: pageID, DependentsTotal: len(children)}

	if err := dst.Upsert(ctx, nil, root); err != nil {
		return result, err
	}

	var errs []error
	if err := dst.DeleteByParent(ctx, nil, pageID); err != nil {
		ps.log.Warn("Failed to clear destination children before overwrite", "page_id", pageID, "error", err)
		errs = append(errs, err)
	}
	for _, child := range children {
		if err := dst.Upsert(ctx, nil, child); err != nil {
			errs = append(errs, err)
			continue
		}
		result.DependentsWritten++
	}

	if len(errs) > 0 {
		return result, &syncerr.PartialSyncError{
			RootID:  pageID,
			Written: result.DependentsWritten,
			Total:   result.DependentsTotal,
			Errs:    errs,
		}
	}
	ps.log.Info("Page aggregate transferred",
		"page_id", pageID,
		"destination", string(dst.Tier()),
		"dependents", result.DependentsWritten)
	return result, nil
}
