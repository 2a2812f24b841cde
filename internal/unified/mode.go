// Package unified holds the per-entity repository façades. A façade
// owns no data: on every call it resolves the active store adapter
// from the shared ModeFlag and the caller's session, then forwards
// the call unchanged. Flipping the mode only redirects traffic; it
// never migrates or deletes records in either store.
package unified

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
	"github.com/daybook-app/daybook-backend/internal/repos"
	"github.com/daybook-app/daybook-backend/internal/requestdata"
	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
)

// ModeFlag is the single process-wide routing flag. All façades share
// one instance, so a flip is observed atomically by every entity type.
// The value is persisted through the local preference store and loaded
// before any façade serves traffic.
type ModeFlag struct {
	mu    sync.RWMutex
	mode  types.StorageMode
	prefs repos.PreferenceRepo
	log   *logger.Logger
}

// LoadModeFlag reads the persisted storage mode, defaulting to local
// when no preference exists yet (first launch).
func LoadModeFlag(ctx context.Context, prefs repos.PreferenceRepo, baseLog *logger.Logger) (*ModeFlag, error) {
	flag := &ModeFlag{
		mode:  types.StorageModeLocal,
		prefs: prefs,
		log:   baseLog.With("component", "ModeFlag"),
	}
	stored, err := prefs.Get(ctx, types.PreferenceKeyStorageMode)
	if err != nil {
		if errors.Is(err, syncerr.ErrNotFound) {
			return flag, nil
		}
		return nil, err
	}
	mode := types.StorageMode(stored)
	if !mode.Valid() {
		flag.log.Warn("Ignoring invalid persisted storage mode", "value", stored)
		return flag, nil
	}
	flag.mode = mode
	return flag, nil
}

func (f *ModeFlag) Get() types.StorageMode {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.mode
}

// ActiveMode resolves the routing for one call. Cloud routing needs
// both the cloud mode and an authenticated session: anonymous requests
// always hit the local store, even when a persisted cloud flag
// survived a crash or the caller's token expired.
func (f *ModeFlag) ActiveMode(ctx context.Context) types.StorageMode {
	if requestdata.UserID(ctx) == uuid.Nil {
		return types.StorageModeLocal
	}
	return f.Get()
}

// Set persists the new mode, then flips routing. Persisting first
// means a crash between the two steps resumes with the new mode
// rather than silently reverting.
func (f *ModeFlag) Set(ctx context.Context, mode types.StorageMode) error {
	if !mode.Valid() {
		return fmt.Errorf("invalid storage mode %q", mode)
	}
	if err := f.prefs.Set(ctx, types.PreferenceKeyStorageMode, string(mode)); err != nil {
		return err
	}
	f.mu.Lock()
	previous := f.mode
	f.mode = mode
	f.mu.Unlock()
	if previous != mode {
		f.log.Info("Storage mode changed", "from", string(previous), "to", string(mode))
	}
	return nil
}
