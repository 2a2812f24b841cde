// Package repos implements the per-entity store adapters. Every repo
// is one GORM implementation bound at construction time to a single
// physical store: the on-device SQLite tier or the cloud Postgres
// tier. The unified layer composes one instance of each.
package repos

import (
	"errors"

	"gorm.io/gorm"

	"github.com/daybook-app/daybook-backend/internal/syncerr"
	"github.com/daybook-app/daybook-backend/internal/types"
)

var errNotConnected = errors.New("store not connected")

// classify maps a raw store error onto the sync error taxonomy. The
// tier decides the class: local failures are fatal, remote failures
// are recoverable.
func classify(tier types.StoreTier, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return syncerr.ErrNotFound
	}
	if tier == types.StoreTierRemote {
		return syncerr.Remote(op, err)
	}
	return syncerr.Local(op, err)
}

// resolve picks the explicit transaction when one is supplied,
// otherwise the repo's own handle. A nil handle means the tier never
// connected (offline device, cloud tier).
func resolve(tx, own *gorm.DB, tier types.StoreTier, op string) (*gorm.DB, error) {
	if tx != nil {
		return tx, nil
	}
	if own == nil {
		return nil, classify(tier, op, errNotConnected)
	}
	return own, nil
}

// scrubPatch drops fields a caller is never allowed to change through
// a partial update.
func scrubPatch(patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(patch))
	for k, v := range patch {
		switch k {
		case "id", "created_at", "updated_at":
			continue
		}
		out[k] = v
	}
	return out
}
