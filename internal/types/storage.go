package types

// StorageMode is the process-wide routing flag deciding which store
// backs all entity traffic. It is persisted as a single preference key
// and never migrates data when flipped.
type StorageMode string

const (
	StorageModeLocal StorageMode = "local"
	StorageModeCloud StorageMode = "cloud"
)

func (m StorageMode) Valid() bool {
	return m == StorageModeLocal || m == StorageModeCloud
}

// StoreTier identifies which physical store an adapter is bound to.
// Unlike StorageMode it is fixed at construction time: an adapter is
// either the on-device store or the cloud store for its whole life.
type StoreTier string

const (
	StoreTierLocal  StoreTier = "local"
	StoreTierRemote StoreTier = "remote"
)

// PreferenceKeyStorageMode holds the active StorageMode.
const PreferenceKeyStorageMode = "storage_mode"

// PreferenceKeyLastUserID records the user id that last populated the
// local store, used to detect identity mismatches on login.
const PreferenceKeyLastUserID = "last_user_id"
