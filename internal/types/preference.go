package types

import "time"

// Preference is a single key/value row in the on-device store. It is
// deliberately local-only: the storage mode and last-seen user id must
// survive offline and must never be routed through the cloud.
type Preference struct {
	Key       string    `gorm:"primaryKey;column:key" json:"key"`
	Value     string    `gorm:"not null;column:value" json:"value"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Preference) TableName() string {
	return "preference"
}
