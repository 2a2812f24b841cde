package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ScheduleEvent is a calendar entry. It has no dependents, so it is a
// plain syncable entity rather than an aggregate root. Recurrence is
// an opaque JSON rule owned by the calendar layer.
type ScheduleEvent struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID      `gorm:"type:uuid;index;column:owner_user_id" json:"owner_user_id"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	StartsAt    time.Time      `gorm:"not null;index;column:starts_at" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null;column:ends_at" json:"ends_at"`
	AllDay      bool           `gorm:"not null;default:false;column:all_day" json:"all_day"`
	Recurrence  datatypes.JSON `gorm:"column:recurrence" json:"recurrence,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (ScheduleEvent) TableName() string {
	return "schedule_event"
}
