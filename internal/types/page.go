package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Page is a note document. Pages nest: a child page references its
// parent by ParentID, and an aggregate sync of a root page carries all
// of its children. Blocks holds the editor content as an opaque JSON
// document; this layer never interprets it.
type Page struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerUserID uuid.UUID      `gorm:"type:uuid;index;column:owner_user_id" json:"owner_user_id"`
	ParentID    *uuid.UUID     `gorm:"type:uuid;index;column:parent_id" json:"parent_id,omitempty"`
	Title       string         `gorm:"not null;column:title" json:"title"`
	Blocks      datatypes.JSON `gorm:"column:blocks" json:"blocks,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
}

func (Page) TableName() string {
	return "page"
}
