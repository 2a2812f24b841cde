package services

import "github.com/google/uuid"

// SyncResult reports one aggregate transfer. DependentsWritten <
// DependentsTotal means the destination was left root-present with an
// incomplete dependent set; nothing is rolled back because no
// transaction spans the two stores.
type SyncResult struct {
	RootID            uuid.UUID `json:"root_id"`
	DependentsTotal   int       `json:"dependents_total"`
	DependentsWritten int       `json:"dependents_written"`
}

func (r *SyncResult) Complete() bool {
	return r.DependentsWritten == r.DependentsTotal
}
