// Package store publishes and persists eligibility dataset snapshots. A
// snapshot is a full generation of both output tables; publication is an
// atomic swap, so concurrent readers never observe a partially rewritten
// generation.
package store

import (
	"sync/atomic"
	"time"

	"github.com/seonghoon-dev/policyfit/internal/model"
)

// Snapshot is one full generation of the published dataset. Immutable once
// published.
type Snapshot struct {
	RunID       string
	GeneratedAt time.Time
	Policies    []model.PolicyDoc
	Eligibility []model.EligibilityRecord
}

// Record returns the eligibility record for a policy id.
func (s *Snapshot) Record(policyID string) (model.EligibilityRecord, bool) {
	for _, rec := range s.Eligibility {
		if rec.PolicyID == policyID {
			return rec, true
		}
	}
	return model.EligibilityRecord{}, false
}

// Memory holds the currently published snapshot. Readers take the pointer
// once and work against that generation; Publish swaps the whole dataset.
type Memory struct {
	current atomic.Pointer[Snapshot]
}

// NewMemory returns an empty holder.
func NewMemory() *Memory {
	return &Memory{}
}

// Publish atomically replaces the published snapshot.
func (m *Memory) Publish(s *Snapshot) {
	m.current.Store(s)
}

// Current returns the published snapshot, or nil before the first publish.
func (m *Memory) Current() *Snapshot {
	return m.current.Load()
}
