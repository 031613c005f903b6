// Package history reads the server-backed report history. The remote store
// is authoritative: there is no local cache, every view refresh re-fetches,
// and a delete never mutates a previously returned list.
package history

import (
	"context"

	"github.com/Mdsinan09/hcis-project/internal/report"
)

// Transport is the remote list/delete API the store reads through.
type Transport interface {
	ListHistory(ctx context.Context) ([]map[string]any, error)
	DeleteHistory(ctx context.Context, id string) error
}

// Record is a previously persisted report, keyed by the server-assigned id.
type Record struct {
	ID     string
	Report *report.AnalysisReport
	// Raw keeps the entry verbatim for use as chat context.
	Raw map[string]any
}

// Store is a stateless read-through view of the remote history.
type Store struct {
	transport Transport
}

// NewStore creates a history store backed by the given transport.
func NewStore(t Transport) *Store {
	return &Store{transport: t}
}

// List fetches the full ordered history, most recent first (server-defined
// order). It never fails upward: any transport error degrades to an empty
// slice so dependent views stay renderable. Entries that cannot be
// normalized are skipped.
func (s *Store) List(ctx context.Context) []Record {
	entries, err := s.transport.ListHistory(ctx)
	if err != nil {
		return []Record{}
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		rep, err := report.Normalize(entry, report.FileMeta{})
		if err != nil {
			continue
		}
		records = append(records, Record{ID: rep.ID, Report: rep, Raw: entry})
	}
	return records
}

// Remove deletes one record remotely. The caller refreshes via List
// afterward; Remove keeps no local sequence to update, so local and remote
// truth cannot diverge.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.transport.DeleteHistory(ctx, id)
}

// Latest returns the raw payload of the most recent record, or nil when the
// history is empty or unavailable. It serves as the implicit chat context
// when no analysis is active.
func (s *Store) Latest(ctx context.Context) map[string]any {
	records := s.List(ctx)
	if len(records) == 0 {
		return nil
	}
	return records[0].Raw
}

// RecordCompletion notes that a report finished. The backend already
// persisted it during submission, so this is advisory only; it exists for
// interface symmetry with the session controller's completion hook.
func (s *Store) RecordCompletion(_ *report.AnalysisReport) {}
