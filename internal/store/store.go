package store

import (
	"sort"
	"sync"
	"time"

	"gridsynth/internal/model"
)

type entry struct {
	start  time.Time
	record model.IntervalRecord
}

// Store holds interval records in memory, indexed by meter and sorted
// by start time.
type Store struct {
	mu     sync.RWMutex
	meters map[string][]entry
}

func New() *Store {
	return &Store{
		meters: make(map[string][]entry),
	}
}

// Put adds interval records for a meter, keeping them sorted by start
// time. Records whose start time cannot be parsed are ignored.
func (s *Store) Put(meter string, records []model.IntervalRecord) {
	if len(records) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		start, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			continue
		}
		s.meters[meter] = append(s.meters[meter], entry{start: start, record: r})
	}

	sort.Slice(s.meters[meter], func(i, j int) bool {
		return s.meters[meter][i].start.Before(s.meters[meter][j].start)
	})
}

// Has reports whether any records exist for a meter.
func (s *Store) Has(meter string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.meters[meter]) > 0
}

// Intervals returns up to limit records for a meter, ascending by start
// time, or descending when desc is set. limit <= 0 returns everything.
func (s *Store) Intervals(meter string, limit int, desc bool) []model.IntervalRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.meters[meter]
	if len(entries) == 0 {
		return nil
	}

	result := make([]model.IntervalRecord, len(entries))
	if desc {
		for i, e := range entries {
			result[len(entries)-1-i] = e.record
		}
	} else {
		for i, e := range entries {
			result[i] = e.record
		}
	}

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result
}

// Latest returns the most recent record for a meter.
func (s *Store) Latest(meter string) (model.IntervalRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.meters[meter]
	if len(entries) == 0 {
		return model.IntervalRecord{}, false
	}
	return entries[len(entries)-1].record, true
}

// Meters returns all meter identifiers with cached records.
func (s *Store) Meters() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meters := make([]string, 0, len(s.meters))
	for m := range s.meters {
		meters = append(meters, m)
	}
	sort.Strings(meters)
	return meters
}
