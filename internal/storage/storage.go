package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cxf-converter/internal/model"
)

var ErrNotFound = errors.New("record not found")

// Store keeps conversion history and mail deliveries in a single JSON file.
// Both lists are capped at limit entries, dropping the oldest.
type Store struct {
	path  string
	limit int
	mu    sync.RWMutex
	state model.StoredState
}

func NewStore(path string, limit int) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path is empty")
	}
	if limit <= 0 {
		return nil, errors.New("history limit must be > 0")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path, limit: limit}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.state = defaultState()
			return s.saveLocked()
		}
		return err
	}
	if len(b) == 0 {
		s.state = defaultState()
		return s.saveLocked()
	}

	var state model.StoredState
	if err := json.Unmarshal(b, &state); err != nil {
		return err
	}
	mergeDefaults(&state)
	s.state = state
	s.trimLocked()
	return nil
}

func defaultState() model.StoredState {
	return model.StoredState{
		Conversions: []model.ConversionRecord{},
		Deliveries:  []model.DeliveryRecord{},
		CreatedAt:   time.Now().UTC(),
	}
}

func mergeDefaults(state *model.StoredState) {
	if state.Conversions == nil {
		state.Conversions = []model.ConversionRecord{}
	}
	if state.Deliveries == nil {
		state.Deliveries = []model.DeliveryRecord{}
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now().UTC()
	}
}

func (s *Store) trimLocked() {
	if n := len(s.state.Conversions) - s.limit; n > 0 {
		s.state.Conversions = append([]model.ConversionRecord{}, s.state.Conversions[n:]...)
	}
	if n := len(s.state.Deliveries) - s.limit; n > 0 {
		s.state.Deliveries = append([]model.DeliveryRecord{}, s.state.Deliveries[n:]...)
	}
}

func (s *Store) saveLocked() error {
	s.state.LastUpdatedUnixMS = time.Now().UnixMilli()
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *Store) Snapshot() model.StoredState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, _ := json.Marshal(s.state)
	var cloned model.StoredState
	_ = json.Unmarshal(b, &cloned)
	return cloned
}

func (s *Store) AddConversion(rec model.ConversionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Conversions = append(s.state.Conversions, rec)
	s.trimLocked()
	return s.saveLocked()
}

// ListConversions returns up to limit records, newest first. A limit <= 0
// returns everything kept.
func (s *Store) ListConversions(limit int) []model.ConversionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.state.Conversions)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.ConversionRecord, 0, limit)
	for i := n - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.state.Conversions[i])
	}
	return out
}

func (s *Store) GetConversion(id string) (model.ConversionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.state.Conversions {
		if rec.ID == id {
			return rec, nil
		}
	}
	return model.ConversionRecord{}, ErrNotFound
}

func (s *Store) AddDelivery(d model.DeliveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Deliveries = append(s.state.Deliveries, d)
	s.trimLocked()
	return s.saveLocked()
}

func (s *Store) ListDeliveries() []model.DeliveryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.DeliveryRecord, len(s.state.Deliveries))
	copy(out, s.state.Deliveries)
	return out
}
