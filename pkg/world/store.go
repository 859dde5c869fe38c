package world

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evanschultz/float-worldbook/pkg/models"
)

var (
	// ErrNotFound is returned when a write names an element the store does not hold.
	ErrNotFound = errors.New("element not found")
)

// Store holds the current Snapshot. Writes are serialized and each one
// publishes a new Snapshot; reads only load the current pointer.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	current *Snapshot
	changes chan *Snapshot
	logger  *zap.Logger
}

// NewStore creates a store seeded with elements at version 1.
func NewStore(logger *zap.Logger, elements ...models.Element) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		current: newSnapshot(1, slices.Clone(elements)),
		changes: make(chan *Snapshot, 1),
		logger:  logger,
	}
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Changes delivers the latest snapshot after writes. Notifications coalesce:
// a slow reader sees only the newest snapshot.
func (s *Store) Changes() <-chan *Snapshot {
	return s.changes
}

// Replace swaps in a whole new element collection.
func (s *Store) Replace(elements []models.Element) *Snapshot {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap := s.publish(slices.Clone(elements))
	s.logger.Info("world replaced",
		zap.Uint64("version", snap.Version()),
		zap.Int("elements", snap.Len()))
	return snap
}

// Put inserts e, or replaces the element with the same id. An element without
// an id is given a fresh one.
func (s *Store) Put(e models.Element) (models.Element, *Snapshot) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	cur := s.Snapshot()
	elements := slices.Clone(cur.elements)
	if i, ok := cur.byID[e.ID]; ok {
		elements[i] = e
	} else {
		elements = append(elements, e)
	}

	snap := s.publish(elements)
	s.logger.Debug("element stored",
		zap.String("id", e.ID),
		zap.Uint64("version", snap.Version()))
	return e, snap
}

// Update applies fn to the current version of the element with id and
// stores the result. Fields fn leaves alone keep whatever the latest write
// gave them.
func (s *Store) Update(id string, fn func(*models.Element)) (models.Element, *Snapshot, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Snapshot()
	i, ok := cur.byID[id]
	if !ok {
		return models.Element{}, nil, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}

	elements := slices.Clone(cur.elements)
	fn(&elements[i])
	elements[i].ID = id

	snap := s.publish(elements)
	s.logger.Debug("element updated",
		zap.String("id", id),
		zap.Uint64("version", snap.Version()))
	return elements[i], snap, nil
}

// Delete removes the element with id.
func (s *Store) Delete(id string) (*Snapshot, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Snapshot()
	if _, ok := cur.byID[id]; !ok {
		return nil, fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}

	elements := make([]models.Element, 0, cur.Len()-1)
	for _, e := range cur.elements {
		if e.ID != id {
			elements = append(elements, e)
		}
	}

	snap := s.publish(elements)
	s.logger.Debug("element deleted",
		zap.String("id", id),
		zap.Uint64("version", snap.Version()))
	return snap, nil
}

// publish must be called with writeMu held.
func (s *Store) publish(elements []models.Element) *Snapshot {
	s.mu.Lock()
	snap := newSnapshot(s.current.version+1, elements)
	s.current = snap
	s.mu.Unlock()

	// drop a stale pending notification so the channel holds the newest
	select {
	case <-s.changes:
	default:
	}
	select {
	case s.changes <- snap:
	default:
	}
	return snap
}
