package world

import (
	"slices"

	"github.com/evanschultz/float-worldbook/pkg/models"
	"github.com/evanschultz/float-worldbook/pkg/refindex"
)

// Snapshot is an immutable, versioned view of every element in a world.
// Readers hold on to a Snapshot for the duration of a query; later writes to
// the Store produce a new Snapshot and never touch this one.
type Snapshot struct {
	version  uint64
	elements []models.Element
	byID     map[string]int
}

func newSnapshot(version uint64, elements []models.Element) *Snapshot {
	s := &Snapshot{
		version:  version,
		elements: elements,
		byID:     make(map[string]int, len(elements)),
	}
	for i, e := range elements {
		// first occurrence wins on duplicate ids
		if _, exists := s.byID[e.ID]; !exists {
			s.byID[e.ID] = i
		}
	}
	return s
}

// Version increases by one with every write to the owning Store.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Len returns the number of elements.
func (s *Snapshot) Len() int {
	return len(s.elements)
}

// Elements returns a copy of the elements in world order.
func (s *Snapshot) Elements() []models.Element {
	return slices.Clone(s.elements)
}

// Lookup returns the element with id.
func (s *Snapshot) Lookup(id string) (models.Element, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Element{}, false
	}
	return s.elements[i], true
}

// ReverseLinks returns the grouped referrers of id within this snapshot.
func (s *Snapshot) ReverseLinks(id string) refindex.Groups {
	return refindex.GroupReverseLinks(refindex.ComputeReverseLinks(id, s.elements))
}
