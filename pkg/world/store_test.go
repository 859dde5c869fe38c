package world

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/evanschultz/float-worldbook/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func cityWorld() []models.Element {
	return []models.Element{
		{ID: "a", Name: "Alice", LocatedIn: "c"},
		{ID: "b", Name: "Bob", MemberOf: models.IDList{"c"}},
		{ID: "c", Name: "City"},
	}
}

func TestNewStoreStartsAtVersionOne(t *testing.T) {
	s := NewStore(zaptest.NewLogger(t), cityWorld()...)
	snap := s.Snapshot()
	assert.Equal(t, uint64(1), snap.Version())
	assert.Equal(t, 3, snap.Len())

	e, ok := snap.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, "Bob", e.Name)

	_, ok = snap.Lookup("zzz")
	assert.False(t, ok)
}

func TestSnapshotReverseLinks(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	groups := s.Snapshot().ReverseLinks("c")
	assert.Equal(t, []string{"locatedIn", "memberOf"}, groups.Labels())
	assert.True(t, s.Snapshot().ReverseLinks("zzz").Empty())
}

func TestSnapshotIsIsolatedFromWrites(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	before := s.Snapshot()

	s.Put(models.Element{ID: "d", Name: "Dora", LocatedIn: "c"})
	_, err := s.Delete("a")
	require.NoError(t, err)

	assert.Equal(t, 3, before.Len())
	_, ok := before.Lookup("d")
	assert.False(t, ok)
	assert.Len(t, before.ReverseLinks("c").Referrers(), 2)

	after := s.Snapshot()
	assert.Equal(t, uint64(3), after.Version())
	assert.Equal(t, []string{"b", "d"}, ids(after.ReverseLinks("c").Referrers()))
}

func TestElementsReturnsCopy(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	elements := s.Snapshot().Elements()
	elements[0].Name = "Mallory"

	e, _ := s.Snapshot().Lookup("a")
	assert.Equal(t, "Alice", e.Name)
}

func TestPutReplacesInPlace(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	_, snap := s.Put(models.Element{ID: "a", Name: "Alicia"})

	elements := snap.Elements()
	require.Len(t, elements, 3)
	assert.Equal(t, "Alicia", elements[0].Name)
	assert.True(t, snap.ReverseLinks("c").Labels()[0] == "memberOf")
}

func TestPutAssignsID(t *testing.T) {
	s := NewStore(nil)
	e, snap := s.Put(models.Element{Name: "Nameless Keep"})
	require.NotEmpty(t, e.ID)
	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)

	got, ok := snap.Lookup(e.ID)
	require.True(t, ok)
	assert.Equal(t, "Nameless Keep", got.Name)
}

func TestUpdateKeepsLatestFields(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	stale := s.Snapshot()

	// a reload moves Alice out of the city after stale was taken
	s.Replace([]models.Element{
		{ID: "a", Name: "Alice"},
		{ID: "c", Name: "City"},
	})

	e, snap, err := s.Update("a", func(e *models.Element) {
		e.Content = "Left for the coast."
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), snap.Version())
	assert.Equal(t, "Left for the coast.", e.Content)
	assert.Equal(t, "", e.LocatedIn)
	assert.True(t, snap.ReverseLinks("c").Empty())

	old, _ := stale.Lookup("a")
	assert.Equal(t, "c", old.LocatedIn)
}

func TestUpdateUnknown(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	_, snap, err := s.Update("zzz", func(e *models.Element) { e.Name = "Ghost" })
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, snap)
	assert.Equal(t, uint64(1), s.Snapshot().Version())
}

func TestDeleteUnknown(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	_, err := s.Delete("zzz")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, uint64(1), s.Snapshot().Version())
}

func TestReplace(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	snap := s.Replace([]models.Element{{ID: "x", Name: "X"}})
	assert.Equal(t, uint64(2), snap.Version())
	assert.Equal(t, 1, s.Snapshot().Len())
}

func TestChangesCoalesce(t *testing.T) {
	s := NewStore(nil, cityWorld()...)
	s.Put(models.Element{ID: "d", Name: "D"})
	s.Put(models.Element{ID: "e", Name: "E"})
	s.Put(models.Element{ID: "f", Name: "F"})

	select {
	case snap := <-s.Changes():
		assert.Equal(t, uint64(4), snap.Version())
	default:
		t.Fatal("expected a pending change notification")
	}

	select {
	case snap := <-s.Changes():
		t.Fatalf("unexpected second notification for version %d", snap.Version())
	default:
	}
}

func TestConcurrentReadersDuringWrites(t *testing.T) {
	s := NewStore(nil, cityWorld()...)

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snap := s.Snapshot()
				groups := snap.ReverseLinks("c")
				// every snapshot holds Alice and Bob referencing the city
				if len(groups.Referrers()) < 2 {
					t.Errorf("version %d lost referrers", snap.Version())
					return
				}
			}
		}()
	}

	for i := 0; i < 100; i++ {
		s.Put(models.Element{Name: "Visitor", LocatedIn: "c"})
	}
	wg.Wait()

	assert.Equal(t, uint64(101), s.Snapshot().Version())
}

func ids(elements []models.Element) []string {
	out := make([]string, len(elements))
	for i, e := range elements {
		out[i] = e.ID
	}
	return out
}
