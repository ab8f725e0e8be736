package listctx

import (
	"errors"
	"slices"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
)

// failingKV fails every operation
type failingKV struct{}

func (failingKV) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (failingKV) Set(string, []byte) error          { return errors.New("disk full") }

func TestNew_EmptyStore(t *testing.T) {
	c := New(store.NewMemoryKV(), nil)

	if ids := c.IDs(); ids == nil || len(ids) != 0 {
		t.Errorf("IDs() = %#v, want empty slice", ids)
	}
	if _, ok := c.Focus(); ok {
		t.Error("Focus() should be absent on a fresh store")
	}
}

func TestReplaceList_RoundTrip(t *testing.T) {
	kv := store.NewMemoryKV()
	c := New(kv, nil)

	movies := []domain.Movie{{ID: 10}, {ID: 3}, {ID: 7}}
	if err := c.ReplaceList(movies); err != nil {
		t.Fatalf("ReplaceList() error = %v", err)
	}
	if got := c.IDs(); !slices.Equal(got, []int{10, 3, 7}) {
		t.Errorf("IDs() = %v, want [10 3 7]", got)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	raw, ok, _ := kv.Get(KeyListIDs)
	if !ok || string(raw) != "[10,3,7]" {
		t.Errorf("persisted ids = %q, want [10,3,7]", raw)
	}

	if err := c.ReplaceIDs(nil); err != nil {
		t.Fatalf("ReplaceIDs(nil) error = %v", err)
	}
	raw, _, _ = kv.Get(KeyListIDs)
	if string(raw) != "[]" {
		t.Errorf("persisted ids = %q, want []", raw)
	}
}

func TestReplaceIDs_CopiesInput(t *testing.T) {
	c := New(store.NewMemoryKV(), nil)
	ids := []int{1, 2, 3}
	c.ReplaceIDs(ids)
	ids[0] = 99

	if got := c.IDs(); got[0] != 1 {
		t.Errorf("IDs()[0] = %d, want 1", got[0])
	}
	got := c.IDs()
	got[1] = 42
	if c.IDs()[1] != 2 {
		t.Error("IDs() must return a copy")
	}
}

func TestFocus(t *testing.T) {
	kv := store.NewMemoryKV()
	c := New(kv, nil)

	if err := c.SetFocus(155); err != nil {
		t.Fatalf("SetFocus() error = %v", err)
	}
	if id, ok := c.Focus(); !ok || id != 155 {
		t.Errorf("Focus() = %d, %v; want 155, true", id, ok)
	}
	raw, _, _ := kv.Get(KeyFocusID)
	if string(raw) != "155" {
		t.Errorf("persisted focus = %q, want 155", raw)
	}

	if err := c.ClearFocus(); err != nil {
		t.Fatalf("ClearFocus() error = %v", err)
	}
	if _, ok := c.Focus(); ok {
		t.Error("Focus() should be absent after ClearFocus")
	}
	raw, _, _ = kv.Get(KeyFocusID)
	if string(raw) != "null" {
		t.Errorf("persisted focus = %q, want null", raw)
	}
}

func TestReplaceIDs_KeepsFocus(t *testing.T) {
	c := New(store.NewMemoryKV(), nil)
	c.SetFocus(7)
	c.ReplaceIDs([]int{1, 2})

	if id, ok := c.Focus(); !ok || id != 7 {
		t.Errorf("Focus() = %d, %v; want 7, true", id, ok)
	}
}

func TestPrevNext(t *testing.T) {
	c := New(store.NewMemoryKV(), nil)
	c.ReplaceIDs([]int{10, 20, 30})

	tests := []struct {
		name     string
		id       int
		prev     int
		prevOK   bool
		next     int
		nextOK   bool
		position int
	}{
		{"first", 10, 0, false, 20, true, 0},
		{"middle", 20, 10, true, 30, true, 1},
		{"last", 30, 20, true, 0, false, 2},
		{"absent", 99, 0, false, 0, false, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := c.Prev(tt.id); p != tt.prev || ok != tt.prevOK {
				t.Errorf("Prev(%d) = %d, %v; want %d, %v", tt.id, p, ok, tt.prev, tt.prevOK)
			}
			if n, ok := c.Next(tt.id); n != tt.next || ok != tt.nextOK {
				t.Errorf("Next(%d) = %d, %v; want %d, %v", tt.id, n, ok, tt.next, tt.nextOK)
			}
			if i := c.IndexOf(tt.id); i != tt.position {
				t.Errorf("IndexOf(%d) = %d, want %d", tt.id, i, tt.position)
			}
		})
	}
}

func TestPersistenceAcrossRestart(t *testing.T) {
	dir := t.TempDir()

	db, err := store.Open(dir, store.Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	c := New(db.State(), nil)
	c.ReplaceIDs([]int{268, 155, 272})
	c.SetFocus(155)
	db.Close()

	// A fresh session does not touch long-lived state
	db, err = store.Open(dir, store.Options{NewSession: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	restored := New(db.State(), nil)
	snap := restored.Snapshot()
	if !slices.Equal(snap.IDs, []int{268, 155, 272}) {
		t.Errorf("IDs = %v, want [268 155 272]", snap.IDs)
	}
	if snap.Focus == nil || *snap.Focus != 155 {
		t.Errorf("Focus = %v, want 155", snap.Focus)
	}
	if p, _ := restored.Prev(155); p != 268 {
		t.Errorf("Prev(155) = %d, want 268", p)
	}
}

func TestNew_CorruptValuesFallBack(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.Set(KeyListIDs, []byte(`{"not":"a list"}`))
	kv.Set(KeyFocusID, []byte(`"abc"`))

	c := New(kv, nil)
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.Focus(); ok {
		t.Error("Focus() should be absent for a corrupt value")
	}
}

func TestWriteFailureIsReported(t *testing.T) {
	c := New(failingKV{}, nil)

	if err := c.ReplaceIDs([]int{1}); err == nil {
		t.Error("ReplaceIDs() should report the storage failure")
	}
	// memory only changes once the write has landed
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after a failed write", c.Len())
	}
	if err := c.SetFocus(1); err == nil {
		t.Error("SetFocus() should report the storage failure")
	}
	if _, ok := c.Focus(); ok {
		t.Error("Focus() should stay absent after a failed write")
	}
}
