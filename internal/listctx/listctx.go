// Package listctx records the ordered movie sequence the user last saw and the
// movie they focused, so the details screen can step through it and the app
// can resume after a restart.
package listctx

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/mmcdole/marquee/internal/domain"
)

// Storage keys in the long-lived state bucket
const (
	KeyListIDs = "last_list_ids_v1"
	KeyFocusID = "last_focus_id_v1"
)

// Snapshot is an immutable view of the list state
type Snapshot struct {
	IDs   []int
	Focus *int
}

// Context holds the shared ordered list. Reads are lock-free. Mutations
// persist first and then replace the snapshot wholesale, so a failed write
// leaves memory matching storage.
type Context struct {
	kv     domain.KVStore
	logger *slog.Logger

	snap atomic.Pointer[Snapshot]
	mu   sync.Mutex // serializes writers
}

// New loads the persisted snapshot from kv. Missing or unreadable values fall
// back to an empty list and no focus.
func New(kv domain.KVStore, logger *slog.Logger) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Context{kv: kv, logger: logger}

	snap := &Snapshot{IDs: []int{}}
	if ids, err := loadIDs(kv); err != nil {
		logger.Debug("list context ids unavailable", "error", err)
	} else {
		snap.IDs = ids
	}
	if focus, err := loadFocus(kv); err != nil {
		logger.Debug("list context focus unavailable", "error", err)
	} else {
		snap.Focus = focus
	}

	c.snap.Store(snap)
	return c
}

func loadIDs(kv domain.KVStore) ([]int, error) {
	raw, ok, err := kv.Get(KeyListIDs)
	if err != nil {
		return nil, &domain.StorageReadError{Key: KeyListIDs, Err: err}
	}
	if !ok {
		return nil, &domain.StorageReadError{Key: KeyListIDs, Err: domain.ErrNotFound}
	}
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, &domain.StorageReadError{Key: KeyListIDs, Err: err}
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

func loadFocus(kv domain.KVStore) (*int, error) {
	raw, ok, err := kv.Get(KeyFocusID)
	if err != nil {
		return nil, &domain.StorageReadError{Key: KeyFocusID, Err: err}
	}
	if !ok {
		return nil, &domain.StorageReadError{Key: KeyFocusID, Err: domain.ErrNotFound}
	}
	var focus *int
	if err := json.Unmarshal(raw, &focus); err != nil {
		return nil, &domain.StorageReadError{Key: KeyFocusID, Err: err}
	}
	return focus, nil
}

// ReplaceList records the display order of movies
func (c *Context) ReplaceList(movies []domain.Movie) error {
	return c.ReplaceIDs(domain.MovieIDs(movies))
}

// ReplaceIDs replaces the sequence wholesale and persists it. Focus is kept.
func (c *Context) ReplaceIDs(ids []int) error {
	next := slices.Clone(ids)
	if next == nil {
		next = []int{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("listctx: encoding ids: %w", err)
	}
	if err := c.kv.Set(KeyListIDs, raw); err != nil {
		return fmt.Errorf("listctx: saving ids: %w", err)
	}

	cur := c.snap.Load()
	c.snap.Store(&Snapshot{IDs: next, Focus: cur.Focus})
	return nil
}

// SetFocus records id as the focused movie and persists it
func (c *Context) SetFocus(id int) error {
	return c.storeFocus(&id)
}

// ClearFocus removes the focused movie
func (c *Context) ClearFocus() error {
	return c.storeFocus(nil)
}

func (c *Context) storeFocus(focus *int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := json.Marshal(focus)
	if err != nil {
		return fmt.Errorf("listctx: encoding focus: %w", err)
	}
	if err := c.kv.Set(KeyFocusID, raw); err != nil {
		return fmt.Errorf("listctx: saving focus: %w", err)
	}

	cur := c.snap.Load()
	c.snap.Store(&Snapshot{IDs: cur.IDs, Focus: focus})
	return nil
}

// Snapshot returns a copy of the current state
func (c *Context) Snapshot() Snapshot {
	s := c.snap.Load()
	out := Snapshot{IDs: slices.Clone(s.IDs)}
	if s.Focus != nil {
		f := *s.Focus
		out.Focus = &f
	}
	return out
}

// IDs returns a copy of the current sequence
func (c *Context) IDs() []int {
	return slices.Clone(c.snap.Load().IDs)
}

// Focus returns the focused movie id
func (c *Context) Focus() (int, bool) {
	f := c.snap.Load().Focus
	if f == nil {
		return 0, false
	}
	return *f, true
}

// Len returns the length of the sequence
func (c *Context) Len() int {
	return len(c.snap.Load().IDs)
}

// IndexOf returns the position of id in the sequence, or -1
func (c *Context) IndexOf(id int) int {
	return slices.Index(c.snap.Load().IDs, id)
}

// Prev returns the id before id. It reports false at the start of the
// sequence or when id is not in it.
func (c *Context) Prev(id int) (int, bool) {
	ids := c.snap.Load().IDs
	i := slices.Index(ids, id)
	if i <= 0 {
		return 0, false
	}
	return ids[i-1], true
}

// Next returns the id after id. It reports false at the end of the
// sequence or when id is not in it.
func (c *Context) Next(id int) (int, bool) {
	ids := c.snap.Load().IDs
	i := slices.Index(ids, id)
	if i < 0 || i >= len(ids)-1 {
		return 0, false
	}
	return ids[i+1], true
}
