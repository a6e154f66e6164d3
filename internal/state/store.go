package state

import (
	"fmt"
	"time"

	"github.com/five82/codexrays/internal/event"
)

const (
	// DefaultMaxItems bounds how many items the store tracks.
	DefaultMaxItems = 200
	// DefaultRecentLimit bounds the recent-lines ring.
	DefaultRecentLimit = 50
)

// Key identifies one streaming item.
type Key struct {
	ItemID      string
	OutputIndex int
}

// Less orders keys by item id, then output index.
func (k Key) Less(o Key) bool {
	if k.ItemID != o.ItemID {
		return k.ItemID < o.ItemID
	}
	return k.OutputIndex < o.OutputIndex
}

func (k Key) String() string {
	return fmt.Sprintf("%s#%d", k.ItemID, k.OutputIndex)
}

// KeyOf returns the store key for a delta event.
func KeyOf(ev event.Event) Key {
	k := Key{ItemID: ev.ItemID}
	if ev.OutputIndex != nil {
		k.OutputIndex = *ev.OutputIndex
	}
	return k
}

// Options configure a Store. Zero values use the package defaults.
type Options struct {
	MaxItems    int
	CharBudget  int
	RecentLimit int
	Now         func() time.Time
}

// Store aggregates delta events into items and keeps a short ring of the
// lines that did not belong to any item.
//
// A Store is owned by a single goroutine (the render loop) and does no
// locking of its own.
type Store struct {
	items      map[Key]*Item
	maxItems   int
	charBudget int
	recent     *Ring
	now        func() time.Time
	evicted    int
}

// NewStore returns an empty store.
func NewStore(opts Options) *Store {
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.CharBudget <= 0 {
		opts.CharBudget = DefaultCharBudget
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		items:      make(map[Key]*Item),
		maxItems:   opts.MaxItems,
		charBudget: opts.CharBudget,
		recent:     NewRing(opts.RecentLimit),
		now:        opts.Now,
	}
}

// Ingest applies a delta event and reports whether a new item was created.
func (s *Store) Ingest(ev event.Event) (Key, bool) {
	key := KeyOf(ev)
	now := s.now()
	it, ok := s.items[key]
	created := !ok
	if created {
		it = newItem(key, s.charBudget, now)
		s.items[key] = it
		if len(s.items) > s.maxItems {
			s.evictStalest(key)
		}
	}
	it.AppendDelta(ev.Delta, ev.SequenceNumber, ev.Type, ev.OutputIndex, now)
	return key, created
}

// evictStalest removes the least recently updated item other than keep. Ties
// go to the smallest key so eviction is deterministic.
func (s *Store) evictStalest(keep Key) {
	var (
		victim Key
		oldest time.Time
		found  bool
	)
	for k, it := range s.items {
		if k == keep {
			continue
		}
		if !found || it.updatedAt.Before(oldest) || (it.updatedAt.Equal(oldest) && k.Less(victim)) {
			victim, oldest, found = k, it.updatedAt, true
		}
	}
	if found {
		delete(s.items, victim)
		s.evicted++
	}
}

// Note appends a line to the recent ring.
func (s *Store) Note(line string) { s.recent.Push(line) }

// Recent returns the ring of recent non-item lines.
func (s *Store) Recent() *Ring { return s.recent }

// Get returns the item for key.
func (s *Store) Get(key Key) (*Item, bool) {
	it, ok := s.items[key]
	return it, ok
}

// Len returns the number of tracked items.
func (s *Store) Len() int { return len(s.items) }

// Evicted counts items dropped to honour the item limit.
func (s *Store) Evicted() int { return s.evicted }

// Items returns the tracked items in no particular order.
func (s *Store) Items() []*Item {
	out := make([]*Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	return out
}

// Clear drops every item. The recent ring is kept.
func (s *Store) Clear() {
	clear(s.items)
}
