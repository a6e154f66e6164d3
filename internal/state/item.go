package state

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxFragments bounds how many delta fragments an item retains.
	MaxFragments = 4096
	// DefaultCharBudget bounds the characters retained per item.
	DefaultCharBudget = 8192
)

type fragment struct {
	text  string
	chars int
}

// Item accumulates the streamed text of one (item id, output index) pair.
// Fragments are kept in arrival order; the oldest are dropped once the
// character budget is exceeded, but a single fragment is never split.
type Item struct {
	key          Key
	typeLabel    string
	outputIndex  *int
	lastSequence *int
	updatedAt    time.Time

	frags  []fragment
	start  int
	chars  int
	budget int

	snapshot string
	dirty    bool
	rev      uint64
}

func newItem(key Key, budget int, now time.Time) *Item {
	if budget <= 0 {
		budget = DefaultCharBudget
	}
	return &Item{key: key, budget: budget, updatedAt: now}
}

// Key returns the item's identity.
func (it *Item) Key() Key { return it.key }

// TypeLabel returns the last non-empty event type seen for the item.
func (it *Item) TypeLabel() string { return it.typeLabel }

// lastOutputIndex returns the last output index seen, if any.
func (it *Item) lastOutputIndex() (int, bool) {
	if it.outputIndex == nil {
		return 0, false
	}
	return *it.outputIndex, true
}

// LastSequence returns the last sequence number seen, if any.
func (it *Item) LastSequence() (int, bool) {
	if it.lastSequence == nil {
		return 0, false
	}
	return *it.lastSequence, true
}

// UpdatedAt is the time of the last non-empty append (or creation).
func (it *Item) UpdatedAt() time.Time { return it.updatedAt }

// Fragments reports how many fragments are currently retained.
func (it *Item) Fragments() int { return len(it.frags) - it.start }

// Chars reports the retained character count.
func (it *Item) Chars() int { return it.chars }

// AppendDelta appends one fragment. An empty text leaves the item untouched.
func (it *Item) AppendDelta(text string, seq *int, typeLabel string, outIdx *int, now time.Time) {
	if text == "" {
		return
	}
	if typeLabel != "" {
		it.typeLabel = typeLabel
	}
	if outIdx != nil {
		v := *outIdx
		it.outputIndex = &v
	}
	if seq != nil {
		v := *seq
		it.lastSequence = &v
	}
	it.updatedAt = now

	n := utf8.RuneCountInString(text)
	it.frags = append(it.frags, fragment{text: text, chars: n})
	it.chars += n
	if it.Fragments() > MaxFragments {
		it.dropOldest()
	}
	for it.chars > it.budget && it.Fragments() > 1 {
		it.dropOldest()
	}
	it.compact()
	it.dirty = true
	it.rev++
}

// Revision increases with every appended fragment.
func (it *Item) Revision() uint64 { return it.rev }

func (it *Item) dropOldest() {
	it.chars -= it.frags[it.start].chars
	it.frags[it.start] = fragment{}
	it.start++
}

// compact reclaims the dropped prefix once it dominates the backing array.
func (it *Item) compact() {
	if it.start == 0 || it.start < len(it.frags)/2 {
		return
	}
	live := copy(it.frags, it.frags[it.start:])
	clear(it.frags[live:])
	it.frags = it.frags[:live]
	it.start = 0
}

// Snapshot returns the concatenation of the retained fragments.
func (it *Item) Snapshot() string {
	if !it.dirty {
		return it.snapshot
	}
	var b strings.Builder
	for _, f := range it.frags[it.start:] {
		b.WriteString(f.text)
	}
	it.snapshot = b.String()
	it.dirty = false
	return it.snapshot
}
