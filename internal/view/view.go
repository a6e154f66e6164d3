// Package view holds the list navigation state: which item is selected,
// pinned or expanded, the active filter, and whether the list follows the
// newest activity.
//
// The state never looks at the store directly. Callers compute the ordered,
// filtered key list with Order and pass it to the transitions, so every
// transition sees exactly what is on screen.
package view

import (
	"sort"

	"github.com/five82/codexrays/internal/state"
)

// State is the selection state machine for the item list.
//
// While Follow is set the selection tracks the first item of the order and
// Scroll stays at zero. Any manual move leaves follow mode; NewSince then
// counts items created while the user was looking elsewhere.
type State struct {
	Selected *state.Key
	Pinned   map[state.Key]struct{}
	Expanded map[state.Key]struct{}
	Filter   Filter
	Follow   bool
	Scroll   int
	NewSince int
}

// New returns a state in follow mode with nothing selected.
func New() *State {
	return &State{
		Pinned:   make(map[state.Key]struct{}),
		Expanded: make(map[state.Key]struct{}),
		Follow:   true,
	}
}

// Order returns the keys of items passing the filter: pinned items first,
// each group by most recent update, ties by key.
func (s *State) Order(items []*state.Item) []state.Key {
	visible := make([]*state.Item, 0, len(items))
	for _, it := range items {
		if s.Filter.Matches(it.TypeLabel()) {
			visible = append(visible, it)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		pi, pj := s.IsPinned(visible[i].Key()), s.IsPinned(visible[j].Key())
		if pi != pj {
			return pi
		}
		ti, tj := visible[i].UpdatedAt(), visible[j].UpdatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return visible[i].Key().Less(visible[j].Key())
	})
	keys := make([]state.Key, len(visible))
	for i, it := range visible {
		keys[i] = it.Key()
	}
	return keys
}

// Index returns the position of the selection in order, or -1.
func (s *State) Index(order []state.Key) int {
	if s.Selected == nil {
		return -1
	}
	for i, k := range order {
		if k == *s.Selected {
			return i
		}
	}
	return -1
}

func (s *State) selectKey(k state.Key) {
	s.Selected = &k
}

// Sync re-establishes the follow invariant against the current order. A
// selection that fell out of the order moves to the first item. An empty
// order leaves the selection untouched.
func (s *State) Sync(order []state.Key) {
	if len(order) == 0 {
		return
	}
	if s.Follow {
		s.selectKey(order[0])
		s.Scroll = 0
		s.NewSince = 0
		return
	}
	if s.Index(order) < 0 {
		s.selectKey(order[0])
	}
}

// Move shifts the selection by delta positions, clamped to the list. It
// always leaves follow mode.
func (s *State) Move(delta int, order []state.Key) {
	if s.Follow {
		s.Follow = false
		s.NewSince = 0
	}
	if len(order) == 0 {
		return
	}
	idx := s.Index(order)
	if idx < 0 {
		s.selectKey(order[0])
		return
	}
	idx = max(0, min(len(order)-1, idx+delta))
	s.selectKey(order[idx])
}

// FollowNewest turns follow mode on and jumps to the top of the list.
func (s *State) FollowNewest(order []state.Key) {
	s.Follow = true
	s.NewSince = 0
	s.Scroll = 0
	if len(order) > 0 {
		s.selectKey(order[0])
	}
}

// NoteNewItem records that the store created an item.
func (s *State) NoteNewItem() {
	if !s.Follow {
		s.NewSince++
	}
}

// IsPinned reports whether k is pinned.
func (s *State) IsPinned(k state.Key) bool {
	_, ok := s.Pinned[k]
	return ok
}

// IsExpanded reports whether k shows the expanded line count.
func (s *State) IsExpanded(k state.Key) bool {
	_, ok := s.Expanded[k]
	return ok
}

// TogglePin pins or unpins the selection and reports the new pin state.
func (s *State) TogglePin() bool {
	return toggle(s.Pinned, s.Selected)
}

// TogglePinKey pins or unpins k regardless of the selection.
func (s *State) TogglePinKey(k state.Key) bool {
	return toggle(s.Pinned, &k)
}

// ToggleExpanded expands or collapses the selection.
func (s *State) ToggleExpanded() bool {
	return toggle(s.Expanded, s.Selected)
}

func toggle(set map[state.Key]struct{}, k *state.Key) bool {
	if k == nil {
		return false
	}
	if _, ok := set[*k]; ok {
		delete(set, *k)
		return false
	}
	set[*k] = struct{}{}
	return true
}

// CycleFilter advances to the next filter.
func (s *State) CycleFilter() {
	s.Filter = s.Filter.Next()
}

// AdjustScroll returns the block offset that keeps the selected block on
// screen. total is the number of visible blocks and height reports a block's
// line count (at least one line is assumed); it is only asked about blocks
// from the scroll offset to the end of the area. area is the number of rows
// available. Scrolling is by whole blocks.
func AdjustScroll(scroll, selected, total int, height func(int) int, area int) int {
	if total <= 0 {
		return 0
	}
	selected = max(0, min(total-1, selected))
	scroll = max(0, min(total-1, scroll))
	if selected < scroll {
		return selected
	}
	used, end := 0, scroll
	for end < total && end <= selected {
		h := max(1, height(end))
		if used+h > area {
			break
		}
		used += h
		end++
	}
	if selected >= end {
		return selected
	}
	return scroll
}
