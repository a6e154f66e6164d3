package view

import (
	"strings"

	"github.com/five82/codexrays/internal/event"
)

// Filter restricts the item list to one family of event types.
type Filter int

const (
	FilterAll Filter = iota
	FilterArgs
	FilterOut
	FilterErr
)

// String returns the label shown in the header stats.
func (f Filter) String() string {
	switch f {
	case FilterArgs:
		return "args"
	case FilterOut:
		return "out"
	case FilterErr:
		return "err"
	default:
		return "all"
	}
}

// Next returns the filter after f in the cycle all, args, out, err.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterArgs
	case FilterArgs:
		return FilterOut
	case FilterOut:
		return FilterErr
	default:
		return FilterAll
	}
}

// Matches reports whether an item with the given type label passes f.
func (f Filter) Matches(label string) bool {
	switch f {
	case FilterArgs:
		return strings.HasSuffix(label, event.ArgsSuffix)
	case FilterOut:
		return strings.HasSuffix(label, event.OutputSuffix)
	case FilterErr:
		return strings.Contains(strings.ToLower(label), "error")
	default:
		return true
	}
}
