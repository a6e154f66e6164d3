// Package ingest moves lines from the log tailer through the event parser
// into the item store, keeping the counters shown in the header.
package ingest

import (
	"log"
	"time"

	"github.com/five82/codexrays/internal/event"
	"github.com/five82/codexrays/internal/state"
	"github.com/five82/codexrays/internal/view"
)

// Source yields newly appended lines. It must not block.
type Source interface {
	Poll() ([]string, error)
}

// Options configure a Pipeline.
type Options struct {
	// StripANSI removes escape sequences from lines kept in the recent ring.
	StripANSI bool
	// Now overrides the clock used by the rate meter.
	Now func() time.Time
}

// Pipeline drains a Source into a Store. Like the store it feeds, it is
// owned by the render loop and does no locking.
type Pipeline struct {
	src       Source
	store     *state.Store
	view      *view.State
	stripANSI bool
	now       func() time.Time

	events int
	deltas int
	meter  Meter
}

// New returns a pipeline feeding store and notifying v of new items. v may be
// nil.
func New(src Source, store *state.Store, v *view.State, opts Options) *Pipeline {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	p := &Pipeline{
		src:       src,
		store:     store,
		view:      v,
		stripANSI: opts.StripANSI,
		now:       now,
	}
	p.meter.Reset(now(), 0)
	return p
}

// Drain handles every line currently available from the source and returns
// how many were read. Source errors are logged by the source itself and
// reported here only so the caller can show them; already-read lines are
// still applied.
func (p *Pipeline) Drain() (int, error) {
	lines, err := p.src.Poll()
	for _, ln := range lines {
		p.Handle(ln)
	}
	return len(lines), err
}

// Handle applies one raw line.
func (p *Pipeline) Handle(line string) {
	p.events++
	ev := event.Parse(line)
	if ev.Kind == event.Delta {
		p.deltas++
		if _, created := p.store.Ingest(ev); created && p.view != nil {
			p.view.NoteNewItem()
		}
		return
	}
	if p.stripANSI {
		line = event.StripANSI(line)
	}
	p.store.Note(line)
}

// Note appends a status line of our own to the recent ring and the debug log.
func (p *Pipeline) Note(msg string) {
	log.Print(msg)
	p.store.Note(msg)
}

// Events counts every line handled.
func (p *Pipeline) Events() int { return p.events }

// Deltas counts lines that extended an item.
func (p *Pipeline) Deltas() int { return p.deltas }

// Sample updates the events-per-second meter if enough time has passed.
func (p *Pipeline) Sample() {
	p.meter.Sample(p.now(), p.events)
}

// EPS returns the smoothed events-per-second rate.
func (p *Pipeline) EPS() float64 { return p.meter.Rate() }

// Store returns the store being fed.
func (p *Pipeline) Store() *state.Store { return p.store }
