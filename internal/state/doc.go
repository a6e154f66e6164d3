// Package state holds the in-memory reconstruction of streamed items.
//
// # Overview
//
// Streaming log events arrive as many small "delta" fragments, interleaved
// across items. The Store groups them by Key (item id plus output index) and
// appends each fragment to the matching Item:
//
//	store := state.NewStore(state.Options{MaxItems: 200})
//	key, created := store.Ingest(ev)
//	item, _ := store.Get(key)
//	fmt.Println(item.Snapshot())
//
// Lines that do not extend an item (other structured events, function calls,
// free text) go to a fixed-size Ring of recent lines instead.
//
// # Memory Bounds
//
// Three caps are enforced on every mutation, never by a background sweep:
//
//   - Store: at most MaxItems items; creating one more evicts the item with
//     the oldest UpdatedAt (ties go to the smallest Key, and the item just
//     created is never the victim)
//   - Item: at most MaxFragments fragments
//   - Item: at most CharBudget characters, dropping the oldest whole
//     fragments first; a single oversized fragment is kept intact
//
// Snapshot always equals the in-order concatenation of the retained
// fragments, so truncation only ever removes text from the front.
//
// # Ownership
//
// The render loop owns the Store and is the only goroutine that touches it.
// There is no locking; callers that need concurrent access must provide
// their own.
//
// # Clock
//
// Options.Now lets tests drive UpdatedAt deterministically:
//
//	now := time.Unix(0, 0)
//	store := state.NewStore(state.Options{Now: func() time.Time { return now }})
package state
