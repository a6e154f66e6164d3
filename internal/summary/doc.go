// Package summary turns partial item text and raw log lines into short,
// width-bounded previews.
//
// Everything here is pure: functions take the text and a width in terminal
// cells and return strings or Preview values tagged with a Style. Field
// extraction works on incomplete JSON, so a tool call can be summarized while
// its arguments are still streaming in. Patch envelopes are reduced to a
// diffstat, and JSON payloads can be pretty-printed and highlighted for the
// detail view.
package summary
