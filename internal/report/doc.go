// Package report renders human-readable summaries of a loaded table for the
// inspect command. Output is styled with lipgloss when written to a terminal
// and falls back to plain aligned text otherwise.
package report
