package logstream

import (
	"strings"
	"sync"
)

// DefaultMaxLines bounds a Buffer created with a non-positive limit.
const DefaultMaxLines = 100

// Buffer keeps the most recent entries for the logger panel. While held, the
// visible snapshot stays frozen and new entries are collected behind it.
// It is safe for concurrent use.
type Buffer struct {
	mu      sync.RWMutex
	max     int
	entries []Entry

	held     bool
	snapshot []Entry
}

// NewBuffer creates a buffer keeping at most maxLines entries.
func NewBuffer(maxLines int) *Buffer {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Buffer{max: maxLines}
}

// Append adds e, dropping the oldest entry when full.
func (b *Buffer) Append(e Entry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) >= b.max {
		b.entries = append(b.entries[:0], b.entries[len(b.entries)-b.max+1:]...)
	}
	b.entries = append(b.entries, e)
}

// SetMax changes the limit and trims older entries.
func (b *Buffer) SetMax(maxLines int) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.max = maxLines
	if over := len(b.entries) - b.max; over > 0 {
		b.entries = append(b.entries[:0], b.entries[over:]...)
	}
}

// Clear drops every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = nil
	b.snapshot = nil
}

// Hold freezes the visible entries.
func (b *Buffer) Hold() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held = true
	b.snapshot = append([]Entry(nil), b.entries...)
}

// Resume unfreezes the visible entries.
func (b *Buffer) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held = false
	b.snapshot = nil
}

// Held reports whether the buffer is frozen.
func (b *Buffer) Held() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.held
}

// Len returns the number of stored entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Visible returns the entries the panel should show.
func (b *Buffer) Visible() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.held {
		return append([]Entry(nil), b.snapshot...)
	}
	return append([]Entry(nil), b.entries...)
}

// Text renders the visible entries one per line.
func (b *Buffer) Text() string {
	visible := b.Visible()
	lines := make([]string, len(visible))
	for i, e := range visible {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}
