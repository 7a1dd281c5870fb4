package taskflow

import (
	"context"
	"fmt"
	"sync"
)

// Buffer is an in-memory Editor over a text with a selected byte range.
type Buffer struct {
	mu         sync.Mutex
	text       string
	start, end int
}

// NewBuffer returns a buffer selecting text[start:end].
func NewBuffer(text string, start, end int) (*Buffer, error) {
	if start < 0 || end < start || end > len(text) {
		return nil, fmt.Errorf("invalid selection [%d:%d] in text of length %d", start, end, len(text))
	}
	return &Buffer{text: text, start: start, end: end}, nil
}

// SelectAll returns a buffer whose selection is the whole text.
func SelectAll(text string) *Buffer {
	return &Buffer{text: text, end: len(text)}
}

// Selection implements Editor.
func (b *Buffer) Selection() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text[b.start:b.end]
}

// InsertAfterSelection implements Editor.
func (b *Buffer) InsertAfterSelection(ctx context.Context, s string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = b.text[:b.end] + s + b.text[b.end:]
	return nil
}

// String returns the current text.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}
