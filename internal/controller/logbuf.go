package controller

import (
	"fmt"
	"sync"
)

// LogBuffer collects progress lines from the run worker for surfaces that
// poll rather than subscribe. The worker appends from its own goroutine
// while a surface reads, hence the mutex.
type LogBuffer struct {
	mu    sync.Mutex
	lines []string
}

// Append formats and stores one line.
func (b *LogBuffer) Append(format string, args ...any) {
	b.mu.Lock()
	b.lines = append(b.lines, fmt.Sprintf(format, args...))
	b.mu.Unlock()
}

// Lines returns a copy of all collected lines.
func (b *LogBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of collected lines.
func (b *LogBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}
