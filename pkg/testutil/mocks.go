package testutil

import (
	"bytes"
	"io/fs"
	"sync"

	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/rs/zerolog"
)

// EventRecorder is a Notifier that records every delivered event.
type EventRecorder struct {
	mu     sync.Mutex
	events []types.ChangeEvent
	calls  int
}

// Notify implements notify.Notifier.
func (r *EventRecorder) Notify(events []types.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.events = append(r.events, events...)
}

// Events returns a copy of every recorded event, in delivery order.
func (r *EventRecorder) Events() []types.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.ChangeEvent(nil), r.events...)
}

// Calls returns how many times Notify was called.
func (r *EventRecorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// FailingFS wraps an FS and refuses writes to the names Fail matches.
type FailingFS struct {
	types.FS
	Fail func(name string) bool
}

// WriteFile fails with fs.ErrPermission for matching names.
func (f FailingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if f.Fail != nil && f.Fail(name) {
		return &fs.PathError{Op: "write", Path: name, Err: fs.ErrPermission}
	}
	return f.FS.WriteFile(name, data, perm)
}

// NewLogger returns a debug-level logger writing JSON lines into a buffer.
func NewLogger() (zerolog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}
