package notify

import (
	"encoding/json"
	"io"
	"slices"
	"sync"

	"github.com/arthur-debert/keeper/pkg/types"
	"github.com/rs/zerolog"
)

// ChangeEventName is the name change events are published under.
const ChangeEventName = "store://change"

// Notifier receives the change events of one operation, in order.
type Notifier interface {
	Notify(events []types.ChangeEvent)
}

// Listener handles a single change event.
type Listener interface {
	OnChange(event types.ChangeEvent)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(types.ChangeEvent)

// OnChange calls f(event).
func (f ListenerFunc) OnChange(event types.ChangeEvent) {
	f(event)
}

type nop struct{}

func (nop) Notify([]types.ChangeEvent) {}

// Nop drops every event.
var Nop Notifier = nop{}

type subscription struct {
	id       uint64
	listener Listener
}

// Bus is a Notifier that forwards events to its subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
}

// NewBus creates a Bus without subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds l and returns a function that removes it again.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, listener: l})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.subs = slices.DeleteFunc(b.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

// Len returns the number of subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Notify delivers each event to every subscriber, events in order and
// subscribers in the order they subscribed.
func (b *Bus) Notify(events []types.ChangeEvent) {
	if len(events) == 0 {
		return
	}

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, e := range events {
		for _, s := range subs {
			s.listener.OnChange(e)
		}
	}
}

// Payload returns the wire form of an event:
// {"path": ..., "key": ..., "value": ...}. Removals carry a null value.
func Payload(event types.ChangeEvent) ([]byte, error) {
	return json.Marshal(event)
}

// NewLogListener logs every event at debug level.
func NewLogListener(logger zerolog.Logger) Listener {
	return ListenerFunc(func(e types.ChangeEvent) {
		logger.Debug().
			Str("event", ChangeEventName).
			Str("path", e.Path).
			Str("key", e.Key).
			Interface("value", e.Value).
			Bool("removed", e.IsRemoval()).
			Msg("Store changed")
	})
}

type envelope struct {
	Event   string            `json:"event"`
	Payload types.ChangeEvent `json:"payload"`
}

// JSONLinesListener writes one {"event": ..., "payload": ...} object per
// line to an io.Writer.
type JSONLinesListener struct {
	mu  sync.Mutex
	enc *json.Encoder
	err error
}

// NewJSONLinesListener creates a JSONLinesListener writing to w.
func NewJSONLinesListener(w io.Writer) *JSONLinesListener {
	return &JSONLinesListener{enc: json.NewEncoder(w)}
}

// OnChange implements Listener. Write failures are kept and reported by Err.
func (l *JSONLinesListener) OnChange(e types.ChangeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	l.err = l.enc.Encode(envelope{Event: ChangeEventName, Payload: e})
}

// Err returns the first write error, if any.
func (l *JSONLinesListener) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}
