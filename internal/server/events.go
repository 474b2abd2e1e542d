package server

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/hypergraph/pkg/engine"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/observability"
	"github.com/matzehuels/hypergraph/pkg/render"
)

// Event is one message on the event stream. Kind is "vertex", "edge",
// "label" or "reset".
type Event struct {
	Kind     string       `json:"-"`
	ID       string       `json:"id,omitempty"`
	Position *geom.Point  `json:"position,omitempty"`
	Size     *geom.Size   `json:"size,omitempty"`
	Points   []geom.Point `json:"points,omitempty"`
}

// EventReset tells clients to drop every visual before a new document.
const EventReset = "reset"

const defaultSubscriberBuffer = 1024

// Broker fans engine updates out to event-stream subscribers. It is an
// [engine.Host]. A subscriber that falls a full buffer behind is
// disconnected rather than allowed to block the engine; on reconnect it
// receives the current scene again.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]chan Event
	buffer int
	closed bool
	logger *log.Logger
}

// NewBroker creates a broker with the given per-subscriber buffer.
func NewBroker(buffer int, logger *log.Logger) *Broker {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Broker{subs: make(map[string]chan Event), buffer: buffer, logger: logger}
}

var _ engine.Host = (*Broker)(nil)

// Subscribe registers a new subscriber. The channel is closed when the
// subscriber is removed or the broker closes.
func (b *Broker) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs[id] = ch
	}
	n := len(b.subs)
	b.mu.Unlock()

	observability.Server().OnSubscribe(id, n)
	return id, ch
}

// Unsubscribe removes a subscriber. Unknown ids are ignored.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	ch, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
		close(ch)
	}
	n := len(b.subs)
	b.mu.Unlock()

	if ok {
		observability.Server().OnUnsubscribe(id, n)
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close disconnects every subscriber. Later subscriptions are closed
// immediately.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
	b.closed = true
}

// Reset broadcasts a reset event.
func (b *Broker) Reset() { b.publish(Event{Kind: EventReset}) }

// UpdateVertexVisual implements engine.Host.
func (b *Broker) UpdateVertexVisual(id string, position geom.Point, size geom.Size) {
	b.publish(Event{Kind: engine.VertexUpdate.String(), ID: id, Position: &position, Size: &size})
}

// UpdateEdgeVisual implements engine.Host.
func (b *Broker) UpdateEdgeVisual(id string, points []geom.Point) {
	b.publish(Event{Kind: engine.EdgeUpdate.String(), ID: id, Points: points})
}

// UpdateLabelVisual implements engine.Host.
func (b *Broker) UpdateLabelVisual(id string, position geom.Point) {
	b.publish(Event{Kind: engine.LabelUpdate.String(), ID: id, Position: &position})
}

func (b *Broker) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.logger.Warn("dropping slow subscriber", "subscriber", id)
			delete(b.subs, id)
			close(ch)
		}
	}
}

// snapshotEvents converts a scene snapshot into the events that rebuild it.
func snapshotEvents(s render.Snapshot, order []string) []Event {
	events := make([]Event, 0, len(s.Vertices)+len(s.Edges)+len(s.Labels))
	for _, id := range order {
		v, ok := s.Vertices[id]
		if !ok {
			continue
		}
		events = append(events, Event{Kind: engine.VertexUpdate.String(), ID: id, Position: &v.Position, Size: &v.Size})
	}
	for _, id := range sortedKeys(s.Edges) {
		events = append(events, Event{Kind: engine.EdgeUpdate.String(), ID: id, Points: s.Edges[id]})
	}
	for _, id := range sortedKeys(s.Labels) {
		p := s.Labels[id]
		events = append(events, Event{Kind: engine.LabelUpdate.String(), ID: id, Position: &p})
	}
	return events
}
