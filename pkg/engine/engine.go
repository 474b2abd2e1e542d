package engine

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypergraph/pkg/connect"
	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/label"
	"github.com/matzehuels/hypergraph/pkg/layout"
	"github.com/matzehuels/hypergraph/pkg/observability"
	"github.com/matzehuels/hypergraph/pkg/overlap"
)

// State is the interaction state of an Engine.
type State int

// Engine states.
const (
	Idle State = iota
	Dragging
)

// String returns the state name.
func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Engine orchestrates layout and drag updates for one document at a time.
type Engine struct {
	host   Host
	opts   Options
	logger *log.Logger

	passMu    sync.Mutex // serializes mutating passes
	publishMu sync.Mutex // orders commits with their host notifications

	mu         sync.Mutex
	doc        *hypergraph.Document
	generation uint64
	state      State
	dragged    string
}

// New creates an engine that reports to host. A nil host discards updates.
func New(host Host, opts Options) *Engine {
	opts.SetDefaults()
	if host == nil {
		host = NopHost{}
	}
	return &Engine{host: host, opts: opts, logger: opts.Logger}
}

// =============================================================================
// Document Lifecycle
// =============================================================================

// Load parses raw, replaces the current document and publishes the full
// scene. Skipped entities are logged and returned as warnings.
func (e *Engine) Load(raw []byte) ([]hypergraph.Warning, error) {
	d, warnings, err := hypergraph.Parse(raw)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		e.logger.Warn("skipping entity", "entity", w.Entity, "ref", w.Ref, "reason", errors.UserMessage(w.Err))
	}
	e.LoadDocument(d)
	return warnings, nil
}

// LoadDocument replaces the current document with d. The engine takes
// ownership of d: it is grid-packed, settled and published. Any drag in
// progress is abandoned and pending passes against the previous document
// are discarded. A host implementing [Resetter] is reset first, so no
// update for the previous document reaches it afterwards.
func (e *Engine) LoadDocument(d *hypergraph.Document) {
	start := time.Now()
	parents := layout.Apply(d, e.opts.Layout)
	b := newBatch()
	corrections := e.settle(d, "", b)
	d.Walk(b.vertexUpdate)

	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	e.doc = d
	e.generation++
	gen := e.generation
	e.state = Idle
	e.dragged = ""
	e.mu.Unlock()

	e.logger.Debug("document loaded",
		"name", d.Name, "vertices", d.Len(), "edges", len(d.Edges),
		"parents", parents, "corrections", corrections,
		"residual_overlap", overlap.Residual(d.Vertices), "elapsed", time.Since(start))
	observability.Engine().OnDocumentLoaded(d.Name, gen)
	if r, ok := e.host.(Resetter); ok {
		r.Reset()
	}
	e.publish(b.updates)
}

// Document returns a copy of the current document.
func (e *Engine) Document() (*hypergraph.Document, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	return e.doc.Clone(), nil
}

// Serialize returns the persisted form of the live document.
func (e *Engine) Serialize() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil, errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	return hypergraph.Marshal(e.doc)
}

// Anchors returns the world-space anchors of vertex id, for hosts that draw
// endpoint markers.
func (e *Engine) Anchors(id string) (geom.Anchors, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return geom.Anchors{}, errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	v, ok := e.doc.Vertex(id)
	if !ok {
		return geom.Anchors{}, errors.New(errors.ErrCodeVertexNotFound, "vertex %q not found", id)
	}
	return e.doc.Anchors(v), nil
}

// State returns the interaction state and the dragged vertex id.
func (e *Engine) State() (State, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.dragged
}

// Generation returns a counter that increases every time a document is
// loaded. Zero means no document has been loaded.
func (e *Engine) Generation() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// Republish sends the full current scene to the host again.
func (e *Engine) Republish() error {
	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	b := newBatch()
	e.doc.Walk(b.vertexUpdate)
	for _, edge := range e.doc.Edges {
		b.edgeUpdate(edge, curve.Points(curve.ForEdge(edge, edge.Start, edge.End), e.opts.Segments))
	}
	for _, edge := range e.doc.Edges {
		if edge.Text != "" {
			b.labelUpdate(edge)
		}
	}
	e.mu.Unlock()

	e.publish(b.updates)
	return nil
}

func (e *Engine) publish(updates []Update) {
	for _, u := range updates {
		u.Apply(e.host)
	}
}

// =============================================================================
// Passes
// =============================================================================

// pass runs fn on a copy of the current document and commits the copy if
// the document was not replaced meanwhile. check runs under the state lock
// before the copy is taken; commit runs under the state lock on success.
func (e *Engine) pass(check func() error, fn func(d *hypergraph.Document, b *batch) error, commit func()) error {
	e.passMu.Lock()
	defer e.passMu.Unlock()

	e.mu.Lock()
	if e.doc == nil {
		e.mu.Unlock()
		return errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	if err := check(); err != nil {
		e.mu.Unlock()
		return err
	}
	gen := e.generation
	work := e.doc.Clone()
	e.mu.Unlock()

	b := newBatch()
	if err := fn(work, b); err != nil {
		return err
	}

	e.publishMu.Lock()
	defer e.publishMu.Unlock()

	e.mu.Lock()
	if e.generation != gen {
		e.mu.Unlock()
		e.logger.Debug("discarding pass against replaced document", "generation", gen)
		return errors.New(errors.ErrCodeStaleDocument, "document was replaced during the pass")
	}
	e.doc = work
	if commit != nil {
		commit()
	}
	e.mu.Unlock()

	e.publish(b.updates)
	return nil
}

// rebuildEdges reconnects every edge of d with moved as the reference.
func (e *Engine) rebuildEdges(d *hypergraph.Document, moved string, b *batch) {
	for _, edge := range d.Edges {
		r, pts := connect.Rebuild(d, edge, moved, e.opts.Segments)
		if r.Fallback {
			e.logger.Debug("edge using vertex centers", "edge", edge.ID, "ids", edge.IDs)
		}
		b.edgeUpdate(edge, pts)
	}
}

// resolveOverlaps runs one overlap pass and records moved vertices.
func (e *Engine) resolveOverlaps(d *hypergraph.Document, buffer float64, b *batch) int {
	corrections := overlap.Resolve(d.Vertices, buffer)
	for _, c := range corrections {
		for _, id := range [2]string{c.A, c.B} {
			if v, ok := d.Vertex(id); ok {
				b.vertexUpdate(v)
			}
		}
	}
	return len(corrections)
}

func (e *Engine) refreshLabels(d *hypergraph.Document, b *batch) {
	for _, edge := range label.Update(d, e.opts.LabelBuffer) {
		b.labelUpdate(edge)
	}
}

// settle runs the end-of-interaction settlement: one coarse overlap pass,
// then a coarse and a fine pass per top-level vertex, then every edge and
// label is rebuilt with reference as the moved vertex.
func (e *Engine) settle(d *hypergraph.Document, reference string, b *batch) int {
	n := e.resolveOverlaps(d, e.opts.CheckBuffer, b)
	for range d.Vertices {
		n += e.resolveOverlaps(d, e.opts.CheckBuffer, b)
		n += e.resolveOverlaps(d, e.opts.AdjustBuffer, b)
	}
	e.rebuildEdges(d, reference, b)
	e.refreshLabels(d, b)
	return n
}
