package engine

import (
	"time"

	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
	"github.com/matzehuels/hypergraph/pkg/observability"
	"github.com/matzehuels/hypergraph/pkg/overlap"
)

// DragStart begins dragging vertex id.
func (e *Engine) DragStart(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return errors.New(errors.ErrCodeNoDocument, "no document loaded")
	}
	if e.state == Dragging {
		return errors.New(errors.ErrCodeDragInProgress, "vertex %q is already being dragged", e.dragged)
	}
	if _, ok := e.doc.Vertex(id); !ok {
		return errors.New(errors.ErrCodeVertexNotFound, "vertex %q not found", id)
	}
	e.state = Dragging
	e.dragged = id
	e.logger.Debug("drag start", "vertex", id, "edges", len(e.doc.EdgesTouching(id)))
	observability.Engine().OnDragStart(id)
	return nil
}

// DragTick moves the dragged vertex to (x, y) in its parent's frame and
// runs one update step: the vertex is flattened to z=0, every edge is
// reconnected, a coarse and a fine overlap pass run, and labels are
// refreshed.
func (e *Engine) DragTick(id string, x, y float64) error {
	start := time.Now()
	corrections := 0
	err := e.pass(
		func() error { return e.checkDragging(id) },
		func(d *hypergraph.Document, b *batch) error {
			v, ok := d.Vertex(id)
			if !ok {
				return errors.New(errors.ErrCodeVertexNotFound, "vertex %q not found", id)
			}
			v.Position = geom.Point{X: x, Y: y, Z: 0}
			b.vertexUpdate(v)

			e.rebuildEdges(d, id, b)
			corrections += e.resolveOverlaps(d, e.opts.CheckBuffer, b)
			corrections += e.resolveOverlaps(d, e.opts.AdjustBuffer, b)
			e.refreshLabels(d, b)
			return nil
		},
		nil,
	)
	if err != nil {
		return err
	}
	observability.Engine().OnDragTick(id, corrections, time.Since(start))
	return nil
}

// DragEnd finishes the current drag and settles the whole document.
func (e *Engine) DragEnd() error {
	start := time.Now()
	var id string
	corrections := 0
	residual := 0.0
	err := e.pass(
		func() error {
			if e.state != Dragging {
				return errors.New(errors.ErrCodeNotDragging, "no drag in progress")
			}
			id = e.dragged
			return nil
		},
		func(d *hypergraph.Document, b *batch) error {
			corrections = e.settle(d, id, b)
			residual = overlap.Residual(d.Vertices)
			return nil
		},
		func() {
			e.state = Idle
			e.dragged = ""
		},
	)
	if err != nil {
		return err
	}
	e.logger.Debug("drag end", "vertex", id, "corrections", corrections,
		"residual_overlap", residual, "elapsed", time.Since(start))
	observability.Engine().OnDragEnd(id, corrections, time.Since(start))
	return nil
}

// DragTo simulates a complete drag of vertex id to the target position in
// steps evenly spaced ticks.
func (e *Engine) DragTo(id string, to geom.Point, steps int) error {
	if steps < 1 {
		steps = 1
	}
	d, err := e.Document()
	if err != nil {
		return err
	}
	v, ok := d.Vertex(id)
	if !ok {
		return errors.New(errors.ErrCodeVertexNotFound, "vertex %q not found", id)
	}
	from := v.Position

	if err := e.DragStart(id); err != nil {
		return err
	}
	for i := 1; i <= steps; i++ {
		p := from.Lerp(to, float64(i)/float64(steps))
		if err := e.DragTick(id, p.X, p.Y); err != nil {
			e.abandonDrag()
			return err
		}
	}
	return e.DragEnd()
}

// checkDragging runs under e.mu.
func (e *Engine) checkDragging(id string) error {
	if e.state != Dragging {
		return errors.New(errors.ErrCodeNotDragging, "no drag in progress")
	}
	if e.dragged != id {
		return errors.New(errors.ErrCodeInvalidInput, "vertex %q is not being dragged (dragging %q)", id, e.dragged)
	}
	return nil
}

func (e *Engine) abandonDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Idle
	e.dragged = ""
}
