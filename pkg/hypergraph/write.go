package hypergraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
)

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes the live state of d to JSON bytes.
func Marshal(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes the live state of d as JSON to w.
func Write(d *Document, w io.Writer) error {
	return writeTo(d, w)
}

// WriteFile serializes the live state of d to a JSON file.
func WriteFile(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(d, f)
}

func writeTo(d *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToFile(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// FromFile builds a document from its decoded persisted form, applying the
// same validation as [Parse].
func FromFile(f File) (*Document, []Warning, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, nil, fmt.Errorf("encode: %w", err)
	}
	return Parse(data)
}

// =============================================================================
// Conversion
// =============================================================================

// ToFile converts the live state of d to its persisted form. Synthetic
// texture-row entries are dropped.
func ToFile(d *Document) File {
	out := File{Hypergraph: FileDocument{
		Name:     d.Name,
		Vertices: toFileVertices(d.Vertices),
		Edges:    make([]FileEdge, 0, len(d.Edges)),
	}}
	if out.Hypergraph.Vertices == nil {
		out.Hypergraph.Vertices = []FileVertex{}
	}
	for _, e := range d.Edges {
		out.Hypergraph.Edges = append(out.Hypergraph.Edges, toFileEdge(e))
	}
	return out
}

func toFileVertices(vs []*Vertex) []FileVertex {
	var out []FileVertex
	for _, v := range vs {
		if v.Synthetic {
			continue
		}
		out = append(out, toFileVertex(v))
	}
	return out
}

func toFileVertex(v *Vertex) FileVertex {
	pos, size := v.Position, v.Size
	fv := FileVertex{
		ID:         v.ID,
		Name:       v.Name,
		Type:       string(v.Type),
		Attributes: slices.Clone(v.Attributes),
		Position:   &pos,
		Size:       &size,
		Vertices:   toFileVertices(v.Children),
	}
	switch v.Type {
	case Circle:
		fv.Radius, fv.Segments = ptr(v.Radius), ptr(v.Segments)
	case Ring:
		fv.InnerRadius, fv.OuterRadius, fv.ThetaSegments = ptr(v.InnerRadius), ptr(v.OuterRadius), ptr(v.ThetaSegments)
	}
	if v.Rendering != (VertexRendering{}) {
		r := cloneRendering(v.Rendering)
		fv.Rendering = &r
	}
	return fv
}

func toFileEdge(e *Edge) FileEdge {
	fe := FileEdge{
		IDs:           []string{e.IDs[0], e.IDs[1]},
		Text:          e.Text,
		Type:          string(e.Type),
		ControlPoints: slices.Clone(e.ControlPoints),
	}
	if e.Rendering != (EdgeRendering{}) {
		r := e.Rendering
		fe.Rendering = &r
	}
	return fe
}

func ptr[T any](v T) *T { return &v }
