package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hypergraph/pkg/errors"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// ToDOT converts a document to Graphviz DOT. Parents become clusters that
// hold a plaintext node carrying the parent's name, so edges attached to a
// parent have something to point at.
func ToDOT(d *hypergraph.Document) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, v := range d.Vertices {
		writeVertex(&buf, v, "  ")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		color, textColor := e.Rendering.Resolve()
		attrs := []string{fmt.Sprintf("color=%q", color)}
		if e.Text != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", e.Text), fmt.Sprintf("fontcolor=%q", textColor))
		}
		if e.Type != hypergraph.Line {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.IDs[0], e.IDs[1], strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeVertex(buf *bytes.Buffer, v *hypergraph.Vertex, indent string) {
	m := v.Rendering.Resolve()
	if !v.HasChildren() {
		attrs := []string{
			fmt.Sprintf("label=%q", vertexLabel(v)),
			fmt.Sprintf("fillcolor=%q", m.Color),
			fmt.Sprintf("fontcolor=%q", m.TextColor),
		}
		if v.Type != hypergraph.Rectangle {
			attrs = append(attrs, "shape=ellipse")
		}
		fmt.Fprintf(buf, "%s%q [%s];\n", indent, v.ID, strings.Join(attrs, ", "))
		return
	}

	fmt.Fprintf(buf, "%ssubgraph %q {\n", indent, "cluster_"+v.ID)
	inner := indent + "  "
	fmt.Fprintf(buf, "%slabel=%q;\n", inner, v.Name)
	fmt.Fprintf(buf, "%sstyle=\"rounded,filled\";\n", inner)
	fmt.Fprintf(buf, "%sfillcolor=%q;\n", inner, m.Color)
	fmt.Fprintf(buf, "%sfontcolor=%q;\n", inner, m.TextColor)
	fmt.Fprintf(buf, "%s%q [shape=plaintext, style=\"\", label=%q];\n", inner, v.ID, v.ID)
	for _, c := range v.RealChildren() {
		writeVertex(buf, c, inner)
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

func vertexLabel(v *hypergraph.Vertex) string {
	name := v.Name
	if name == "" {
		name = v.ID
	}
	if len(v.Attributes) == 0 {
		return name
	}
	parts := make([]string, 0, len(v.Attributes)+1)
	parts = append(parts, name)
	for _, a := range v.Attributes {
		parts = append(parts, a.Name)
	}
	return strings.Join(parts, "\n")
}

// RenderGraphviz renders a DOT graph with the embedded Graphviz build.
// Only FormatSVG and FormatPNG are supported.
func RenderGraphviz(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "graphviz cannot produce %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graphviz")
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
