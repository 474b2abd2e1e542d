package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/hypergraph/pkg/curve"
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

const (
	// DefaultScale is the number of pixels per layout unit.
	DefaultScale = 50.0
	// DefaultMargin is the pixel border around the drawing.
	DefaultMargin = 20

	anchorRadius = 3
	edgeWidth    = 2
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale     float64
	margin    int
	anchors   bool
	title     string
	segments  int
	resources *Resources
}

func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }
func WithMargin(px int) SVGOption   { return func(r *svgRenderer) { r.margin = px } }
func WithAnchors() SVGOption        { return func(r *svgRenderer) { r.anchors = true } }
func WithTitle(t string) SVGOption  { return func(r *svgRenderer) { r.title = t } }
func WithSegments(n int) SVGOption  { return func(r *svgRenderer) { r.segments = n } }

// WithResources shares a resource cache across renders.
func WithResources(c *Resources) SVGOption { return func(r *svgRenderer) { r.resources = c } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{scale: DefaultScale, margin: DefaultMargin, segments: curve.DefaultSegments}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = DefaultScale
	}
	if r.segments <= 0 {
		r.segments = curve.DefaultSegments
	}
	if r.resources == nil {
		r.resources = NewResources()
	}
	return r
}

// RenderSVG draws the top view of a laid-out document. World Y points up,
// so the drawing is flipped vertically. Edges use their live Start and End.
func RenderSVG(d *hypergraph.Document, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	vertices := d.AllVertices()
	edges := make([][]geom.Point, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = curve.Points(curve.ForEdge(e, e.Start, e.End), r.segments)
	}

	b := bounds(d, vertices, edges)
	proj := projection{scale: r.scale, margin: float64(r.margin), minX: b.minX, maxY: b.maxY}
	width := int(math.Ceil((b.maxX-b.minX)*r.scale)) + 2*r.margin
	height := int(math.Ceil((b.maxY-b.minY)*r.scale)) + 2*r.margin

	// Resolve names up front so the stylesheet and defs cover every use.
	type placed struct {
		v        *hypergraph.Vertex
		box      geom.Box
		material string
		geometry string
	}
	items := make([]placed, 0, len(vertices))
	for _, v := range vertices {
		items = append(items, placed{
			v:        v,
			box:      d.Box(v),
			material: r.resources.Material(v.Rendering),
			geometry: r.resources.Geometry(GeometryOf(v)),
		})
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	if r.title != "" {
		canvas.Title(r.title)
	}
	canvas.Style("text/css", stylesheet(r.resources.Materials()))

	canvas.Def()
	for i, g := range r.resources.Geometries() {
		canvas.Gid(fmt.Sprintf("g%d", i))
		drawGeometry(canvas, g, r.scale)
		canvas.Gend()
	}
	canvas.DefEnd()

	canvas.Gid("vertices")
	for _, it := range items {
		x, y := proj.point(it.box.Center)
		if it.v.Synthetic && it.v.Rendering.Texture != "" {
			w, h := proj.length(it.box.Size.Width), proj.length(it.box.Size.Height)
			canvas.Image(x-w/2, y-h/2, w, h, escapeAttr(it.v.Rendering.Texture), `preserveAspectRatio="none"`)
			continue
		}
		canvas.Use(x, y, "#"+it.geometry, fmt.Sprintf(`class="%s"`, it.material), fmt.Sprintf(`id="v-%s"`, escapeAttr(it.v.ID)))
	}
	canvas.Gend()

	canvas.Gid("edges")
	for i, e := range d.Edges {
		color, _ := e.Rendering.Resolve()
		xs, ys := proj.points(edges[i])
		canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", color, edgeWidth))
	}
	canvas.Gend()

	canvas.Gid("text")
	for _, it := range items {
		if it.v.Synthetic {
			continue
		}
		drawVertexText(canvas, proj, it.v, it.box)
	}
	for _, e := range d.Edges {
		if e.Text == "" {
			continue
		}
		_, textColor := e.Rendering.Resolve()
		x, y := proj.point(e.Label)
		canvas.Text(x, y, e.Text, "text-anchor:middle;font-size:12px;fill:"+textColor)
	}
	canvas.Gend()

	if r.anchors {
		canvas.Gid("anchors")
		for _, it := range items {
			if it.v.Synthetic {
				continue
			}
			a := geom.AnchorsOf(it.box)
			for _, dir := range geom.Directions {
				p, _ := a.Get(dir)
				x, y := proj.point(p)
				canvas.Circle(x, y, anchorRadius, `class="anchor"`)
			}
		}
		canvas.Gend()
	}

	canvas.End()
	return buf.Bytes()
}

// =============================================================================
// Projection
// =============================================================================

type extent struct{ minX, minY, maxX, maxY float64 }

func (e *extent) add(x, y float64) {
	e.minX, e.maxX = math.Min(e.minX, x), math.Max(e.maxX, x)
	e.minY, e.maxY = math.Min(e.minY, y), math.Max(e.maxY, y)
}

func bounds(d *hypergraph.Document, vertices []*hypergraph.Vertex, edges [][]geom.Point) extent {
	e := extent{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	for _, v := range vertices {
		b := d.Box(v)
		e.add(b.MinX(), b.MinY())
		e.add(b.MaxX(), b.MaxY())
	}
	for _, pts := range edges {
		for _, p := range pts {
			if p.IsFinite() {
				e.add(p.X, p.Y)
			}
		}
	}
	if math.IsInf(e.minX, 1) {
		return extent{}
	}
	return e
}

type projection struct {
	scale, margin float64
	minX, maxY    float64
}

func (p projection) point(q geom.Point) (int, int) {
	x := (q.X-p.minX)*p.scale + p.margin
	y := (p.maxY-q.Y)*p.scale + p.margin
	return int(math.Round(x)), int(math.Round(y))
}

func (p projection) length(v float64) int { return int(math.Round(v * p.scale)) }

func (p projection) points(pts []geom.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, q := range pts {
		xs[i], ys[i] = p.point(q)
	}
	return xs, ys
}

// =============================================================================
// Drawing
// =============================================================================

func stylesheet(materials []hypergraph.Material) string {
	var sb strings.Builder
	sb.WriteString("\n    text { font-family: sans-serif; }\n")
	sb.WriteString("    .anchor { fill: #ff4136; stroke: none; }\n")
	for i, m := range materials {
		fill := m.Color
		if m.Wireframe {
			fill = "none"
		}
		fmt.Fprintf(&sb, "    .m%d { fill: %s; stroke: %s; stroke-width: 1;", i, fill, m.Color)
		if m.Transparent {
			fmt.Fprintf(&sb, " fill-opacity: %.2f;", m.Opacity)
		}
		sb.WriteString(" }\n")
	}
	return sb.String()
}

// drawGeometry emits a shape centered on the origin.
func drawGeometry(canvas *svg.SVG, g Geometry, scale float64) {
	px := func(v float64) int { return int(math.Round(v * scale)) }
	switch g.Type {
	case hypergraph.Circle:
		canvas.Circle(0, 0, px(g.Radius))
	case hypergraph.Ring:
		mid := (g.InnerRadius + g.OuterRadius) / 2
		canvas.Circle(0, 0, px(mid), fmt.Sprintf("fill:none;stroke-width:%d", max(px(g.OuterRadius-g.InnerRadius), 1)))
	default:
		w, h := px(g.Width), px(g.Height)
		canvas.Rect(-w/2, -h/2, w, h)
	}
}

// drawVertexText writes the name on the top edge of the box and the
// attribute rows beneath it.
func drawVertexText(canvas *svg.SVG, proj projection, v *hypergraph.Vertex, box geom.Box) {
	m := v.Rendering.Resolve()
	x, top := proj.point(geom.Pt(box.Center.X, box.MaxY(), 0))
	if v.Type != hypergraph.Rectangle {
		_, top = proj.point(box.Center)
	}
	const lineHeight = 14
	y := top + lineHeight
	if v.Name != "" {
		canvas.Text(x, y, v.Name, "text-anchor:middle;font-size:12px;font-weight:bold;fill:"+m.TextColor)
		y += lineHeight
	}
	if v.HasChildren() {
		return
	}
	for _, a := range v.Attributes {
		color := a.TextColor
		if color == "" {
			color = m.TextColor
		}
		canvas.Text(x, y, a.Name, "text-anchor:middle;font-size:10px;fill:"+color)
		y += lineHeight
	}
}

func escapeAttr(s string) string {
	return strings.NewReplacer(`&`, "&amp;", `"`, "&quot;", `<`, "&lt;", `>`, "&gt;").Replace(s)
}
