package layout

import (
	"github.com/matzehuels/hypergraph/pkg/geom"
	"github.com/matzehuels/hypergraph/pkg/hypergraph"
)

// Options configures grid packing.
type Options struct {
	PaddingW float64
	PaddingH float64
}

// SetDefaults fills zero paddings with the defaults.
func (o *Options) SetDefaults() {
	if o.PaddingW == 0 {
		o.PaddingW = DefaultPaddingW
	}
	if o.PaddingH == 0 {
		o.PaddingH = DefaultPaddingH
	}
}

// Apply grid-packs every parent in d, innermost first, and returns the
// number of parents laid out.
func Apply(d *hypergraph.Document, opts Options) int {
	opts.SetDefaults()
	count := 0
	var walk func(v *hypergraph.Vertex)
	walk = func(v *hypergraph.Vertex) {
		for _, c := range v.Children {
			if !c.Synthetic {
				walk(c)
			}
		}
		if Children(v, opts.PaddingW, opts.PaddingH) {
			count++
		}
	}
	for _, v := range d.Vertices {
		walk(v)
	}
	d.Reindex()
	return count
}

// Children grid-packs the children of parent and resizes parent to fit.
// It reports whether a layout was applied; parents without authored
// children keep their size.
//
// Every child is resized to the average child size, raised where needed so
// that a child holding its own grid still contains it. A parent with a texture
// gets a synthetic texture entry as its first child, reusing the existing
// one on repeated layouts.
func Children(parent *hypergraph.Vertex, paddingW, paddingH float64) bool {
	children := parent.RealChildren()
	n := len(children)
	if n == 0 {
		parent.Children = children
		parent.NumChildren = 0
		return false
	}

	var total geom.Size
	for _, c := range children {
		total.Width += c.Size.Width
		total.Height += c.Size.Height
	}
	avg := geom.Size{Width: total.Width / float64(n), Height: total.Height / float64(n)}

	// A nested parent never shrinks below the grid it already holds.
	cell := avg
	for _, c := range children {
		if c.HasChildren() {
			cell.Width = max(cell.Width, c.Size.Width)
			cell.Height = max(cell.Height, c.Size.Height)
		}
	}

	texture := parent.Rendering.Texture != ""
	slots := n
	if texture {
		slots++
	}
	g := Plan(slots, cell, paddingW, paddingH, texture)

	parent.Size = g.Size
	parent.NumChildren = slots

	for i, c := range children {
		center := g.CellCenter(i)
		c.Position.X, c.Position.Y = center.X, center.Y
		c.Size = cell
		c.ParentID = parent.ID
	}

	if texture {
		tex := parent.TextureChild()
		if tex == nil {
			tex = &hypergraph.Vertex{ID: hypergraph.TextureID, Type: hypergraph.Rectangle, Synthetic: true}
		}
		tex.ParentID = parent.ID
		tex.Position = g.TextureCenter()
		tex.Size = cell
		tex.Rendering = hypergraph.VertexRendering{Color: TextureColor, Texture: parent.Rendering.Texture}
		children = append([]*hypergraph.Vertex{tex}, children...)
	}
	parent.Children = children
	return true
}
