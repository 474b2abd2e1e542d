package layout

import (
	"math"

	"github.com/matzehuels/hypergraph/pkg/geom"
)

// Default paddings between grid cells and around the grid.
const (
	DefaultPaddingW = 0.2
	DefaultPaddingH = 0.6
)

// TextureColor is the color of the synthetic texture-row entry.
const TextureColor = "#FFFFFF"

// Grid describes the packing of n slots of equal size.
type Grid struct {
	Slots    int       // number of slots, texture included
	Columns  int       // ceil(sqrt(Slots))
	Rows     int       // ceil(Slots / Columns)
	Cell     geom.Size // size of every slot
	Padding  geom.Size // horizontal and vertical padding
	Texture  bool      // whether a texture row is reserved
	GridSize geom.Size // footprint of the regular grid
	Size     geom.Size // resulting parent size
}

// Plan computes the grid for slots entries of size cell. slots must be
// positive and already include the texture slot when texture is set.
func Plan(slots int, cell geom.Size, paddingW, paddingH float64, texture bool) Grid {
	cols := int(math.Ceil(math.Sqrt(float64(slots))))
	rows := int(math.Ceil(float64(slots) / float64(cols)))

	g := Grid{
		Slots:   slots,
		Columns: cols,
		Rows:    rows,
		Cell:    cell,
		Padding: geom.Size{Width: paddingW, Height: paddingH},
		Texture: texture,
	}
	g.GridSize = geom.Size{
		Width:  float64(cols)*cell.Width + float64(cols-1)*paddingW,
		Height: float64(rows)*cell.Height + float64(rows-1)*paddingH,
	}
	g.Size = geom.Size{
		Width:  g.GridSize.Width + 2*paddingW,
		Height: g.GridSize.Height + 2*paddingH + g.textureBand(),
	}
	return g
}

func (g Grid) textureBand() float64 {
	if !g.Texture {
		return 0
	}
	return g.Cell.Height + g.Padding.Height
}

// TextureCenter returns the center of the texture row relative to the
// parent's center.
func (g Grid) TextureCenter() geom.Point {
	return geom.Point{Y: g.Size.Height/2 - g.Padding.Height - g.Cell.Height/2}
}

// CellCenter returns the center of the i-th regular child, in row-major
// order, relative to the parent's center.
func (g Grid) CellCenter(i int) geom.Point {
	row, col := i/g.Columns, i%g.Columns
	top := g.Size.Height/2 - g.Padding.Height - g.textureBand()
	return geom.Point{
		X: -g.GridSize.Width/2 + g.Cell.Width/2 + float64(col)*(g.Cell.Width+g.Padding.Width),
		Y: top - g.Cell.Height/2 - float64(row)*(g.Cell.Height+g.Padding.Height),
	}
}
