package geom

import "fmt"

// Direction names one of the four cardinal anchors on a vertex boundary.
type Direction int

const (
	// None marks an unresolved anchor.
	None Direction = iota
	North
	South
	East
	West
)

// Directions lists the anchors in search order. Ties in nearest-anchor
// searches are broken by this order.
var Directions = [4]Direction{North, South, East, West}

// String returns the lowercase anchor name used in logs and wire formats.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return "none"
	}
}

// Opposite returns the paired anchor: north↔south, east↔west.
// None has no opposite and returns None.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return None
	}
}

// ParseDirection parses an anchor name produced by String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", s)
}

// Anchors holds the four boundary attachment points of a box.
type Anchors struct {
	North Point `json:"north"`
	South Point `json:"south"`
	East  Point `json:"east"`
	West  Point `json:"west"`
}

// AnchorsOf computes the four anchors of b. The anchors share the center's Z.
func AnchorsOf(b Box) Anchors {
	c := b.Center
	hw, hh := b.HalfWidth(), b.HalfHeight()
	return Anchors{
		North: Point{X: c.X, Y: c.Y + hh, Z: c.Z},
		South: Point{X: c.X, Y: c.Y - hh, Z: c.Z},
		East:  Point{X: c.X + hw, Y: c.Y, Z: c.Z},
		West:  Point{X: c.X - hw, Y: c.Y, Z: c.Z},
	}
}

// Get returns the anchor for d. The second result is false for None.
func (a Anchors) Get(d Direction) (Point, bool) {
	switch d {
	case North:
		return a.North, true
	case South:
		return a.South, true
	case East:
		return a.East, true
	case West:
		return a.West, true
	default:
		return Point{}, false
	}
}

// IsFinite reports whether all four anchors are finite.
func (a Anchors) IsFinite() bool {
	return a.North.IsFinite() && a.South.IsFinite() && a.East.IsFinite() && a.West.IsFinite()
}
