package geom

// Size is the extent of an axis-aligned bounding box.
type Size struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool { return s.Width == 0 && s.Height == 0 }

// Valid reports whether both dimensions are finite and non-negative.
func (s Size) Valid() bool {
	return isFinite(s.Width) && isFinite(s.Height) && s.Width >= 0 && s.Height >= 0
}

// Box is an axis-aligned box centered on Center.
type Box struct {
	Center Point
	Size   Size
}

// HalfWidth returns half the box width.
func (b Box) HalfWidth() float64 { return b.Size.Width / 2 }

// HalfHeight returns half the box height.
func (b Box) HalfHeight() float64 { return b.Size.Height / 2 }

// MinX returns the left edge.
func (b Box) MinX() float64 { return b.Center.X - b.HalfWidth() }

// MaxX returns the right edge.
func (b Box) MaxX() float64 { return b.Center.X + b.HalfWidth() }

// MinY returns the bottom edge.
func (b Box) MinY() float64 { return b.Center.Y - b.HalfHeight() }

// MaxY returns the top edge.
func (b Box) MaxY() float64 { return b.Center.Y + b.HalfHeight() }

// Overlaps reports whether b and o intersect with positive area in the XY plane.
func (b Box) Overlaps(o Box) bool {
	return b.MinX() < o.MaxX() && o.MinX() < b.MaxX() &&
		b.MinY() < o.MaxY() && o.MinY() < b.MaxY()
}

// OverlapArea returns the area of the XY intersection of b and o.
func (b Box) OverlapArea(o Box) float64 {
	w := min(b.MaxX(), o.MaxX()) - max(b.MinX(), o.MinX())
	h := min(b.MaxY(), o.MaxY()) - max(b.MinY(), o.MinY())
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Contains reports whether o lies entirely within b in the XY plane.
func (b Box) Contains(o Box) bool {
	const eps = 1e-9
	return o.MinX() >= b.MinX()-eps && o.MaxX() <= b.MaxX()+eps &&
		o.MinY() >= b.MinY()-eps && o.MaxY() <= b.MaxY()+eps
}
