// Package geometry holds the value types edited by polyzone: points,
// polygons, markers and the document that groups them.
package geometry

import (
	"math"

	"github.com/peterstace/simplefeatures/geom"
)

// Point is a position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) Scale(f float64) Point { return Point{X: p.X * f, Y: p.Y * f} }

// Distance returns the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polygon is a closed shape. Points are stored in the polygon's own frame;
// Offset translates the whole shape on the surface.
type Polygon struct {
	Points  []Point
	Fill    string
	Opacity float64
	Offset  Point
}

// Clone returns a deep copy.
func (p Polygon) Clone() Polygon {
	c := p
	c.Points = append([]Point(nil), p.Points...)
	return c
}

// Absolute returns the vertices with the offset applied.
func (p Polygon) Absolute() []Point {
	out := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		out[i] = pt.Add(p.Offset)
	}
	return out
}

// Validate reports whether the polygon can be committed to a document.
func (p Polygon) Validate() error {
	if len(p.Points) < 3 {
		return ErrDegeneratePolygon
	}
	for _, pt := range p.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			return ErrInvalidCoordinate
		}
	}
	if p.Opacity < 0 || p.Opacity > 1 {
		return ErrOpacityRange
	}
	return nil
}

// Bounds returns the axis aligned box of the absolute vertices.
func (p Polygon) Bounds() (lo, hi Point) {
	abs := p.Absolute()
	if len(abs) == 0 {
		return Point{}, Point{}
	}
	lo, hi = abs[0], abs[0]
	for _, pt := range abs[1:] {
		lo.X = math.Min(lo.X, pt.X)
		lo.Y = math.Min(lo.Y, pt.Y)
		hi.X = math.Max(hi.X, pt.X)
		hi.Y = math.Max(hi.Y, pt.Y)
	}
	return lo, hi
}

// Centroid is the mean of the absolute vertices.
func (p Polygon) Centroid() Point {
	abs := p.Absolute()
	if len(abs) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range abs {
		c = c.Add(pt)
	}
	return c.Scale(1 / float64(len(abs)))
}

func (p Polygon) ring(opts ...geom.ConstructorOption) (geom.Polygon, error) {
	abs := p.Absolute()
	coords := make([]float64, 0, 2*(len(abs)+1))
	for _, pt := range abs {
		coords = append(coords, pt.X, pt.Y)
	}
	coords = append(coords, abs[0].X, abs[0].Y)
	ls, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY), opts...)
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{ls}, opts...)
}

// Contains reports whether pt, in surface coordinates, lies inside or on
// the boundary of the polygon. Self-intersecting rings use the non-zero
// winding rule, matching how they are painted.
func (p Polygon) Contains(pt Point) bool {
	if len(p.Points) < 3 {
		return false
	}
	shape, err := p.ring()
	if err != nil {
		return windingContains(p.Absolute(), pt)
	}
	probe, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: pt.X, Y: pt.Y}, Type: geom.DimXY})
	if err != nil {
		return false
	}
	return geom.Intersects(shape.AsGeometry(), probe.AsGeometry())
}

// windingContains is the non-zero winding test with the boundary counted
// as inside.
func windingContains(ring []Point, pt Point) bool {
	winding := 0
	for i, a := range ring {
		b := ring[(i+1)%len(ring)]
		if onSegment(a, b, pt) {
			return true
		}
		cross := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
		switch {
		case a.Y <= pt.Y && b.Y > pt.Y && cross > 0:
			winding++
		case a.Y > pt.Y && b.Y <= pt.Y && cross < 0:
			winding--
		}
	}
	return winding != 0
}

func onSegment(a, b, pt Point) bool {
	const eps = 1e-9
	cross := (b.X-a.X)*(pt.Y-a.Y) - (pt.X-a.X)*(b.Y-a.Y)
	if math.Abs(cross) > eps*math.Max(1, a.Distance(b)) {
		return false
	}
	return pt.X >= math.Min(a.X, b.X)-eps && pt.X <= math.Max(a.X, b.X)+eps &&
		pt.Y >= math.Min(a.Y, b.Y)-eps && pt.Y <= math.Max(a.Y, b.Y)+eps
}

// Area is the enclosed surface area, zero for degenerate shapes. Rings that
// cross themselves are measured without validation, so lobes of opposite
// orientation offset each other.
func (p Polygon) Area() float64 {
	if len(p.Points) < 3 {
		return 0
	}
	shape, err := p.ring(geom.DisableAllValidations)
	if err != nil {
		return 0
	}
	return shape.Area()
}

// Marker is a pin dropped on the surface. The offset is the top-left of the
// pin glyph, already adjusted by the anchor at placement time.
type Marker struct {
	ID      string
	OffsetX float64
	OffsetY float64
}

// Position returns the stored offset as a point.
func (m Marker) Position() Point { return Point{X: m.OffsetX, Y: m.OffsetY} }

// Document is the full editable content of one image.
type Document struct {
	Polygons []Polygon
	Markers  []Marker
}

// Clone returns a deep copy with non-nil slices.
func (d Document) Clone() Document {
	out := Document{
		Polygons: make([]Polygon, len(d.Polygons)),
		Markers:  make([]Marker, len(d.Markers)),
	}
	for i, p := range d.Polygons {
		out.Polygons[i] = p.Clone()
	}
	copy(out.Markers, d.Markers)
	return out
}

// Validate checks every polygon and reports the first offender.
func (d Document) Validate() error {
	for i, p := range d.Polygons {
		if err := p.Validate(); err != nil {
			return &ValidationError{Index: i, Err: err}
		}
	}
	return nil
}
