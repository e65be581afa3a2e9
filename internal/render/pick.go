package render

import (
	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/geometry"
)

// Pick hit-tests p, given in unscaled surface coordinates, against what is
// drawn. The topmost item wins.
func (c *Canvas) Pick(p geometry.Point) editor.Target {
	if c.preview != nil {
		for i := len(c.preview.Points) - 1; i >= 0; i-- {
			if c.nearHandle(c.preview.Points[i], p) {
				return editor.Target{Kind: editor.TargetPreviewVertex, Vertex: i}
			}
		}
	}
	if c.top == editor.LayerMarkers {
		if t, ok := c.pickMarker(p); ok {
			return t
		}
		if t, ok := c.pickPolygon(p); ok {
			return t
		}
	} else {
		if t, ok := c.pickPolygon(p); ok {
			return t
		}
		if t, ok := c.pickMarker(p); ok {
			return t
		}
	}
	size := c.Size()
	if p.X < 0 || p.Y < 0 || p.X >= float64(size.X) || p.Y >= float64(size.Y) {
		return editor.Target{}
	}
	return editor.Target{Kind: editor.TargetSurface}
}

// FromWindow converts a point in rendered pixels to surface coordinates.
func (c *Canvas) FromWindow(x, y float64) geometry.Point {
	return geometry.Pt(x/c.scale, y/c.scale)
}

func (c *Canvas) nearHandle(handle, p geometry.Point) bool {
	return handle.Distance(p) <= handleRadius+pickSlack/c.scale
}

func (c *Canvas) pickMarker(p geometry.Point) (editor.Target, bool) {
	for i := len(c.markers) - 1; i >= 0; i-- {
		m := c.markers[i]
		if p.X >= m.at.X && p.X <= m.at.X+pinWidth*pinScale &&
			p.Y >= m.at.Y && p.Y <= m.at.Y+pinHeight*pinScale {
			return editor.Target{Kind: editor.TargetMarker, Handle: m.h}, true
		}
	}
	return editor.Target{}, false
}

func (c *Canvas) pickPolygon(p geometry.Point) (editor.Target, bool) {
	if c.handlesVisible() {
		for i := len(c.polygons) - 1; i >= 0; i-- {
			n := c.polygons[i]
			for v, pt := range n.poly.Absolute() {
				if c.nearHandle(pt, p) {
					return editor.Target{Kind: editor.TargetVertex, Handle: n.h, Vertex: v}, true
				}
			}
		}
	}
	for i := len(c.polygons) - 1; i >= 0; i-- {
		n := c.polygons[i]
		if n.poly.Contains(p) {
			return editor.Target{Kind: editor.TargetPolygon, Handle: n.h}, true
		}
	}
	return editor.Target{}, false
}
