package editor

import (
	"fmt"
	"strings"
)

// Tool is the single active interaction tool.
type Tool int

const (
	ToolNone Tool = iota
	ToolDraw
	ToolErase
	ToolDrag
	ToolMarker
)

var toolNames = map[Tool]string{
	ToolNone:   "none",
	ToolDraw:   "draw",
	ToolErase:  "erase",
	ToolDrag:   "drag",
	ToolMarker: "marker",
}

func (t Tool) String() string {
	if s, ok := toolNames[t]; ok {
		return s
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool maps a tool name to a Tool. The host aliases "add-polygon" and
// "add-marker" are accepted as well.
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ToolNone, nil
	case "draw", "polygon", "add-polygon":
		return ToolDraw, nil
	case "erase":
		return ToolErase, nil
	case "drag", "move":
		return ToolDrag, nil
	case "marker", "add-marker":
		return ToolMarker, nil
	}
	return ToolNone, fmt.Errorf("unknown tool %q", s)
}

// ReadOnly is a set of independent read-only gates.
type ReadOnly uint8

const (
	ReadOnlyAll ReadOnly = 1 << iota
	ReadOnlyPolygon
	ReadOnlyMarker
)

// Has reports whether any of the gates in f are set.
func (r ReadOnly) Has(f ReadOnly) bool { return r&f != 0 }

func (r ReadOnly) String() string {
	var parts []string
	if r.Has(ReadOnlyAll) {
		parts = append(parts, "all")
	}
	if r.Has(ReadOnlyPolygon) {
		parts = append(parts, "polygon")
	}
	if r.Has(ReadOnlyMarker) {
		parts = append(parts, "marker")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Options converts the set back to its host facing form.
func (r ReadOnly) Options() ReadOnlyOptions {
	return ReadOnlyOptions{All: r.Has(ReadOnlyAll), Polygon: r.Has(ReadOnlyPolygon), Marker: r.Has(ReadOnlyMarker)}
}

// ReadOnlyOptions is the host facing form of the gates.
type ReadOnlyOptions struct {
	All     bool
	Polygon bool
	Marker  bool
}

// Bits converts the options into a ReadOnly set.
func (o ReadOnlyOptions) Bits() ReadOnly {
	var r ReadOnly
	if o.All {
		r |= ReadOnlyAll
	}
	if o.Polygon {
		r |= ReadOnlyPolygon
	}
	if o.Marker {
		r |= ReadOnlyMarker
	}
	return r
}

// Action is a mutation the gates arbitrate.
type Action int

const (
	ActionDraw Action = iota
	ActionResize
	ActionTranslate
	ActionErase
	ActionPlaceMarker
	ActionEditMarker
)

var actionNames = [...]string{"draw", "resize", "translate", "erase", "place-marker", "edit-marker"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Mode is the tool plus read-only state. Transitions return new values.
type Mode struct {
	Tool     Tool
	ReadOnly ReadOnly
}

// Select switches the active tool. Every tool can be selected from every
// state; the read-only gates decide what the tool may do.
func (m Mode) Select(t Tool) Mode {
	m.Tool = t
	return m
}

// WithReadOnly replaces the gate set.
func (m Mode) WithReadOnly(r ReadOnly) Mode {
	m.ReadOnly = r
	return m
}

// Allows reports whether the mode permits a. Constraints that live outside
// the mode, such as the inside-polygon marker option, are applied by the
// editor on top of this.
func (m Mode) Allows(a Action) bool {
	polygonLocked := m.ReadOnly.Has(ReadOnlyAll | ReadOnlyPolygon)
	markerLocked := m.ReadOnly.Has(ReadOnlyAll | ReadOnlyMarker)
	switch a {
	case ActionDraw:
		return m.Tool == ToolDraw && !polygonLocked
	case ActionResize:
		return !polygonLocked
	case ActionTranslate:
		return m.Tool == ToolDrag && !polygonLocked
	case ActionErase:
		return m.Tool == ToolErase && !polygonLocked
	case ActionPlaceMarker:
		return m.Tool == ToolMarker && !markerLocked
	case ActionEditMarker:
		return !markerLocked
	}
	return false
}

func (m Mode) String() string {
	return fmt.Sprintf("%s (read-only: %s)", m.Tool, m.ReadOnly)
}
