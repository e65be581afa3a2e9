package editor

import "testing"

func TestModeAllows(t *testing.T) {
	tests := []struct {
		name   string
		mode   Mode
		action Action
		want   bool
	}{
		{"draw with draw tool", Mode{Tool: ToolDraw}, ActionDraw, true},
		{"draw with erase tool", Mode{Tool: ToolErase}, ActionDraw, false},
		{"draw read-only polygon", Mode{Tool: ToolDraw, ReadOnly: ReadOnlyPolygon}, ActionDraw, false},
		{"draw read-only marker", Mode{Tool: ToolDraw, ReadOnly: ReadOnlyMarker}, ActionDraw, true},
		{"resize any tool", Mode{Tool: ToolMarker}, ActionResize, true},
		{"resize read-only all", Mode{ReadOnly: ReadOnlyAll}, ActionResize, false},
		{"translate drag tool", Mode{Tool: ToolDrag}, ActionTranslate, true},
		{"translate no tool", Mode{}, ActionTranslate, false},
		{"erase", Mode{Tool: ToolErase}, ActionErase, true},
		{"erase read-only all", Mode{Tool: ToolErase, ReadOnly: ReadOnlyAll}, ActionErase, false},
		{"place marker", Mode{Tool: ToolMarker}, ActionPlaceMarker, true},
		{"place marker read-only polygon", Mode{Tool: ToolMarker, ReadOnly: ReadOnlyPolygon}, ActionPlaceMarker, true},
		{"place marker read-only marker", Mode{Tool: ToolMarker, ReadOnly: ReadOnlyMarker}, ActionPlaceMarker, false},
		{"edit marker any tool", Mode{Tool: ToolDraw}, ActionEditMarker, true},
		{"edit marker read-only all", Mode{ReadOnly: ReadOnlyAll}, ActionEditMarker, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Allows(tt.action); got != tt.want {
				t.Errorf("%v.Allows(%v) = %v, want %v", tt.mode, tt.action, got, tt.want)
			}
		})
	}
}

func TestModeTransitionsArePure(t *testing.T) {
	m := Mode{Tool: ToolDraw}
	n := m.Select(ToolErase).WithReadOnly(ReadOnlyMarker)
	if m.Tool != ToolDraw || m.ReadOnly != 0 {
		t.Error("transition mutated the receiver")
	}
	if n.Tool != ToolErase || !n.ReadOnly.Has(ReadOnlyMarker) {
		t.Errorf("unexpected mode %v", n)
	}
}

func TestParseTool(t *testing.T) {
	cases := map[string]Tool{
		"":            ToolNone,
		"draw":        ToolDraw,
		"add-polygon": ToolDraw,
		"Erase":       ToolErase,
		"drag":        ToolDrag,
		"add-marker":  ToolMarker,
	}
	for in, want := range cases {
		got, err := ParseTool(in)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseTool("lasso"); err == nil {
		t.Error("expected unknown tool to fail")
	}
}

func TestReadOnlyOptionsBits(t *testing.T) {
	r := ReadOnlyOptions{Polygon: true, Marker: true}.Bits()
	if r.Has(ReadOnlyAll) || !r.Has(ReadOnlyPolygon) || !r.Has(ReadOnlyMarker) {
		t.Errorf("unexpected bits %v", r)
	}
	if r.String() != "polygon|marker" {
		t.Errorf("String() = %q", r.String())
	}
	if got := r.Options(); got != (ReadOnlyOptions{Polygon: true, Marker: true}) {
		t.Errorf("Options() = %+v", got)
	}
}
