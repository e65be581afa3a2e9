package geometry

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func square(offset Point) Polygon {
	return Polygon{
		Points:  []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Fill:    "#FF0000",
		Opacity: 0.4,
		Offset:  offset,
	}
}

func TestPolygonValidate(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want error
	}{
		{"square", square(Point{}), nil},
		{"two points", Polygon{Points: []Point{{0, 0}, {1, 1}}}, ErrDegeneratePolygon},
		{"empty", Polygon{}, ErrDegeneratePolygon},
		{"opacity", Polygon{Points: []Point{{0, 0}, {1, 0}, {0, 1}}, Opacity: 1.5}, ErrOpacityRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.poly.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDocumentValidateReportsIndex(t *testing.T) {
	doc := Document{Polygons: []Polygon{square(Point{}), {Points: []Point{{1, 1}}}}}
	err := doc.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Index != 1 {
		t.Errorf("Index = %d, want 1", verr.Index)
	}
	if !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("expected ErrDegeneratePolygon in chain, got %v", err)
	}
}

func TestPolygonContainsHonoursOffset(t *testing.T) {
	p := square(Point{X: 100, Y: 50})
	if !p.Contains(Pt(105, 55)) {
		t.Error("expected translated point to be inside")
	}
	if p.Contains(Pt(5, 5)) {
		t.Error("untranslated point should be outside")
	}
	if (Polygon{Points: []Point{{0, 0}, {1, 1}}}).Contains(Pt(0, 0)) {
		t.Error("degenerate polygon contains nothing")
	}
}

func TestPolygonContainsSelfIntersecting(t *testing.T) {
	bowtie := Polygon{Points: []Point{{0, 0}, {100, 100}, {100, 0}, {0, 100}}}
	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"right lobe", Pt(90, 50), true},
		{"left lobe", Pt(10, 50), true},
		{"crossing", Pt(50, 50), true},
		{"edge", Pt(100, 30), true},
		{"top notch", Pt(50, 20), false},
		{"bottom notch", Pt(50, 80), false},
		{"outside", Pt(150, 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := bowtie.Contains(tt.pt); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
	if got := bowtie.Area(); got != 0 {
		t.Errorf("Area() = %v, want 0 for opposing lobes", got)
	}
}

func TestPolygonAreaAndBounds(t *testing.T) {
	p := square(Point{X: 3, Y: 4})
	if got := p.Area(); got != 100 {
		t.Errorf("Area() = %v, want 100", got)
	}
	lo, hi := p.Bounds()
	if lo != Pt(3, 4) || hi != Pt(13, 14) {
		t.Errorf("Bounds() = %v %v", lo, hi)
	}
	if c := p.Centroid(); c != Pt(8, 9) {
		t.Errorf("Centroid() = %v", c)
	}
}

func TestCloneIsDeep(t *testing.T) {
	doc := Document{Polygons: []Polygon{square(Point{})}, Markers: []Marker{{ID: "a", OffsetX: 1}}}
	c := doc.Clone()
	c.Polygons[0].Points[0] = Pt(99, 99)
	c.Markers[0].OffsetX = 42
	if doc.Polygons[0].Points[0] != Pt(0, 0) {
		t.Error("polygon points shared with clone")
	}
	if doc.Markers[0].OffsetX != 1 {
		t.Error("markers shared with clone")
	}
}

func TestDocumentExchangeFormat(t *testing.T) {
	input := `{
  "polygons": [
    {"points": [[10, 10], [100, 10], [55, 80]], "fill": "#00FF00", "opacity": 0.5,
     "transformPoints": {"x": 5, "y": -2}}
  ],
  "markers": [{"offsetX": 12, "offsetY": 30}]
}`
	doc, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(doc.Polygons) != 1 || len(doc.Markers) != 1 {
		t.Fatalf("unexpected document %+v", doc)
	}
	p := doc.Polygons[0]
	if p.Points[2] != Pt(55, 80) || p.Offset != Pt(5, -2) || p.Fill != "#00FF00" || p.Opacity != 0.5 {
		t.Errorf("unexpected polygon %+v", p)
	}
	if doc.Markers[0].OffsetX != 12 || doc.Markers[0].OffsetY != 30 {
		t.Errorf("unexpected marker %+v", doc.Markers[0])
	}

	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"transformPoints"`, `"offsetX": 12`, `[`, `"fill": "#00FF00"`} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded document missing %s:\n%s", want, out)
		}
	}
	if strings.Contains(out, `"id"`) {
		t.Errorf("empty marker id should be omitted:\n%s", out)
	}
}

func TestMarkerIDIsWrittenWhenSet(t *testing.T) {
	doc := Document{Markers: []Marker{{ID: "pin-1", OffsetX: 4, OffsetY: 5}}}
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"id": "pin-1"`) {
		t.Errorf("expected marker id in output:\n%s", buf.String())
	}
	back, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if back.Markers[0] != doc.Markers[0] {
		t.Errorf("marker = %+v, want %+v", back.Markers[0], doc.Markers[0])
	}
}

func TestEmptyDocumentEncodesArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := (Document{}).Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"polygons": []`) || !strings.Contains(buf.String(), `"markers": []`) {
		t.Errorf("expected empty arrays, got %s", buf.String())
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#1a2B3c")
	if err != nil {
		t.Fatalf("ParseHexColor failed: %v", err)
	}
	if c.R != 0x1a || c.G != 0x2b || c.B != 0x3c || c.A != 0xff {
		t.Errorf("unexpected color %+v", c)
	}
	if _, err := ParseHexColor("#12"); err == nil {
		t.Error("expected error for short color")
	}
	if c, err := ParseHexColor(RandomColor()); err != nil || c.A != 0xff {
		t.Errorf("RandomColor produced unparsable value: %v", err)
	}
}
