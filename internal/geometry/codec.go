package geometry

import (
	"encoding/json"
	"fmt"
	"io"
)

// The exchange format keeps vertices as [x, y] pairs, the translation as a
// {x, y} object and marker offsets as plain numbers.

type wirePolygon struct {
	Points          [][2]float64 `json:"points"`
	Fill            string       `json:"fill"`
	Opacity         float64      `json:"opacity"`
	TransformOffset Point        `json:"transformPoints"`
}

type wireMarker struct {
	ID      string  `json:"id,omitempty"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type wireDocument struct {
	Polygons []Polygon `json:"polygons"`
	Markers  []Marker  `json:"markers"`
}

func (p Polygon) MarshalJSON() ([]byte, error) {
	w := wirePolygon{
		Points:          make([][2]float64, len(p.Points)),
		Fill:            p.Fill,
		Opacity:         p.Opacity,
		TransformOffset: p.Offset,
	}
	for i, pt := range p.Points {
		w.Points[i] = [2]float64{pt.X, pt.Y}
	}
	return json.Marshal(w)
}

func (p *Polygon) UnmarshalJSON(data []byte) error {
	var w wirePolygon
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Points = make([]Point, len(w.Points))
	for i, pair := range w.Points {
		p.Points[i] = Point{X: pair[0], Y: pair[1]}
	}
	p.Fill = w.Fill
	p.Opacity = w.Opacity
	p.Offset = w.TransformOffset
	return nil
}

func (m Marker) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMarker(m))
}

func (m *Marker) UnmarshalJSON(data []byte) error {
	var w wireMarker
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = Marker(w)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	c := d.Clone()
	return json.Marshal(wireDocument(c))
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var w wireDocument
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*d = Document(w).Clone()
	return nil
}

// Decode reads a document from r.
func Decode(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return d, nil
}

// Encode writes d to w as indented JSON. Markers carry an "id" next to
// offsetX and offsetY whenever one is set, which every editor snapshot
// does; readers that only know the offsets can ignore it, and Decode
// accepts markers without one.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}
