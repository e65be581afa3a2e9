package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	input := `
# comment
Name: Custom
VertexFill: #102030
RubberBand: #10203040
Unknown: #FFFFFF
`
	th, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if th.Name != "Custom" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.VertexFill.R != 0x10 || th.VertexFill.G != 0x20 || th.VertexFill.B != 0x30 || th.VertexFill.A != 0xFF {
		t.Errorf("unexpected VertexFill %+v", th.VertexFill)
	}
	if th.RubberBand.A != 0x40 {
		t.Errorf("alpha not parsed: %+v", th.RubberBand)
	}
	if th.MarkerFill != Default().MarkerFill {
		t.Error("unset keys should keep defaults")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("VertexFill: red")); err == nil {
		t.Error("expected error for non-hex color")
	}
}

func TestLoaderEmbeddedAndFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Name: Mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}

	for _, name := range Embedded() {
		if _, err := l.Load(name); err != nil {
			t.Errorf("embedded theme %s failed: %v", name, err)
		}
	}
	dark, err := l.Load("dark")
	if err != nil || dark.Name != "Dark" {
		t.Errorf("Load(dark) = %v, %v", dark, err)
	}
	mine, err := l.Load("mine")
	if err != nil || mine.Name != "Mine" {
		t.Errorf("Load(mine) = %v, %v", mine, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("expected missing theme to fail")
	}
	if def, err := l.Load(""); err != nil || def.Name != "Default" {
		t.Errorf("Load(\"\") = %v, %v", def, err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := Default()
	src.Name = "Copy"
	src.RubberBand.A = 0x80
	back, err := Parse(strings.NewReader(src.Format()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if *back != *src {
		t.Errorf("round trip mismatch:\n%+v\n%+v", back, src)
	}
}

func TestSetIsCaseInsensitive(t *testing.T) {
	th := Default()
	if err := th.Set("markerdot", "#010203"); err != nil {
		t.Fatal(err)
	}
	if th.MarkerDot.B != 3 {
		t.Errorf("MarkerDot = %+v", th.MarkerDot)
	}
}
