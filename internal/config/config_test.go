package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/polyzone/internal/editor"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/zones
log_level = debug

[notify]
save = true
copy = false
export = true

[editor]
opacity = 0.6
confirm_on_erase = false
default_tool = add-marker
notify_once = true

[readonly]
polygon = true

[marker]
single_pointer = true
inside_polygon_only = true
anchor_x = 4
anchor_y = 12.5

[theme.my_custom_theme]
Background = #111111
VertexFill = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/zones" {
		t.Errorf("Expected save_dir '/tmp/zones', got '%s'", cfg.SaveDir)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log_level 'debug', got '%s'", cfg.LogLevel)
	}
	if !cfg.Notify.Save || cfg.Notify.Copy || !cfg.Notify.Export {
		t.Errorf("Unexpected notify %+v", cfg.Notify)
	}
	if cfg.Editor.Opacity != 0.6 || cfg.Editor.ConfirmOnErase || cfg.Editor.DefaultTool != "add-marker" || !cfg.Editor.NotifyOnce {
		t.Errorf("Unexpected editor section %+v", cfg.Editor)
	}
	if cfg.ReadOnly.All || !cfg.ReadOnly.Polygon || cfg.ReadOnly.Marker {
		t.Errorf("Unexpected readonly section %+v", cfg.ReadOnly)
	}
	if !cfg.Marker.SinglePointer || !cfg.Marker.InsidePolygonOnly || cfg.Marker.AnchorX != 4 || cfg.Marker.AnchorY != 12.5 {
		t.Errorf("Unexpected marker section %+v", cfg.Marker)
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
}

func TestParseErrorsNameSection(t *testing.T) {
	_, err := Parse(strings.NewReader("[editor]\nopacity = lots\n"))
	if err == nil || !strings.Contains(err.Error(), "[editor]") {
		t.Errorf("expected section in error, got %v", err)
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/zones

[notify]
save = true
copy = true

[editor]
opacity = 0.25
confirm_on_erase = false
default_tool = drag

[marker]
single_pointer = true
anchor_x = 3

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if cfg.Theme != cfg2.Theme || cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("Root mismatch: %q/%q vs %q/%q", cfg.Theme, cfg.SaveDir, cfg2.Theme, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Editor != cfg2.Editor {
		t.Errorf("Editor mismatch: %+v vs %+v", cfg.Editor, cfg2.Editor)
	}
	if cfg.Marker != cfg2.Marker {
		t.Errorf("Marker mismatch: %+v vs %+v", cfg.Marker, cfg2.Marker)
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestEditorOptions(t *testing.T) {
	cfg := New()
	cfg.Editor.DefaultTool = "add-polygon"
	cfg.Editor.ConfirmOnErase = false
	cfg.ReadOnly.Marker = true
	cfg.Marker.SinglePointer = true
	opts, err := cfg.EditorOptions()
	if err != nil {
		t.Fatalf("EditorOptions failed: %v", err)
	}
	o := editor.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.DefaultTool != editor.ToolDraw || o.ConfirmOnErase || !o.ReadOnly.Marker || !o.Marker.SinglePointer {
		t.Errorf("unexpected options %+v", o)
	}
	if o.Marker.Anchor != editor.DefaultMarkerAnchor || o.ShapeOpacity != editor.DefaultShapeOpacity {
		t.Errorf("defaults not carried: anchor %v opacity %v", o.Marker.Anchor, o.ShapeOpacity)
	}

	cfg.Editor.DefaultTool = "lasso"
	if _, err := cfg.EditorOptions(); err == nil {
		t.Error("expected unknown tool to fail")
	}
}

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("theme = dark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ThemeEnv, "")
	cfg, err := NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("expected theme from file, got %q", cfg.Theme)
	}

	t.Setenv(ThemeEnv, "high_contrast")
	cfg, err = NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "high_contrast" {
		t.Errorf("expected environment override, got %q", cfg.Theme)
	}
}
