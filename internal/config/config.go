package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Editor holds the [editor] section.
type Editor struct {
	Opacity        float64
	ConfirmOnErase bool
	DefaultTool    string
	NotifyOnce     bool
}

// ReadOnly holds the [readonly] section.
type ReadOnly struct {
	All     bool
	Polygon bool
	Marker  bool
}

// Marker holds the [marker] section.
type Marker struct {
	SinglePointer     bool
	InsidePolygonOnly bool
	AnchorX           float64
	AnchorY           float64
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	SaveDir  string
	LogLevel string
	Notify   Notify
	Editor   Editor
	ReadOnly ReadOnly
	Marker   Marker
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // empty falls back to the environment, then the default theme
		Editor: Editor{
			Opacity:        editor.DefaultShapeOpacity,
			ConfirmOnErase: true,
			DefaultTool:    editor.ToolNone.String(),
		},
		Marker: Marker{
			AnchorX: editor.DefaultMarkerAnchor.X,
			AnchorY: editor.DefaultMarkerAnchor.Y,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// EditorOptions translates the editor related sections into editor options.
func (c *Config) EditorOptions() ([]editor.Option, error) {
	tool, err := editor.ParseTool(c.Editor.DefaultTool)
	if err != nil {
		return nil, fmt.Errorf("[editor] default_tool: %w", err)
	}
	if c.Editor.Opacity < 0 || c.Editor.Opacity > 1 {
		return nil, fmt.Errorf("[editor] opacity %v out of range [0, 1]", c.Editor.Opacity)
	}
	return []editor.Option{
		editor.WithShapeOpacity(c.Editor.Opacity),
		editor.WithConfirmOnErase(c.Editor.ConfirmOnErase),
		editor.WithDefaultTool(tool),
		editor.WithNotifyOnce(c.Editor.NotifyOnce),
		editor.WithReadOnly(editor.ReadOnlyOptions{
			All:     c.ReadOnly.All,
			Polygon: c.ReadOnly.Polygon,
			Marker:  c.ReadOnly.Marker,
		}),
		editor.WithMarkerOptions(editor.MarkerOptions{
			SinglePointer:         c.Marker.SinglePointer,
			DrawInsidePolygonOnly: c.Marker.InsidePolygonOnly,
			Anchor:                geometry.Pt(c.Marker.AnchorX, c.Marker.AnchorY),
		}),
	}, nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.LogLevel != "" {
		fmt.Fprintf(&sb, "log_level = %s\n", c.LogLevel)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	sb.WriteString("[editor]\n")
	fmt.Fprintf(&sb, "opacity = %s\n", strconv.FormatFloat(c.Editor.Opacity, 'g', -1, 64))
	fmt.Fprintf(&sb, "confirm_on_erase = %v\n", c.Editor.ConfirmOnErase)
	fmt.Fprintf(&sb, "default_tool = %s\n", c.Editor.DefaultTool)
	fmt.Fprintf(&sb, "notify_once = %v\n", c.Editor.NotifyOnce)
	sb.WriteString("\n")

	sb.WriteString("[readonly]\n")
	fmt.Fprintf(&sb, "all = %v\n", c.ReadOnly.All)
	fmt.Fprintf(&sb, "polygon = %v\n", c.ReadOnly.Polygon)
	fmt.Fprintf(&sb, "marker = %v\n", c.ReadOnly.Marker)
	sb.WriteString("\n")

	sb.WriteString("[marker]\n")
	fmt.Fprintf(&sb, "single_pointer = %v\n", c.Marker.SinglePointer)
	fmt.Fprintf(&sb, "inside_polygon_only = %v\n", c.Marker.InsidePolygonOnly)
	fmt.Fprintf(&sb, "anchor_x = %s\n", strconv.FormatFloat(c.Marker.AnchorX, 'g', -1, 64))
	fmt.Fprintf(&sb, "anchor_y = %s\n", strconv.FormatFloat(c.Marker.AnchorY, 'g', -1, 64))
	sb.WriteString("\n")

	// sorted for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].Format())
		sb.WriteString("\n")
	}

	return sb.String()
}
