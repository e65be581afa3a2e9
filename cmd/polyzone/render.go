package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/render"
)

// renderCmd rasterises a document to PNG without opening a window.
type renderCmd struct {
	*root
	fs         *flag.FlagSet
	file       string
	background string
	output     string
	zoom       float64
	labels     bool
	top        string
}

func (c *renderCmd) Program() string        { return c.root.subcommand("render") }
func (c *renderCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.file, "file", "", "document to render")
	fs.StringVar(&c.background, "background", "", "background image")
	fs.StringVar(&c.output, "output", "annotations.png", "PNG file to write")
	fs.Float64Var(&c.zoom, "zoom", 20, "zoom slider value; the surface scale is zoom/20")
	fs.BoolVar(&c.labels, "labels", false, "print polygon indices at their centroids")
	fs.StringVar(&c.top, "top", "markers", "layer drawn on top: markers or polygons")
	fs.Usage = usageFunc(c)
	if r != nil {
		fs.SetOutput(r.stderr)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.file == "" && fs.NArg() > 0 {
		c.file = fs.Arg(0)
	}
	if c.file == "" {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *renderCmd) layer() (editor.Layer, error) {
	switch c.top {
	case "markers", "marker":
		return editor.LayerMarkers, nil
	case "polygons", "polygon":
		return editor.LayerPolygons, nil
	}
	return 0, fmt.Errorf("unknown layer %q", c.top)
}

func (c *renderCmd) Run() error {
	doc, err := readDocument(c.file)
	if err != nil {
		return err
	}
	top, err := c.layer()
	if err != nil {
		return err
	}
	opts, err := c.editorOptions()
	if err != nil {
		return err
	}
	canvas := render.NewCanvas(c.activeTheme)
	canvas.Labels = c.labels
	if c.background != "" {
		img, err := render.DecodeFile(c.background)
		if err != nil {
			return err
		}
		canvas.SetBackgroundImage(c.background, img)
	}
	opts = append(opts,
		editor.WithSurface(canvas),
		editor.WithImageLoader(canvas),
		editor.WithConfirmOnErase(false),
		editor.WithInitialData(doc),
		editor.WithBackground(c.background),
	)
	ed := editor.New(opts...)
	if err := ed.Init(); err != nil {
		return err
	}
	if err := ed.Zoom(c.zoom); err != nil {
		return err
	}
	if err := ed.Prioritize(top); err != nil {
		return err
	}

	out, err := os.Create(c.output)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := canvas.EncodePNG(out); err != nil {
		out.Close()
		return fmt.Errorf("render: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("render: closing file: %w", err)
	}
	fmt.Fprintf(c.stdout, "wrote %s\n", c.output)
	c.notifier.Export(c.output)
	return nil
}
