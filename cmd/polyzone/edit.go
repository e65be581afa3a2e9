package main

import (
	"flag"
	"fmt"
	"image"

	"github.com/example/polyzone/internal/appstate"
	"github.com/example/polyzone/internal/capture"
	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/render"
)

// captureScreenFn is replaced in tests.
var captureScreenFn = capture.Screen

// runWindowFn is replaced in tests.
var runWindowFn = func(st *appstate.AppState) error { return st.Run() }

// editCmd opens the interactive editor window.
type editCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	background  string
	capture     bool
	interactive bool
	region      string
	output      string
	export      string
	tool        string
}

func (e *editCmd) Program() string        { return e.root.subcommand("edit") }
func (e *editCmd) FlagSet() *flag.FlagSet { return e.fs }

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "document to open")
	fs.StringVar(&e.background, "background", "", "background image to annotate")
	fs.BoolVar(&e.capture, "capture", false, "capture the screen and use it as the background")
	fs.BoolVar(&e.interactive, "interactive", false, "let the desktop portal ask which area to capture")
	fs.StringVar(&e.region, "region", "", "crop the capture to x,y,w,h")
	fs.StringVar(&e.output, "output", "", "document path written by save (defaults to -file)")
	fs.StringVar(&e.export, "export", "annotations.png", "image path written by export")
	fs.StringVar(&e.tool, "tool", "", "initial tool: none, draw, erase, drag or marker")
	fs.Usage = usageFunc(e)
	if r != nil {
		fs.SetOutput(r.stderr)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if e.capture && e.background != "" {
		return nil, fmt.Errorf("-capture and -background are mutually exclusive")
	}
	if e.region != "" && !e.capture {
		return nil, fmt.Errorf("-region requires -capture")
	}
	if e.output == "" {
		e.output = e.file
	}
	if e.output == "" {
		e.output = "annotations.json"
	}
	return e, nil
}

func (e *editCmd) Run() error {
	doc, err := readDocument(e.file)
	if err != nil {
		return err
	}
	opts, err := e.editorOptions()
	if err != nil {
		return err
	}
	opts = append(opts, editor.WithInitialData(doc))
	if e.tool != "" {
		t, err := editor.ParseTool(e.tool)
		if err != nil {
			return err
		}
		opts = append(opts, editor.WithDefaultTool(t))
	}

	stOpts := []appstate.Option{
		appstate.WithTheme(e.activeTheme),
		appstate.WithOutput(e.output),
		appstate.WithExportPath(e.export),
		appstate.WithNotifier(e.notifier),
		appstate.WithLogger(e.log),
	}
	src, img, err := e.loadBackground()
	if err != nil {
		return err
	}
	if img != nil {
		stOpts = append(stOpts, appstate.WithBackground(src, img))
		opts = append(opts, editor.WithBackground(src))
	}
	stOpts = append(stOpts, appstate.WithEditorOptions(opts...))
	return runWindowFn(appstate.New(stOpts...))
}

func (e *editCmd) loadBackground() (string, image.Image, error) {
	switch {
	case e.capture:
		copts := capture.Options{Interactive: e.interactive}
		if e.region != "" {
			r, err := capture.ParseRegion(e.region)
			if err != nil {
				return "", nil, err
			}
			copts.Region = r
		}
		img, err := captureScreenFn(copts)
		if err != nil {
			return "", nil, fmt.Errorf("failed to capture screen: %w", err)
		}
		e.log.Info().Stringer("bounds", img.Bounds()).Msg("captured screen")
		return "screen-capture", img, nil
	case e.background != "":
		img, err := render.DecodeFile(e.background)
		if err != nil {
			return "", nil, err
		}
		return e.background, img, nil
	}
	return "", nil, nil
}
