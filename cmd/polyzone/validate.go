package main

import (
	"errors"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/notify"
)

// validateCmd checks documents and prints a short report for each.
type validateCmd struct {
	*root
	fs      *flag.FlagSet
	files   []string
	verbose bool
}

// ErrInvalidDocument is returned when any checked document fails.
var ErrInvalidDocument = errors.New("invalid document")

func (v *validateCmd) Program() string        { return v.root.subcommand("validate") }
func (v *validateCmd) FlagSet() *flag.FlagSet { return v.fs }

func parseValidateCmd(args []string, r *root) (*validateCmd, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	v := &validateCmd{root: r, fs: fs}
	fs.BoolVar(&v.verbose, "v", false, "list every polygon and marker")
	fs.Usage = usageFunc(v)
	if r != nil {
		fs.SetOutput(r.stderr)
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v.files = fs.Args()
	if len(v.files) == 0 {
		return nil, &UsageError{of: v}
	}
	return v, nil
}

func (v *validateCmd) Run() error {
	failed := 0
	for _, path := range v.files {
		doc, err := readDocument(path)
		if err == nil {
			err = doc.Validate()
		}
		if err != nil {
			failed++
			fmt.Fprintf(v.stdout, "%s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(v.stdout, "%s: ok (%s)\n", path, notify.Summary(doc))
		if v.verbose {
			v.report(doc)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrInvalidDocument, failed, len(v.files))
	}
	return nil
}

func (v *validateCmd) report(doc geometry.Document) {
	tw := tabwriter.NewWriter(v.stdout, 0, 4, 2, ' ', 0)
	for i, p := range doc.Polygons {
		c := p.Centroid()
		fmt.Fprintf(tw, "  polygon %d\t%d points\tarea %.1f\tcentroid %.1f,%.1f\t%s\n", i, len(p.Points), p.Area(), c.X, c.Y, p.Fill)
	}
	for i, m := range doc.Markers {
		pos := m.Position()
		fmt.Fprintf(tw, "  marker %d\t%s\tat %.1f,%.1f\n", i, m.ID, pos.X, pos.Y)
	}
	tw.Flush()
}
