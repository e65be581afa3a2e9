package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/polyzone/internal/config"
	"github.com/example/polyzone/internal/editor"
	"github.com/example/polyzone/internal/logging"
	"github.com/example/polyzone/internal/notify"
	"github.com/example/polyzone/internal/theme"
	"github.com/rs/zerolog"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	stdout       io.Writer
	stderr       io.Writer
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	saveAlerts   bool
	copyAlerts   bool
	exportAlerts bool
	themeName    string
	logLevel     string
	activeTheme  *theme.Theme
	log          zerolog.Logger
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot(stdout, stderr io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("polyzone", flag.ContinueOnError),
		program: "polyzone",
		stdout:  stdout,
		stderr:  stderr,
		config:  config.New(),
		log:     zerolog.Nop(),
	}
	r.fs.SetOutput(stderr)
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "configuration file to read instead of the search path")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, high_contrast)")
	r.fs.StringVar(&r.logLevel, "log-level", "", "log level: debug, info, warn, error or off")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a document")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting an image")
	r.fs.Usage = usageFunc(r)
	return r
}

// setup loads the configuration and resolves everything the flags may
// override. Precedence is flags, then environment, then config file.
func (r *root) setup() error {
	loader := config.NewLoader(version, r.configPath)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(r.stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	levelName := r.logLevel
	if levelName == "" {
		levelName = cfg.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	r.log = logging.New(level, r.stderr)

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name string, flagValue, cfgValue bool) bool {
		if set[name] {
			return flagValue
		}
		return cfgValue
	}
	r.notifier = notify.New(notify.LoadPreferences(), r.log)
	r.notifier.Enable(notify.EventSave, pick("notify-save", r.saveAlerts, cfg.Notify.Save))
	r.notifier.Enable(notify.EventCopy, pick("notify-copy", r.copyAlerts, cfg.Notify.Copy))
	r.notifier.Enable(notify.EventExport, pick("notify-export", r.exportAlerts, cfg.Notify.Export))

	r.activeTheme = r.resolveTheme()
	return nil
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			r.log.Warn().Err(err).Str("theme", name).Msg("failed to load theme, using default")
		}
		return theme.Default()
	}
	return t
}

// editorOptions converts the configuration into editor options.
func (r *root) editorOptions() ([]editor.Option, error) {
	opts, err := r.config.EditorOptions()
	if err != nil {
		return nil, err
	}
	return append(opts, editor.WithLogger(r.log.With().Str("component", "editor").Logger())), nil
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "render":
		cmd, err = parseRenderCmd(subArgs, r)
	case "validate":
		cmd, err = parseValidateCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func main() {
	r := newRoot(os.Stdout, os.Stderr)
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.Is(err, flag.ErrHelp):
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
