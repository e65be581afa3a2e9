// Package notify turns editor events into desktop notifications.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/platform"
	"github.com/rs/zerolog"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a document is written to disk.
	EventSave Event = "save"
	// EventCopy fires when data is copied to the clipboard.
	EventCopy Event = "copy"
	// EventExport fires when a rendered image is written to disk.
	EventExport Event = "export"
)

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Polyzone",
		Events: map[Event]EventPreference{
			EventSave:   {Template: "Saved %s"},
			EventCopy:   {Template: "Copied %s to clipboard"},
			EventExport: {Template: "Exported %s"},
		},
	}
}

// LoadPreferences applies POLYZONE_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("POLYZONE_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("POLYZONE_NOTIFY_SAVE_TEXT", EventSave)
	apply("POLYZONE_NOTIFY_COPY_TEXT", EventCopy)
	apply("POLYZONE_NOTIFY_EXPORT_TEXT", EventExport)
	return prefs
}

// Sender delivers a notification to the desktop.
type Sender func(title, body string, opts platform.Options) error

// Notifier sends OS-level notifications based on the configured preferences.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	send    Sender
	log     zerolog.Logger
}

// New creates a Notifier that delivers through the platform notifier.
func New(prefs Preferences, log zerolog.Logger) *Notifier {
	cloned := Preferences{Title: prefs.Title, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), send: platform.Notify, log: log}
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(s Sender) *Notifier {
	n.send = s
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Save reports a written document with a short content summary.
func (n *Notifier) Save(path string, doc geometry.Document) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
	}
	n.dispatch(EventSave, fmt.Sprintf("%s (%s)", detail, Summary(doc)), platform.Options{})
}

// Export reports a written image, using it as the notification icon.
func (n *Notifier) Export(path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy sends a clipboard notification.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "annotations"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

// Summary describes a document as "N polygons, M markers".
func Summary(doc geometry.Document) string {
	return fmt.Sprintf("%s, %s", plural(len(doc.Polygons), "polygon"), plural(len(doc.Markers), "marker"))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" || n.send == nil {
		return
	}
	if err := n.send(n.prefs.Title, body, opts); err != nil {
		n.log.Warn().Err(err).Str("event", string(event)).Msg("notification failed")
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}
