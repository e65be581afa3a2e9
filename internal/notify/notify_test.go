package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/example/polyzone/internal/geometry"
	"github.com/example/polyzone/internal/platform"
	"github.com/rs/zerolog"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) Sender {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), zerolog.Nop()).WithSender(recorder(&got))
	n.Copy("doc")
	n.Save("/tmp/x.json", geometry.Document{})
	if len(got) != 0 {
		t.Errorf("expected no notifications, got %+v", got)
	}
}

func TestSaveIncludesSummary(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences(), zerolog.Nop()).WithSender(recorder(&got))
	n.Enable(EventSave, true)
	doc := geometry.Document{
		Polygons: []geometry.Polygon{{}, {}},
		Markers:  []geometry.Marker{{}},
	}
	n.Save("zones.json", doc)
	if len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got[0].title != "Polyzone" {
		t.Errorf("title = %q", got[0].title)
	}
	if !strings.HasPrefix(got[0].body, "Saved ") || !strings.HasSuffix(got[0].body, "(2 polygons, 1 marker)") {
		t.Errorf("body = %q", got[0].body)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("POLYZONE_NOTIFY_TITLE", "Zones")
	t.Setenv("POLYZONE_NOTIFY_COPY_TEXT", "Clipboard now has %s")
	var got []sent
	n := New(LoadPreferences(), zerolog.Nop()).WithSender(recorder(&got))
	n.Enable(EventCopy, true)
	n.Copy("")
	if len(got) != 1 || got[0].title != "Zones" || got[0].body != "Clipboard now has annotations" {
		t.Errorf("unexpected notification %+v", got)
	}
}

func TestSendFailureIsLogged(t *testing.T) {
	n := New(DefaultPreferences(), zerolog.Nop()).WithSender(func(string, string, platform.Options) error {
		return errors.New("bus down")
	})
	n.Enable(EventExport, true)
	n.Export("out.png")
}
