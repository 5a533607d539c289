package notify

import (
	"errors"
	"strings"
	"testing"
)

func TestPolicy_Report(t *testing.T) {
	c := NewCenter(nil)
	p := NewPolicy(c, nil)

	n := p.Report(CouldNotSave, "/a.json", errors.New("bad input"))
	if n == nil {
		t.Fatal("expected a notification")
	}
	opts := n.Options()
	if n.Message() != "Couldn't save Lenient file" {
		t.Errorf("unexpected message %q", n.Message())
	}
	if opts.Detail != "bad input" || opts.Source != "/a.json" || !opts.Dismissable {
		t.Errorf("unexpected options %+v", opts)
	}
	if !strings.Contains(opts.Stack, "goroutine") {
		t.Errorf("expected a stack trace, got %q", opts.Stack)
	}

	if p.Report(CouldNotSave, "/a.json", nil) != nil {
		t.Error("nil error should not notify")
	}
}

func TestPolicy_Deduplicates(t *testing.T) {
	c := NewCenter(nil)
	p := NewPolicy(c, nil)

	p.Report(CouldNotSave, "/a.json", errors.New("one"))
	p.Report(CouldNotSave, "/a.json", errors.New("two"))
	p.Report(CouldNotSave, "/b.json", errors.New("other doc"))
	p.Report(CouldNotConvertFrom, "/a.json", errors.New("other category"))

	visible := c.Notifications()
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible notifications, got %d", len(visible))
	}
	for _, n := range visible {
		if n.Message() == string(CouldNotSave) && n.Options().Source == "/a.json" && n.Options().Detail != "two" {
			t.Errorf("expected the latest save failure to win, got %q", n.Options().Detail)
		}
	}
}

func TestPolicy_SaveSucceeded(t *testing.T) {
	c := NewCenter(nil)
	p := NewPolicy(c, nil)

	save := p.Reporter(CouldNotSave, "/a.json")
	save(errors.New("failed"))
	p.Report(CouldNotConvertTo, "/a.json", errors.New("failed"))
	p.Report(CouldNotConvertFrom, "/a.json", errors.New("failed"))
	p.Report(CouldNotSave, "/b.json", errors.New("failed"))

	p.SaveSucceeded("/a.json")

	visible := c.Notifications()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible notifications, got %d", len(visible))
	}
	for _, n := range visible {
		src, msg := n.Options().Source, n.Message()
		if src == "/a.json" && msg != string(CouldNotConvertFrom) {
			t.Errorf("stale notification still visible: %s for %s", msg, src)
		}
	}
}
