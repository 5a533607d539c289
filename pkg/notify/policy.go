package notify

import (
	"log/slog"
	"runtime/debug"

	"github.com/aretw0/lenient/pkg/core"
)

// Category is the message a failure is surfaced with. Notifications are
// deduplicated by category and source document.
type Category string

const (
	CouldNotSave        Category = "Couldn't save Lenient file"
	CouldNotConvertTo   Category = "Couldn't convert to Lenient"
	CouldNotConvertFrom Category = "Couldn't convert from Lenient"
)

// stale lists the categories a successful save makes obsolete.
var stale = []Category{CouldNotSave, CouldNotConvertTo}

// Policy decides how failures reach the user and when earlier ones are
// withdrawn.
type Policy struct {
	notifier core.Notifier
	logger   *slog.Logger
}

// NewPolicy creates a policy over notifier. A nil logger disables logging.
func NewPolicy(notifier core.Notifier, logger *slog.Logger) *Policy {
	return &Policy{notifier: notifier, logger: logger}
}

// Report surfaces err under category for the document at source. A visible
// notification with the same category and source is replaced.
func (p *Policy) Report(category Category, source string, err error) core.Notification {
	if err == nil {
		return nil
	}
	p.dismiss(source, category)

	if p.logger != nil {
		p.logger.Warn(string(category), "source", source, "error", err)
	}

	return p.notifier.AddError(string(category), core.NotificationOptions{
		Detail:      err.Error(),
		Stack:       string(debug.Stack()),
		Dismissable: true,
		Source:      source,
	})
}

// Reporter returns a callback reporting under category for source.
func (p *Policy) Reporter(category Category, source string) func(error) {
	return func(err error) {
		p.Report(category, source, err)
	}
}

// SaveSucceeded dismisses the save and convert failures of source, which
// a successful save makes stale.
func (p *Policy) SaveSucceeded(source string) {
	p.dismiss(source, stale...)
}

func (p *Policy) dismiss(source string, categories ...Category) {
	for _, n := range p.notifier.Notifications() {
		if n.Options().Source != source {
			continue
		}
		for _, c := range categories {
			if n.Message() == string(c) {
				n.Dismiss()
				break
			}
		}
	}
}
