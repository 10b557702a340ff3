// Package render turns local validation errors and rating API outcomes into
// what the operator sees.
package render

import (
	"html"
	"html/template"

	"github.com/okian/ratingdesk/internal/adapters/gateway"
	"github.com/okian/ratingdesk/internal/domain/action"
)

// Style tags a display as good or bad news.
type Style string

const (
	StyleOK  Style = "ok"
	StyleErr Style = "err"
)

// Display is the rendered result of one submission.
type Display struct {
	// Action is the submission that produced the result; the page shows it
	// next to that action's form only.
	Action action.Action
	Style  Style
	// Text is plain, unescaped text. Use HTML for markup contexts.
	Text string
	// Status is the HTTP status of the call, 0 for local errors and
	// transport failures.
	Status int
	// Local marks a validation failure that never reached the network.
	Local bool
}

// OK reports whether the display carries a success.
func (d Display) OK() bool { return d.Style == StyleOK }

// HTML returns Text with markup-significant characters escaped.
func (d Display) HTML() template.HTML {
	return template.HTML(html.EscapeString(d.Text)) //nolint:gosec // escaped above
}

// FromLocalError renders a validation failure.
func FromLocalError(a action.Action, err error) Display {
	return Display{Action: a, Style: StyleErr, Text: err.Error(), Local: true}
}

// FromOutcome renders a rating API outcome. The parsed body wins over the
// raw text; when a transport failure left no body, its message is shown.
func FromOutcome(a action.Action, o gateway.Outcome) Display {
	d := Display{Action: a, Style: StyleErr, Status: o.Status, Text: Pretty(BodyOf(o))}
	if o.Success {
		d.Style = StyleOK
	}
	if d.Text == "" && o.TransportError != "" {
		d.Text = o.TransportError
	}
	return d
}

// BodyOf picks the body to display for an outcome.
func BodyOf(o gateway.Outcome) Body {
	if o.Parsed != nil {
		return Structured{JSON: o.Parsed}
	}
	return RawString{Text: o.Raw}
}
