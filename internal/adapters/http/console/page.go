package console

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/okian/ratingdesk/internal/app"
	"github.com/okian/ratingdesk/internal/domain/render"
)

//go:embed templates/console.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/console.html"))

// pageData feeds templates/console.html.
type pageData struct {
	Base   string
	Fields app.Fields
	Result *render.Display
}

// ResultFor returns the result only for the section whose action produced it.
func (p pageData) ResultFor(name string) *render.Display {
	if p.Result == nil || p.Result.Action.String() != name {
		return nil
	}
	return p.Result
}

func renderPage(data pageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "console.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
