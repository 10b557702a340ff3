// Package console serves the operator page that drives the rating API.
package console

import (
	"context"
	"net/http"

	"github.com/okian/ratingdesk/internal/app"
	"github.com/okian/ratingdesk/internal/domain/action"
	"github.com/okian/ratingdesk/internal/domain/payload"
	"github.com/okian/ratingdesk/internal/domain/render"
	"github.com/okian/ratingdesk/pkg/logger"
)

// Largest form body accepted from the operator.
const maxFormBytes = 1 << 20

// Dispatcher runs one operator submission. *app.Router satisfies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, sub app.Submission) (render.Display, bool)
	DefaultBaseURL() string
}

// Handler serves GET and POST on the console page.
type Handler struct {
	dispatcher Dispatcher
	logger     logger.Logger
}

// NewHandler creates a console handler. A nil logger discards output.
func NewHandler(d Dispatcher, l logger.Logger) *Handler {
	if l == nil {
		l = logger.Nop()
	}
	return &Handler{dispatcher: d, logger: l}
}

// Register attaches the console page and its metrics endpoint to mux.
func (h *Handler) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/", MetricsMiddleware(h.HandleConsole, "console"))
	mux.HandleFunc("/healthz", MetricsMiddleware(NewHealthHandler().HandleHealth, "healthz"))
}

// HandleConsole renders the page; a POST first runs the submitted action.
func (h *Handler) HandleConsole(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := pageData{Base: h.dispatcher.DefaultBaseURL()}
	switch r.Method {
	case http.MethodGet, http.MethodHead:
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		sub := submissionFromForm(r)
		if sub.BaseURL != "" {
			data.Base = sub.BaseURL
		}
		data.Fields = sub.Fields
		if d, ok := h.dispatcher.Dispatch(r.Context(), sub); ok {
			data.Result = &d
		}
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page, err := renderPage(data)
	if err != nil {
		h.logger.Error(r.Context(), "rendering console page failed", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(page)
}

func submissionFromForm(r *http.Request) app.Submission {
	return app.Submission{
		Action:  action.Parse(r.PostFormValue("action")),
		BaseURL: r.PostFormValue("base"),
		Fields: app.Fields{
			EventKey:  r.PostFormValue(payload.FieldEventKey),
			PushJSON:  r.PostFormValue(payload.FieldPushJSON),
			TeamKey:   r.PostFormValue(payload.FieldTeamKey),
			Teams1:    r.PostFormValue(payload.FieldTeams1),
			Teams2:    r.PostFormValue(payload.FieldTeams2),
			BatchJSON: r.PostFormValue(payload.FieldBatchJSON),
		},
	}
}
