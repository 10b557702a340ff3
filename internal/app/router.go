// Package app routes operator submissions through parse, call and render.
package app

import (
	"context"
	"errors"
	"net/url"

	"github.com/google/uuid"

	"github.com/okian/ratingdesk/internal/adapters/gateway"
	"github.com/okian/ratingdesk/internal/domain/action"
	"github.com/okian/ratingdesk/internal/domain/payload"
	"github.com/okian/ratingdesk/internal/domain/render"
	"github.com/okian/ratingdesk/pkg/logger"
	"github.com/okian/ratingdesk/pkg/metrics"
)

// DefaultBaseURL is used when neither the operator nor configuration
// supplies a rating API base URL.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Caller performs one rating API call. *gateway.Client satisfies it.
type Caller interface {
	Call(ctx context.Context, req gateway.Request) gateway.Outcome
}

// Fields holds the raw operator input for every form section. Only the
// fields of the submitted action are read.
type Fields struct {
	EventKey  string
	PushJSON  string
	TeamKey   string
	Teams1    string
	Teams2    string
	BatchJSON string
}

// Submission is everything one operator action carries.
type Submission struct {
	// ID correlates log lines; Dispatch assigns one when empty.
	ID     string
	Action action.Action
	// BaseURL overrides the configured rating API for this submission.
	BaseURL string
	Fields  Fields
}

// Router holds configuration only; it keeps nothing between submissions.
type Router struct {
	caller         Caller
	defaultBaseURL string
	logger         logger.Logger
}

// Option applies a configuration option to the Router.
type Option func(*Router)

// WithLogger sets a custom logger for the router.
func WithLogger(l logger.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDefaultBaseURL sets the base URL used when a submission has none.
func WithDefaultBaseURL(base string) Option {
	return func(r *Router) {
		if base != "" {
			r.defaultBaseURL = base
		}
	}
}

// New creates a Router that issues calls through caller.
func New(caller Caller, opts ...Option) *Router {
	r := &Router{
		caller:         caller,
		defaultBaseURL: DefaultBaseURL,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultBaseURL returns the base URL used for submissions without one.
func (r *Router) DefaultBaseURL() string { return r.defaultBaseURL }

// Dispatch runs one submission. A parser failure is rendered without any
// network call. An unrecognized action does nothing and reports false.
func (r *Router) Dispatch(ctx context.Context, sub Submission) (render.Display, bool) {
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	log := []logger.Field{logger.String("submission_id", sub.ID), logger.String("action", sub.Action.String())}

	var (
		req gateway.Request
		err error
	)
	switch sub.Action {
	case action.Update:
		req, err = r.update(sub.Fields)
	case action.PushResults:
		req, err = r.container(payload.FieldPushJSON, sub.Fields.PushJSON)
	case action.TeamLookup:
		req, err = r.team(sub.Fields)
	case action.PredictOne:
		req, err = r.predictOne(sub.Fields)
	case action.PredictBatch:
		req, err = r.container(payload.FieldBatchJSON, sub.Fields.BatchJSON)
	case action.Unknown:
		fallthrough
	default:
		r.logger.Debug(ctx, "ignoring unrecognized action", log...)
		return render.Display{}, false
	}

	if err != nil {
		if !errors.Is(err, payload.ErrValidation) {
			r.logger.Error(ctx, "building request failed", append(log, logger.Error(err))...)
		} else {
			r.logger.Debug(ctx, "submission rejected", append(log, logger.Error(err))...)
		}
		metrics.RecordValidationError(sub.Action.String())
		d := render.FromLocalError(sub.Action, err)
		metrics.RecordSubmission(sub.Action.String(), string(d.Style))
		return d, true
	}

	req.Endpoint, _ = gateway.EndpointFor(sub.Action)
	req.BaseURL = r.baseURL(sub.BaseURL)
	d := render.FromOutcome(sub.Action, r.caller.Call(ctx, req))
	metrics.RecordSubmission(sub.Action.String(), string(d.Style))
	r.logger.Info(ctx, "submission handled", append(log,
		logger.String("style", string(d.Style)),
		logger.Int("status", d.Status))...)
	return d, true
}

// Health probes the rating API's /health endpoint.
func (r *Router) Health(ctx context.Context, baseURL string) render.Display {
	out := r.caller.Call(ctx, gateway.Request{BaseURL: r.baseURL(baseURL), Endpoint: gateway.EndpointHealth})
	return render.FromOutcome(action.Unknown, out)
}

func (r *Router) baseURL(override string) string {
	if override != "" {
		return override
	}
	return r.defaultBaseURL
}

func (r *Router) update(f Fields) (gateway.Request, error) {
	body, err := payload.ParseEventKey(f.EventKey)
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{Body: body}, nil
}

func (r *Router) container(field, raw string) (gateway.Request, error) {
	body, err := payload.ParseContainer(field, raw)
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{Body: body}, nil
}

func (r *Router) team(f Fields) (gateway.Request, error) {
	team, err := payload.ParseTeamKey(f.TeamKey)
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{Query: url.Values{"team": {team}}}, nil
}

func (r *Router) predictOne(f Fields) (gateway.Request, error) {
	body, err := payload.ParseMatchup(f.Teams1, f.Teams2)
	if err != nil {
		return gateway.Request{}, err
	}
	return gateway.Request{Body: body}, nil
}
