package gateway

import (
	"net/http"

	"github.com/okian/ratingdesk/internal/domain/action"
)

// Endpoint pairs an HTTP method with a rating API path.
type Endpoint struct {
	Method string
	Path   string
}

// Rating API endpoints.
var (
	EndpointUpdate       = Endpoint{Method: http.MethodPost, Path: "/update"}
	EndpointPushResults  = Endpoint{Method: http.MethodPost, Path: "/push_results"}
	EndpointPredictTeam  = Endpoint{Method: http.MethodGet, Path: "/predict_team"}
	EndpointPredictMatch = Endpoint{Method: http.MethodPost, Path: "/predict_match"}
	EndpointPredictBatch = Endpoint{Method: http.MethodPost, Path: "/predict_batch"}
	EndpointHealth       = Endpoint{Method: http.MethodGet, Path: "/health"}
)

// EndpointFor returns the endpoint an action talks to.
func EndpointFor(a action.Action) (Endpoint, bool) {
	switch a {
	case action.Update:
		return EndpointUpdate, true
	case action.PushResults:
		return EndpointPushResults, true
	case action.TeamLookup:
		return EndpointPredictTeam, true
	case action.PredictOne:
		return EndpointPredictMatch, true
	case action.PredictBatch:
		return EndpointPredictBatch, true
	case action.Unknown:
	}
	return Endpoint{}, false
}
