// Package action enumerates the operator intents the console can submit.
package action

// Action is one of the closed set of operator intents. The zero value is
// Unknown and never dispatches.
type Action int

const (
	Unknown Action = iota
	Update
	PushResults
	TeamLookup
	PredictOne
	PredictBatch
)

// Form values carried by the console's submit buttons.
var names = map[Action]string{ //nolint:gochecknoglobals // fixed lookup table
	Update:       "update",
	PushResults:  "push",
	TeamLookup:   "team",
	PredictOne:   "predict_one",
	PredictBatch: "predict_batch",
}

// All returns every known action in display order.
func All() []Action {
	return []Action{Update, PushResults, TeamLookup, PredictOne, PredictBatch}
}

// Parse maps a submitted action name to an Action. Names are matched
// exactly; anything else yields Unknown.
func Parse(name string) Action {
	for a, n := range names {
		if n == name {
			return a
		}
	}
	return Unknown
}

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	_, ok := names[a]
	return ok
}

func (a Action) String() string {
	if n, ok := names[a]; ok {
		return n
	}
	return "unknown"
}
