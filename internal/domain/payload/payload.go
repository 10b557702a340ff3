// Package payload turns raw operator input into validated rating API
// request bodies.
package payload

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Form field names, shared with the console and CLI surfaces.
const (
	FieldEventKey  = "event_key"
	FieldPushJSON  = "push_json"
	FieldTeamKey   = "team_key"
	FieldTeams1    = "teams1"
	FieldTeams2    = "teams2"
	FieldBatchJSON = "batch_json"
)

// Operator-facing messages.
const (
	MsgEventKeyRequired = "Please enter an event key (e.g., 2025nyrr)."
	MsgEventKeyInvalid  = "Invalid event key. Use full key with year, e.g., 2025nyrr."
	MsgInvalidJSON      = "Invalid JSON array."
	MsgTeamKeyRequired  = "Provide a team key like frc254."
	MsgAlliancesMissing = "Enter both alliances."
)

var (
	eventKeyPattern   = regexp.MustCompile(`(?i)^\d{4}[a-z0-9]+$`)
	allianceSeparator = regexp.MustCompile(`[,\s]+`)
)

// The remote API decides whether the items are well formed; locally we only
// insist on a JSON container.
const containerSchema = `{"type": ["array", "object"]}`

var loadContainerSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(containerSchema))
})

// EventUpdate is the body of POST /update.
type EventUpdate struct {
	EventKey string `json:"event_key"`
}

// Matchup is the body of POST /predict_match.
type Matchup struct {
	Teams1 []string `json:"teams1"`
	Teams2 []string `json:"teams2"`
}

// ParseEventKey validates an event key such as 2025nyrr.
func ParseEventKey(raw string) (EventUpdate, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return EventUpdate{}, invalid(FieldEventKey, MsgEventKeyRequired)
	}
	if !eventKeyPattern.MatchString(key) {
		return EventUpdate{}, invalid(FieldEventKey, MsgEventKeyInvalid)
	}
	return EventUpdate{EventKey: key}, nil
}

// ParseContainer accepts text that decodes to a JSON array or object and
// returns it untouched for forwarding. field names the form field the text
// came from.
func ParseContainer(field, raw string) (json.RawMessage, error) {
	doc := bytes.TrimSpace([]byte(raw))
	// The schema loader only reads the first value, so reject trailing
	// garbage up front.
	if len(doc) == 0 || !json.Valid(doc) {
		return nil, invalid(field, MsgInvalidJSON)
	}
	schema, err := loadContainerSchema()
	if err != nil {
		return nil, err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil || !result.Valid() {
		return nil, invalid(field, MsgInvalidJSON)
	}
	return json.RawMessage(doc), nil
}

// ParseTeamKey validates a single team key. Keys are opaque; only emptiness
// is checked.
func ParseTeamKey(raw string) (string, error) {
	team := strings.TrimSpace(raw)
	if team == "" {
		return "", invalid(FieldTeamKey, MsgTeamKeyRequired)
	}
	return team, nil
}

// ParseMatchup tokenizes both alliances; each must yield at least one team.
func ParseMatchup(teams1, teams2 string) (Matchup, error) {
	m := Matchup{Teams1: SplitAlliance(teams1), Teams2: SplitAlliance(teams2)}
	if len(m.Teams1) == 0 {
		return Matchup{}, invalid(FieldTeams1, MsgAlliancesMissing)
	}
	if len(m.Teams2) == 0 {
		return Matchup{}, invalid(FieldTeams2, MsgAlliancesMissing)
	}
	return m, nil
}

// SplitAlliance splits on runs of commas and whitespace, dropping empty
// tokens. Order and duplicates are kept.
func SplitAlliance(s string) []string {
	parts := allianceSeparator.Split(s, -1)
	teams := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			teams = append(teams, p)
		}
	}
	return teams
}
