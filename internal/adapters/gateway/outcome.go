package gateway

import (
	"bytes"
	"encoding/json"
	"time"
)

// Outcome is the normalized result of one rating API round trip. Build it
// with NewOutcome so Success always agrees with the other fields.
type Outcome struct {
	// Success is true iff there was no transport error, the status is 2xx
	// and the body parsed as JSON.
	Success bool
	// Status is the HTTP status code, 0 when no response arrived.
	Status int
	// Parsed holds the response body when it is valid JSON, nil otherwise.
	Parsed json.RawMessage
	// Raw is the response body text as received.
	Raw string
	// TransportError describes a connection, DNS or timeout failure.
	TransportError string
	// Duration is the wall time the call took.
	Duration time.Duration
}

// NewOutcome normalizes a finished call. A 2xx response whose body is not
// JSON is reported as a failure; so is a literal null body.
func NewOutcome(status int, raw string, transportErr error) Outcome {
	o := Outcome{Status: status, Raw: raw}
	if transportErr != nil {
		o.TransportError = transportErr.Error()
		if o.TransportError == "" {
			o.TransportError = "transport error"
		}
	}
	if body := bytes.TrimSpace([]byte(raw)); len(body) > 0 && json.Valid(body) && !bytes.Equal(body, []byte("null")) {
		o.Parsed = json.RawMessage(body)
	}
	o.Success = o.TransportError == "" &&
		o.Status >= 200 && o.Status < 300 &&
		o.Parsed != nil
	return o
}
