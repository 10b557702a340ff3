package render

import (
	"bytes"
	"encoding/json"
	"strings"
)

const indent = "    "

// Body is the value shown to the operator: either a structured JSON value
// or a raw string. Implementations are Structured and RawString.
type Body interface {
	pretty() string
}

// Structured is a JSON value that already parsed.
type Structured struct {
	JSON json.RawMessage
}

// RawString is text that may or may not hold JSON.
type RawString struct {
	Text string
}

// Pretty renders a body with four-space indentation when it is JSON and
// verbatim otherwise.
func Pretty(b Body) string {
	if b == nil {
		return ""
	}
	return b.pretty()
}

// A structured JSON string is shown by its content, so a server that wraps
// a JSON document in a string still gets it indented.
func (s Structured) pretty() string {
	doc := bytes.TrimSpace(s.JSON)
	if len(doc) > 0 && doc[0] == '"' {
		var text string
		if err := json.Unmarshal(doc, &text); err == nil {
			return RawString{Text: text}.pretty()
		}
	}
	if out, ok := indentJSON(doc); ok {
		return out
	}
	return string(s.JSON)
}

func (r RawString) pretty() string {
	if out, ok := indentJSON([]byte(strings.TrimSpace(r.Text))); ok {
		return out
	}
	return r.Text
}

// indentJSON keeps key order and the original number and escape spelling.
func indentJSON(doc []byte) (string, bool) {
	if len(doc) == 0 || !json.Valid(doc) {
		return "", false
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, doc, "", indent); err != nil {
		return "", false
	}
	return buf.String(), true
}
