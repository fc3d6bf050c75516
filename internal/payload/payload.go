// Package payload validates the structured payloads carried by
// SESSION_START and SESSION_END action events.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const sessionStartSchema = `{
	"type": "object",
	"properties": {
		"plannedMinutes": {"type": "integer", "minimum": 1}
	},
	"required": ["plannedMinutes"]
}`

const sessionEndSchema = `{
	"type": "object",
	"properties": {
		"actualMinutes": {"type": "integer", "minimum": 0},
		"endReason": {"type": "string"}
	},
	"required": ["actualMinutes"]
}`

var (
	startSchema = mustCompile("session_start.json", sessionStartSchema)
	endSchema   = mustCompile("session_end.json", sessionEndSchema)
)

func mustCompile(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, strings.NewReader(schema)); err != nil {
		panic(err)
	}
	return compiler.MustCompile(name)
}

type SessionStart struct {
	PlannedMinutes int `json:"plannedMinutes"`
}

type SessionEnd struct {
	ActualMinutes int    `json:"actualMinutes"`
	EndReason     string `json:"endReason"`
}

var ErrInvalidPayload = errors.New("payload does not match schema")

// ParseSessionStart validates and decodes a SESSION_START payload.
func ParseSessionStart(p map[string]any) (SessionStart, error) {
	var out SessionStart
	if err := validateInto(startSchema, p, &out); err != nil {
		return SessionStart{}, err
	}
	return out, nil
}

// ParseSessionEnd validates and decodes a SESSION_END payload.
func ParseSessionEnd(p map[string]any) (SessionEnd, error) {
	var out SessionEnd
	if err := validateInto(endSchema, p, &out); err != nil {
		return SessionEnd{}, err
	}
	return out, nil
}

// validateInto round-trips the payload through JSON so that values built in
// Go code (int) and values decoded from the wire (float64) validate the same.
func validateInto(schema *jsonschema.Schema, p map[string]any, out any) error {
	if p == nil {
		return ErrInvalidPayload
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return ErrInvalidPayload
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return ErrInvalidPayload
	}
	if err := schema.Validate(doc); err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	return dec.Decode(out)
}
