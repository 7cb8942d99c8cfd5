// Package extract turns a raw chat-completion string into the JSON
// object embedded in it. Models are told to return bare JSON, but in
// practice they wrap it in prose, markdown fences, or both, so every
// completion goes through the same strip/slice/parse steps before
// anything downstream sees it.
package extract

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoJSONObject means the completion had no recognizable JSON
	// object at all. Treated as an unusable upstream response.
	ErrNoJSONObject = errors.New("no JSON object found in completion")
	// ErrMalformedJSON means a JSON-looking span was found but did not
	// parse, typically a raw newline inside a string value or truncated
	// output.
	ErrMalformedJSON = errors.New("completion JSON failed to parse")
)

// Error carries the original completion text alongside the failure so
// handlers can surface it for diagnosis.
type Error struct {
	Kind error
	Raw  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind.Error(), e.Err)
	}
	return e.Kind.Error()
}

func (e *Error) Is(target error) bool { return target == e.Kind }
func (e *Error) Unwrap() error        { return e.Err }

var fenceMarkers = regexp.MustCompile("(?i)```json|```")

// Explanation extracts the structured explanation object from a raw
// completion.
func Explanation(raw string) (map[string]any, error) {
	return object(raw)
}

// Tutorial extracts a study-card object. Multi-line fields arrive
// base64-encoded (the prompt forbids raw newlines inside JSON strings);
// they are decoded here into plain-text siblings. A bad payload in one
// of those fields is not worth failing the whole card over, so decode
// failures just leave the derived field out.
func Tutorial(raw string) (map[string]any, error) {
	obj, err := object(raw)
	if err != nil {
		return nil, err
	}
	if b64, ok := obj["pseudocodeB64"].(string); ok {
		if text, decErr := base64.StdEncoding.DecodeString(b64); decErr == nil {
			obj["pseudocode"] = string(text)
		}
	}
	if ce, ok := obj["codeExample"].(map[string]any); ok {
		if b64, ok := ce["codeB64"].(string); ok {
			if text, decErr := base64.StdEncoding.DecodeString(b64); decErr == nil {
				ce["code"] = string(text)
			}
		}
	}
	return obj, nil
}

// object strips markdown fences, slices the text to the span between
// the first "{" and the last "}", and parses that span. The greedy span
// assumes the model emitted exactly one top-level object and no literal
// "}" in trailing prose; see the extraction tests for where that
// assumption bites.
func object(raw string) (map[string]any, error) {
	stripped := strings.TrimSpace(fenceMarkers.ReplaceAllString(raw, ""))

	start := strings.Index(stripped, "{")
	last := strings.LastIndex(stripped, "}")
	if start == -1 || last < start {
		return nil, &Error{Kind: ErrNoJSONObject, Raw: raw}
	}

	span := stripped[start : last+1]
	var obj map[string]any
	if err := json.Unmarshal([]byte(span), &obj); err != nil {
		return nil, &Error{Kind: ErrMalformedJSON, Raw: raw, Err: err}
	}
	return obj, nil
}
