package tools

import (
	"bytes"
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// Request is a decoded, immutable set of tool arguments.
type Request struct {
	tool   string
	params []Param
	values map[string]any
}

// Decode reads the declared params from a JSON object. Missing optional params take
// their default; undeclared keys are ignored.
func Decode(tool string, params []Param, raw []byte) (Request, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		raw = []byte("{}")
	}
	if !gjson.ValidBytes(raw) {
		return Request{}, fmt.Errorf("%s: arguments are not valid JSON", tool)
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsObject() {
		return Request{}, fmt.Errorf("%s: arguments must be a JSON object", tool)
	}

	values := make(map[string]any, len(params))
	for _, p := range params {
		field := doc.Get(p.Name)
		if !field.Exists() || field.Type == gjson.Null {
			if p.Required() {
				return Request{}, fmt.Errorf("%s: missing required parameter %q", tool, p.Name)
			}
			values[p.Name] = p.Default
			continue
		}
		value, err := decodeValue(p, field)
		if err != nil {
			return Request{}, fmt.Errorf("%s: %w", tool, err)
		}
		values[p.Name] = value
	}
	return Request{tool: tool, params: params, values: values}, nil
}

func decodeValue(p Param, field gjson.Result) (any, error) {
	switch p.Type {
	case TypeInteger:
		if field.Type != gjson.Number {
			return nil, fmt.Errorf("parameter %q must be an integer", p.Name)
		}
		if field.Num != math.Trunc(field.Num) {
			return nil, fmt.Errorf("parameter %q must be an integer, got %s", p.Name, field.Raw)
		}
		if math.Abs(field.Num) > math.MaxInt32 {
			return nil, fmt.Errorf("parameter %q is out of range, got %s", p.Name, field.Raw)
		}
		return int(field.Int()), nil
	default:
		if field.Type != gjson.String {
			return nil, fmt.Errorf("parameter %q must be a string path", p.Name)
		}
		if field.Str == "" {
			return nil, fmt.Errorf("parameter %q must not be empty", p.Name)
		}
		return field.Str, nil
	}
}

// String returns a string or path parameter.
func (r Request) String(name string) string {
	s, _ := r.values[name].(string)
	return s
}

// Int returns an integer parameter.
func (r Request) Int(name string) int {
	switch v := r.values[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Values returns a copy of the decoded values.
func (r Request) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for _, p := range r.params {
		out[p.Name] = r.values[p.Name]
	}
	return out
}
