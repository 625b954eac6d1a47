package tools

import (
	"hnet-mcp/internal/envelope"
)

// ParamType is the semantic type of a tool parameter.
type ParamType string

const (
	TypePath    ParamType = "path"
	TypeInteger ParamType = "integer"
)

// Param declares one named tool parameter. A parameter with a nil Default is required.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Default     any
}

// Required reports whether the caller must supply the parameter.
func (p Param) Required() bool { return p.Default == nil }

// JSONType maps the semantic type onto a JSON Schema type.
func (p Param) JSONType() string {
	if p.Type == TypeInteger {
		return "integer"
	}
	return "string"
}

// Invocation is everything the runner needs to launch a tool's script.
type Invocation struct {
	// Script is the script file name inside the tools directory.
	Script string
	Args   []string
	// Action completes "Failed to ..." when the script cannot be launched.
	Action string
	Parse  envelope.Parser
}

// Tool describes a callable tool backed by one external script.
type Tool interface {
	Name() string
	Description() string
	Params() []Param
	Build(req Request) (Invocation, error)
}

// Schema returns the JSON Schema object for a parameter list.
func Schema(params []Param) map[string]any {
	props := map[string]any{}
	required := []string{}
	for _, p := range params {
		prop := map[string]any{"type": p.JSONType()}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		props[p.Name] = prop
		if p.Required() {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}
