package tool

import (
	"context"
	"strconv"
	"strings"
)

// ArgType is the wire type of a tool argument.
type ArgType string

const (
	TypeString ArgType = "string"
	TypeInt    ArgType = "integer"
	TypeFloat  ArgType = "number"
	TypeBool   ArgType = "boolean"
)

// Arg declares one named, typed tool argument. Optional arguments may carry a
// default applied when the caller omits them.
type Arg struct {
	Name     string
	Desc     string
	Type     ArgType
	Required bool
	Default  any
}

// Args holds coerced argument values for one invocation.
type Args map[string]any

func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

func (a Args) Int(name string) int {
	v, _ := a[name].(int)
	return v
}

func (a Args) Float(name string) float64 {
	v, _ := a[name].(float64)
	return v
}

func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Handler executes one tool call to completion. The returned string is
// speech-safe text; errors are converted to text at the dispatch boundary and
// never propagate further.
type Handler func(ctx context.Context, args Args) (string, error)

// Spec is one tool: name, description, argument schema and handler.
type Spec struct {
	Name    string
	Desc    string
	Args    []Arg
	Handler Handler
}

// coerce converts a raw JSON-shaped value into the declared argument type.
// Stringified numbers and booleans are accepted because reasoning components
// routinely produce them.
func coerce(t ArgType, raw any) (any, bool) {
	switch t {
	case TypeString:
		if s, ok := raw.(string); ok {
			return s, true
		}
	case TypeInt:
		switch v := raw.(type) {
		case int:
			return v, true
		case float64:
			return int(v), true
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n, true
			}
		}
	case TypeFloat:
		switch v := raw.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
				return f, true
			}
		}
	case TypeBool:
		switch v := raw.(type) {
		case bool:
			return v, true
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b, true
			}
		}
	}
	return nil, false
}
