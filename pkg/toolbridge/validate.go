package toolbridge

import (
	"encoding/json"
	"math"
)

// ValidateArgs checks args against a declared schema. It fails with
// missing_field for absent required names and type_mismatch for values
// whose runtime shape contradicts a declared primitive type. Declared
// types it does not recognize always pass, and args keys absent from the
// schema's properties are ignored. additionalProperties is not enforced
// at this layer.
func ValidateArgs(args map[string]interface{}, schema *Schema) error {
	if schema == nil {
		return nil
	}

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			err := newError(CodeMissingField, "missing required field %q", name)
			err.Field = name
			return err
		}
	}

	for name, value := range args {
		prop, ok := schema.Properties[name]
		if !ok || prop.Type == "" {
			continue
		}
		if !matchesType(value, prop.Type) {
			err := newError(CodeTypeMismatch, "field %q must be of type %s", name, prop.Type)
			err.Field = name
			err.Expected = prop.Type
			return err
		}
	}

	return nil
}

// matchesType reports whether value's runtime shape satisfies the declared
// type. Unknown declared types return true.
func matchesType(value interface{}, declared string) bool {
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		n, ok := asFloat(value)
		return ok && !math.IsNaN(n)
	case "integer":
		n, ok := asFloat(value)
		return ok && !math.IsNaN(n) && n == math.Trunc(n)
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "object":
		m, ok := value.(map[string]interface{})
		return ok && m != nil
	case "array":
		_, ok := value.([]interface{})
		return ok
	case "null":
		return value == nil
	default:
		return true
	}
}

// asFloat widens any numeric argument value. JSON decoding produces
// float64, but native callers may pass Go integer kinds or json.Number.
func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
