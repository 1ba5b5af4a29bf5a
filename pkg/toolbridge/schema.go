package toolbridge

// Schema is a minimal JSON-Schema-like shape describing a tool's input or
// output. Unknown schema content is tolerated everywhere: the validator
// only interprets required names and declared primitive types.
type Schema struct {
	Type                 string               `json:"type"`
	Properties           map[string]*Property `json:"properties,omitempty"`
	Required             []string             `json:"required,omitempty"`
	AdditionalProperties *bool                `json:"additionalProperties,omitempty"`
}

// Property describes one named schema property.
type Property struct {
	Type        string        `json:"type,omitempty"`
	Description string        `json:"description,omitempty"`
	Enum        []interface{} `json:"enum,omitempty"`
	Items       *Property     `json:"items,omitempty"`
}

// DefaultInputSchema returns a fresh "object with no required properties"
// schema, substituted by the registry when a descriptor omits its input
// schema. Each call returns a new value so stored descriptors never share
// schema state.
func DefaultInputSchema() *Schema {
	return &Schema{
		Type:       "object",
		Properties: map[string]*Property{},
	}
}
