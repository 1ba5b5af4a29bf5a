package toolbridge

import "context"

// ExecuteFunc is the function signature for tool execution. The client is
// a per-call capability and must not be retained past the call.
type ExecuteFunc func(ctx context.Context, args map[string]interface{}, client *Client) (*CallToolResult, error)

// ToolAnnotations are optional behavioral hints about a tool. The core
// stores and lists them but never interprets them.
type ToolAnnotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    bool   `json:"readOnlyHint,omitempty"`
	DestructiveHint bool   `json:"destructiveHint,omitempty"`
	IdempotentHint  bool   `json:"idempotentHint,omitempty"`
	OpenWorldHint   bool   `json:"openWorldHint,omitempty"`
}

// ToolDescriptor defines a registered operation. Name is its identity and
// is immutable after registration. The registry stores a copy, so mutating
// the caller's descriptor after Register has no effect on the stored entry.
type ToolDescriptor struct {
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	InputSchema  *Schema          `json:"inputSchema,omitempty"`
	OutputSchema *Schema          `json:"outputSchema,omitempty"`
	Annotations  *ToolAnnotations `json:"annotations,omitempty"`
	Execute      ExecuteFunc      `json:"-"`
}
