// Package toolbridge registers named tools and executes them across a JSON
// string boundary, emulating a host-provided capability API.
//
// Invariants:
// - Tool names are unique; duplicate registration is rejected, never replaced.
// - Arguments are schema-validated before a tool runs.
// - A burst of registry mutations coalesces into a single change notification.
// - The per-call interaction client is invalid once its call settles.
//
// Usage:
//
//	reg := toolbridge.NewRegistry()
//	_ = reg.Register(toolbridge.ToolDescriptor{
//		Name:        "echo",
//		Description: "Echo input",
//		InputSchema: &toolbridge.Schema{
//			Type:       "object",
//			Properties: map[string]*toolbridge.Property{"text": {Type: "string", Description: "text"}},
//			Required:   []string{"text"},
//		},
//		Execute: func(ctx context.Context, args map[string]any, client *toolbridge.Client) (*toolbridge.CallToolResult, error) {
//			return toolbridge.NewTextResult(args["text"].(string)), nil
//		},
//	})
//	bridge := toolbridge.NewBridge(reg)
//	out, err := bridge.ExecuteTool(ctx, "echo", `{"text":"hi"}`)
package toolbridge
