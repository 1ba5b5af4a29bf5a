package toolbridge

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/hostcap/toolbridge/pkg/metrics"
)

// crossDocumentScriptToolResult is the fixed empty-list encoding returned
// by CrossDocumentScriptToolResult; present for interface completeness.
const crossDocumentScriptToolResult = "[]"

// ToolInfo is one entry of the bridge's tool listing, with the input
// schema serialized to its JSON text encoding.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema string `json:"inputSchema,omitempty"`
}

// Bridge is the externally callable execution surface. It mediates the
// JSON string boundary over the registry: callers holding a descriptor
// directly can bypass it entirely by invoking Execute themselves.
type Bridge struct {
	registry *Registry

	mu      sync.Mutex
	metrics *metrics.Metrics
}

// NewBridge creates a bridge over the given registry. The bridge holds no
// tool state of its own.
func NewBridge(registry *Registry) *Bridge {
	return &Bridge{registry: registry}
}

// SetMetrics attaches prometheus metrics to the bridge.
func (b *Bridge) SetMetrics(m *metrics.Metrics) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = m
}

// ListTools returns a snapshot of the registered tools in insertion order.
func (b *Bridge) ListTools() []ToolInfo {
	descriptors := b.registry.List()

	infos := make([]ToolInfo, 0, len(descriptors))
	for _, d := range descriptors {
		info := ToolInfo{Name: d.Name, Description: d.Description}
		if d.InputSchema != nil {
			if raw, err := json.Marshal(d.InputSchema); err == nil {
				info.InputSchema = string(raw)
			}
		}
		infos = append(infos, info)
	}
	return infos
}

// RegisterToolsChangedCallback forwards to the registry's single change
// subscriber slot.
func (b *Bridge) RegisterToolsChangedCallback(callback func()) {
	b.registry.OnToolsChanged(callback)
}

// CrossDocumentScriptToolResult returns the constant empty-list encoding.
func (b *Bridge) CrossDocumentScriptToolResult() (string, error) {
	return crossDocumentScriptToolResult, nil
}

// ExecuteTool looks up a tool by name, validates the JSON input against
// its declared schema, invokes it, and returns the JSON-encoded result.
//
// Cancellation of ctx races the invocation: if ctx is done first the call
// fails with aborted, the running invocation is not force-terminated, and
// its eventual outcome is absorbed rather than surfaced a second time. A
// ctx that is already done fails immediately without invoking anything.
// Invocation failures pass through unmodified; the bridge never converts
// a tool's error into an isError result.
func (b *Bridge) ExecuteTool(ctx context.Context, name string, input string) (string, error) {
	start := time.Now()
	callID := uuid.NewString()

	desc, ok := b.registry.Get(name)
	if !ok {
		log.Error().Str("tool", name).Msg("Tool not found")
		b.observe(name, "not_found", CodeNotFound, start)
		return "", newError(CodeNotFound, "tool not found: %s", name)
	}

	if err := ctx.Err(); err != nil {
		b.observe(name, "aborted", CodeAborted, start)
		return "", newError(CodeAborted, "tool execution aborted").withCause(err)
	}

	args, err := decodeInput(input)
	if err != nil {
		log.Error().Str("tool", name).Str("call_id", callID).Err(err).Msg("Invalid tool input")
		b.observe(name, "invalid_input", CodeOf(err), start)
		return "", err
	}

	if err := ValidateArgs(args, desc.InputSchema); err != nil {
		log.Error().Str("tool", name).Str("call_id", callID).Err(err).Msg("Argument validation failed")
		b.observe(name, "invalid_input", CodeOf(err), start)
		return "", err
	}

	client := newClient(callID)
	defer client.deactivate()

	log.Debug().Str("tool", name).Str("call_id", callID).Msg("Executing tool")

	type outcome struct {
		result *CallToolResult
		err    error
	}

	// Buffered so the invocation's outcome is absorbed even after an
	// abort wins the race.
	done := make(chan outcome, 1)

	go func() {
		result, err := desc.Execute(ctx, args, client)
		done <- outcome{result: result, err: err}
	}()

	select {
	case out := <-done:
		duration := time.Since(start)

		if out.err != nil {
			log.Error().
				Str("tool", name).
				Str("call_id", callID).
				Dur("duration", duration).
				Err(out.err).
				Msg("Tool execution failed")
			b.observe(name, "error", CodeOf(out.err), start)
			return "", out.err
		}

		encoded, err := encodeResult(out.result)
		if err != nil {
			log.Error().Str("tool", name).Str("call_id", callID).Err(err).Msg("Failed to encode tool result")
			b.observe(name, "error", "", start)
			return "", err
		}

		log.Debug().
			Str("tool", name).
			Str("call_id", callID).
			Dur("duration", duration).
			Msg("Tool execution completed")
		b.observe(name, "success", "", start)
		return encoded, nil

	case <-ctx.Done():
		log.Warn().
			Str("tool", name).
			Str("call_id", callID).
			Dur("duration", time.Since(start)).
			Msg("Tool execution aborted")
		b.observe(name, "aborted", CodeAborted, start)
		return "", newError(CodeAborted, "tool execution aborted").withCause(ctx.Err())
	}
}

// observe records one execution outcome when metrics are attached.
func (b *Bridge) observe(tool, status string, code Code, start time.Time) {
	b.mu.Lock()
	m := b.metrics
	b.mu.Unlock()

	if m == nil {
		return
	}
	m.ToolExecutionsTotal.WithLabelValues(tool, status).Inc()
	m.ToolExecutionDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
	if status != "success" {
		m.ToolExecutionErrorsTotal.WithLabelValues(tool, string(code)).Inc()
	}
}

// decodeInput parses the serialized arguments and rejects anything that is
// not a JSON object (bare strings, numbers, booleans, null, arrays).
func decodeInput(input string) (map[string]interface{}, error) {
	var value interface{}
	if err := json.Unmarshal([]byte(input), &value); err != nil {
		return nil, newError(CodeInvalidInput, "Invalid JSON input").withCause(err)
	}

	args, ok := value.(map[string]interface{})
	if !ok {
		return nil, newError(CodeInvalidInput, "Input must be a JSON object")
	}
	return args, nil
}

// encodeResult serializes an invocation result. A nil result encodes as
// JSON null.
func encodeResult(result *CallToolResult) (string, error) {
	if result == nil {
		return "null", nil
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
