package toolbridge

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/hostcap/toolbridge/pkg/metrics"
)

// DefaultNotifyWindow is how long the registry waits before flushing a
// pending change notification, so a burst of mutations produces one
// callback instead of one per mutation.
const DefaultNotifyWindow = 10 * time.Millisecond

// Registry owns the authoritative set of registered tools. All mutation
// entry points are synchronous; the only asynchronous behavior is the
// coalesced change notification.
type Registry struct {
	mu            sync.Mutex
	tools         map[string]*ToolDescriptor
	order         []string
	onChanged     func()
	notifyPending bool
	notifyWindow  time.Duration
	metrics       *metrics.Metrics
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:        make(map[string]*ToolDescriptor),
		notifyWindow: DefaultNotifyWindow,
	}
}

// SetNotifyWindow overrides the notification coalescing window.
func (r *Registry) SetNotifyWindow(window time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if window > 0 {
		r.notifyWindow = window
	}
}

// SetMetrics attaches prometheus metrics to the registry.
func (r *Registry) SetMetrics(m *metrics.Metrics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metrics = m
}

// Register adds a tool. It fails with invalid_descriptor on a malformed
// descriptor and already_registered on a duplicate name; registration is
// never an implicit replace. The registry stores a copy of the descriptor
// with a defaulted input schema, so later mutation of the caller's value
// does not affect the stored entry.
func (r *Registry) Register(d ToolDescriptor) error {
	if d.Name == "" {
		return newError(CodeInvalidDescriptor, "tool name must be a non-empty string")
	}
	if d.Description == "" {
		return newError(CodeInvalidDescriptor, "tool description must be a non-empty string")
	}
	if d.Execute == nil {
		return newError(CodeInvalidDescriptor, "tool %q has no execute function", d.Name)
	}

	stored := d
	if stored.InputSchema == nil {
		stored.InputSchema = DefaultInputSchema()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[d.Name]; exists {
		return newError(CodeAlreadyRegistered, "tool %q is already registered", d.Name)
	}

	if d.InputSchema != nil {
		checkSchemaDocument(d.Name, d.InputSchema)
	}

	r.tools[d.Name] = &stored
	r.order = append(r.order, d.Name)
	r.scheduleNotifyLocked()

	if r.metrics != nil {
		r.metrics.ToolsRegistered.Set(float64(len(r.tools)))
	}

	log.Debug().Str("tool", d.Name).Msg("Tool registered")

	return nil
}

// Unregister removes a tool. Removing an unknown name is a silent no-op;
// a notification is scheduled only when an entry was actually removed.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; !exists {
		return
	}

	delete(r.tools, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.scheduleNotifyLocked()

	if r.metrics != nil {
		r.metrics.ToolsRegistered.Set(float64(len(r.tools)))
	}

	log.Debug().Str("tool", name).Msg("Tool unregistered")
}

// Clear removes all tools. A notification is scheduled only when the set
// was non-empty.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.tools) == 0 {
		return
	}

	removed := len(r.tools)
	r.tools = make(map[string]*ToolDescriptor)
	r.order = nil
	r.scheduleNotifyLocked()

	if r.metrics != nil {
		r.metrics.ToolsRegistered.Set(0)
	}

	log.Debug().Int("removed", removed).Msg("Tool registry cleared")
}

// Get returns a copy of the descriptor registered under name.
func (r *Registry) Get(name string) (ToolDescriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.tools[name]
	if !ok {
		return ToolDescriptor{}, false
	}
	return *d, true
}

// List returns copies of all registered descriptors in insertion order.
func (r *Registry) List() []ToolDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]ToolDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tools)
}

// OnToolsChanged sets the single change subscriber. Passing nil clears it;
// setting a new callback drops the previous one.
func (r *Registry) OnToolsChanged(callback func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChanged = callback
}

// scheduleNotifyLocked arms one flush timer for the current burst of
// mutations. Callers must hold r.mu.
func (r *Registry) scheduleNotifyLocked() {
	if r.notifyPending {
		return
	}
	r.notifyPending = true
	time.AfterFunc(r.notifyWindow, r.flushNotify)
}

// flushNotify fires the subscriber once for the coalesced burst. The
// callback runs without the registry lock held.
func (r *Registry) flushNotify() {
	r.mu.Lock()
	r.notifyPending = false
	callback := r.onChanged
	m := r.metrics
	r.mu.Unlock()

	if m != nil {
		m.ToolChangeNotificationsTotal.Inc()
	}
	if callback != nil {
		callback()
	}
}

// checkSchemaDocument compiles a declared schema as a JSON Schema document
// and logs a warning when it does not compile. Advisory only: the
// validator tolerates unknown types, so compilation failure never blocks
// registration.
func checkSchemaDocument(tool string, schema *Schema) {
	loader := gojsonschema.NewGoLoader(schema)
	if _, err := gojsonschema.NewSchema(loader); err != nil {
		log.Warn().
			Str("tool", tool).
			Err(err).
			Msg("Declared input schema is not a valid JSON Schema document")
	}
}
