// Package hal is the provider/capability dispatch layer: one uniform pin and
// bus contract over heterogeneous backends. A single HAL context owns the
// provider registry, the pin registry and the generated board namespace, and
// routes every interpreter-facing call through the active provider's
// operation tables after a capability check.
//
// The package is single-threaded by contract. Calls never suspend or yield
// internally; cooperative scheduling belongs to the caller and is reachable
// only through the injected yield hook.
package hal

import "boardhal-go/boards"

// Options configures a HAL context. Zero values select the defaults.
type Options struct {
	// PinCapacity bounds the pin registry arena. Default DefaultPinCapacity.
	PinCapacity int

	// BoardID is published in the board namespace metadata. Default is the
	// active provider's name.
	BoardID string

	// Descriptors is the ordered generic board-pin list the namespace
	// generator walks. Default boards.Generic.
	Descriptors []boards.Desc

	// Yield, when non-nil, is invoked by providers between polling
	// iterations (for example between I2C scan probes). The dispatch layer
	// itself never calls it.
	Yield func()
}

// HAL is the explicit context object holding all registry state. There are no
// hidden process globals; activation and deactivation are testable in
// isolation by constructing a fresh context.
type HAL struct {
	opts Options

	providers map[string]Provider
	active    Provider

	pins  pinTable
	board boardNamespace
}

// New returns an initialised HAL context with no providers registered.
func New(opts Options) *HAL {
	if opts.PinCapacity <= 0 {
		opts.PinCapacity = DefaultPinCapacity
	}
	if opts.Descriptors == nil {
		opts.Descriptors = boards.Generic
	}
	h := &HAL{
		opts:      opts,
		providers: make(map[string]Provider),
	}
	h.pins.init(opts.PinCapacity)
	return h
}

// Yield runs the injected scheduling hook, if any. Providers call this
// between polling iterations; the HAL performs no suspension of its own.
func (h *HAL) Yield() {
	if h.opts.Yield != nil {
		h.opts.Yield()
	}
}

// Reset deactivates any active provider and forgets all registrations,
// returning the context to its just-constructed state.
func (h *HAL) Reset() {
	if h.active != nil {
		_ = h.Deactivate()
	}
	h.providers = make(map[string]Provider)
	h.pins.init(h.opts.PinCapacity)
	h.board.reset()
}
