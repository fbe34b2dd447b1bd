package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// Register makes a provider known by name without activating it.
func (h *HAL) Register(p Provider) error {
	if _, exists := h.providers[p.Name()]; exists {
		return &errcode.E{C: errcode.DuplicateRegistration, Op: "Register", Msg: p.Name()}
	}
	h.providers[p.Name()] = p
	return nil
}

// Activate makes p the active provider. The provider's Init hook runs exactly
// once; if it fails, registry state is unchanged. Activating the provider
// that is already active is a no-op. A different active provider yields
// AlreadyActive.
//
// On success the pin registry is populated from the provider's own pin
// descriptors.
func (h *HAL) Activate(p Provider) error {
	if h.active == p {
		return nil
	}
	if h.active != nil {
		return &errcode.E{C: errcode.AlreadyActive, Op: "Activate", Msg: h.active.Name()}
	}
	registered, known := h.providers[p.Name()]
	if known && registered != p {
		return &errcode.E{C: errcode.DuplicateRegistration, Op: "Activate", Msg: p.Name()}
	}

	if err := p.Init(); err != nil {
		return err
	}

	h.active = p
	for _, bp := range p.BoardPins() {
		if _, err := h.CreatePin(bp.Number, bp.Name, bp.Caps); err != nil {
			// Roll the half-built activation back completely.
			h.pins.releaseAll()
			_ = p.Deinit()
			h.active = nil
			h.pins.init(h.opts.PinCapacity)
			return err
		}
	}
	if !known {
		h.providers[p.Name()] = p
	}
	return nil
}

// Deactivate runs the active provider's Deinit hook, releases every pin the
// provider owns and clears the active pointer. A pin that survives the
// release sweep is a programming error and panics; recovering would mean
// guessing caller intent.
//
// The board namespace is reset here and only here.
func (h *HAL) Deactivate() error {
	if h.active == nil {
		return errcode.NoActiveProvider
	}
	err := h.active.Deinit()

	h.pins.releaseAll()
	if n := h.pins.live(); n != 0 {
		panic("hal: provider deactivated with pins still held")
	}
	h.active = nil
	h.pins.init(h.opts.PinCapacity)
	h.board.reset()
	return err
}

// Active returns the active provider, if any.
func (h *HAL) Active() (Provider, bool) {
	return h.active, h.active != nil
}

// ByName returns a registered provider by name.
func (h *HAL) ByName(name string) (Provider, bool) {
	p, ok := h.providers[name]
	return p, ok
}

// HasCapability reports whether an active provider exists and its capability
// set contains every flag in want.
func (h *HAL) HasCapability(want types.CapabilitySet) bool {
	return h.active != nil && h.active.Capabilities().Has(want)
}
