package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// DefaultPinCapacity bounds the pin registry arena unless overridden.
const DefaultPinCapacity = 40

// Pin is one addressable I/O line, bound to exactly one provider for its
// whole life. The provider reference is non-owning: it never extends the
// provider's lifetime, and the provider's deactivation releases the pin.
type Pin struct {
	number   int
	name     string
	caps     types.CapabilitySet
	provider Provider

	driverData any
	released   bool
}

func (p *Pin) Number() int                       { return p.number }
func (p *Pin) Name() string                      { return p.name }
func (p *Pin) Capabilities() types.CapabilitySet { return p.caps }
func (p *Pin) Provider() Provider                { return p.provider }

// DriverData is the provider-private slot. The dispatch layer never
// interprets it.
func (p *Pin) DriverData() any     { return p.driverData }
func (p *Pin) SetDriverData(v any) { p.driverData = v }
func (p *Pin) Released() bool      { return p.released }
func (p *Pin) String() string      { return p.name }

// Capability predicates, pure over the pin's own set.
func (p *Pin) SupportsDigital() bool   { return p.caps.Has(types.CapDigitalIO) }
func (p *Pin) SupportsAnalogIn() bool  { return p.caps.Has(types.CapAnalogIn) }
func (p *Pin) SupportsAnalogOut() bool { return p.caps.Has(types.CapAnalogOut) }

// pinTable is the fixed-capacity pin arena with name and number indexes over
// the same entries. It never grows and never overwrites.
type pinTable struct {
	arena    []Pin
	used     int
	byName   map[string]*Pin
	byNumber map[int]*Pin
	alive    int
}

func (t *pinTable) init(capacity int) {
	t.arena = make([]Pin, capacity)
	t.used = 0
	t.alive = 0
	t.byName = make(map[string]*Pin, capacity)
	t.byNumber = make(map[int]*Pin, capacity)
}

func (t *pinTable) live() int { return t.alive }

// CreatePin registers a pin with the active provider. The pin's capability
// set must be a subset of the provider's; violations fail with
// CapabilityMismatch rather than silently widening.
func (h *HAL) CreatePin(number int, name string, caps types.CapabilitySet) (*Pin, error) {
	if h.active == nil {
		return nil, errcode.NoActiveProvider
	}
	if _, dup := h.pins.byName[name]; dup {
		return nil, &errcode.E{C: errcode.DuplicateName, Op: "CreatePin", Msg: name}
	}
	if _, dup := h.pins.byNumber[number]; dup {
		return nil, &errcode.E{C: errcode.PinInUse, Op: "CreatePin", Msg: name}
	}
	if !caps.Subset(h.active.Capabilities()) {
		return nil, &errcode.E{C: errcode.CapabilityMismatch, Op: "CreatePin", Msg: name}
	}
	if h.pins.used >= len(h.pins.arena) {
		return nil, &errcode.E{C: errcode.TableExhausted, Op: "CreatePin", Msg: name}
	}

	p := &h.pins.arena[h.pins.used]
	h.pins.used++
	*p = Pin{number: number, name: name, caps: caps, provider: h.active}
	h.pins.byName[name] = p
	h.pins.byNumber[number] = p
	h.pins.alive++
	return p, nil
}

// PinByName looks a pin up by its unique name.
func (h *HAL) PinByName(name string) (*Pin, bool) {
	p, ok := h.pins.byName[name]
	return p, ok
}

// PinByNumber looks a pin up by number. Both indexes cover the same entries,
// so PinByName and PinByNumber always agree on identity.
func (h *HAL) PinByNumber(n int) (*Pin, bool) {
	p, ok := h.pins.byNumber[n]
	return p, ok
}

// ReleasePin returns a pin to the provider. Releasing an already-released pin
// is a no-op; the provider's pin-deinit hook fires exactly once per pin.
func (h *HAL) ReleasePin(p *Pin) {
	h.pins.release(p)
}

func (t *pinTable) release(p *Pin) {
	if p == nil || p.released {
		return
	}
	if ops := p.provider.Pins(); ops != nil {
		ops.DeinitPin(p)
	}
	p.released = true
	delete(t.byName, p.name)
	delete(t.byNumber, p.number)
	t.alive--
}

// releaseAll sweeps every live pin, firing each deinit hook once.
func (t *pinTable) releaseAll() {
	for i := 0; i < t.used; i++ {
		t.release(&t.arena[i])
	}
}
