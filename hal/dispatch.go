package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// Digital and analog dispatch. Every call gates on the pin's own capability
// set before the provider's operation table is consulted; a provider is never
// asked to perform an operation its capabilities disallow.

func (h *HAL) checkPin(op string, p *Pin, want types.CapabilitySet) error {
	if p == nil || p.released {
		return &errcode.E{C: errcode.PinNotFound, Op: op}
	}
	if !p.caps.Has(want) {
		return &errcode.E{C: errcode.CapabilityUnsupported, Op: op, Msg: p.name}
	}
	return nil
}

// SetDirection configures a pin for input or output.
func (h *HAL) SetDirection(p *Pin, d types.Direction) error {
	if err := h.checkPin("SetDirection", p, types.CapDigitalIO); err != nil {
		return err
	}
	return p.provider.Pins().SetDirection(p, d)
}

// SetValue drives a digital output level.
func (h *HAL) SetValue(p *Pin, level bool) error {
	if err := h.checkPin("SetValue", p, types.CapDigitalIO); err != nil {
		return err
	}
	return p.provider.Pins().SetValue(p, level)
}

// Value samples a digital level.
func (h *HAL) Value(p *Pin) (bool, error) {
	if err := h.checkPin("Value", p, types.CapDigitalIO); err != nil {
		return false, err
	}
	return p.provider.Pins().Value(p)
}

// SetPull configures the pin's pull resistor.
func (h *HAL) SetPull(p *Pin, pull types.Pull) error {
	if err := h.checkPin("SetPull", p, types.CapDigitalIO); err != nil {
		return err
	}
	return p.provider.Pins().SetPull(p, pull)
}

// AnalogRead samples an analog input as a full-range 16-bit value. Scaling to
// physical units is the provider's responsibility.
func (h *HAL) AnalogRead(p *Pin) (uint16, error) {
	if err := h.checkPin("AnalogRead", p, types.CapAnalogIn); err != nil {
		return 0, err
	}
	return p.provider.Pins().AnalogRead(p)
}

// AnalogWrite drives an analog output from a full-range 16-bit value,
// forwarded to the provider verbatim.
func (h *HAL) AnalogWrite(p *Pin, v uint16) error {
	if err := h.checkPin("AnalogWrite", p, types.CapAnalogOut); err != nil {
		return err
	}
	return p.provider.Pins().AnalogWrite(p, v)
}
