package sim

import (
	"boardhal-go/hal"
	"boardhal-go/types"
)

// pinState is the simulator's latched per-pin state, kept in the pin's
// provider-private slot.
type pinState struct {
	dir       types.Direction
	pull      types.Pull
	level     bool   // driven output level
	input     bool   // latched input level
	analogIn  uint16 // latched ADC reading
	analogOut uint16 // last DAC value written
	deinits   int
}

func state(p *hal.Pin) *pinState {
	if s, ok := p.DriverData().(*pinState); ok {
		return s
	}
	s := &pinState{}
	p.SetDriverData(s)
	return s
}

// SetInputLevel latches the level a digital input pin will read back.
func (p *Provider) SetInputLevel(pin *hal.Pin, level bool) { state(pin).input = level }

// SetAnalogInput latches the 16-bit value an analog input pin will read back.
func (p *Provider) SetAnalogInput(pin *hal.Pin, v uint16) { state(pin).analogIn = v }

// OutputLevel observes the last driven digital level.
func (p *Provider) OutputLevel(pin *hal.Pin) bool { return state(pin).level }

// AnalogOutput observes the last DAC value written.
func (p *Provider) AnalogOutput(pin *hal.Pin) uint16 { return state(pin).analogOut }

// PinDeinits reports how many times the registry deinitialised a pin.
func (p *Provider) PinDeinits(pin *hal.Pin) int { return state(pin).deinits }

// pinOps is the simulator's pin operation table.
type pinOps Provider

var _ hal.PinOps = (*pinOps)(nil)

func (o *pinOps) SetDirection(p *hal.Pin, d types.Direction) error {
	state(p).dir = d
	return nil
}

func (o *pinOps) SetValue(p *hal.Pin, level bool) error {
	state(p).level = level
	return nil
}

func (o *pinOps) Value(p *hal.Pin) (bool, error) {
	s := state(p)
	if s.dir == types.DirOutput {
		return s.level, nil
	}
	return s.input, nil
}

func (o *pinOps) SetPull(p *hal.Pin, pull types.Pull) error {
	state(p).pull = pull
	return nil
}

func (o *pinOps) AnalogRead(p *hal.Pin) (uint16, error) {
	return state(p).analogIn, nil
}

func (o *pinOps) AnalogWrite(p *hal.Pin, v uint16) error {
	state(p).analogOut = v
	return nil
}

func (o *pinOps) DeinitPin(p *hal.Pin) {
	s := state(p)
	s.deinits++
	s.dir = types.DirInput
	s.pull = types.PullNone
	s.level = false
}
