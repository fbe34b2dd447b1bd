// Package sim is the software-simulated provider. Pin levels are latched in
// memory, I2C devices are scriptable responders and SPI is a loopback, which
// makes it the host-side backend for tests and for halsh.
package sim

import (
	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/types"
	"boardhal-go/x/mathx"
)

// DefaultCapabilities is everything the simulator can do. PWM is deliberately
// absent; there is no PWM operation surface to back it.
const DefaultCapabilities = types.CapDigitalIO | types.CapAnalogIn | types.CapAnalogOut |
	types.CapI2C | types.CapSPI | types.CapUART

// Options configures a simulator instance. Zero values select the defaults.
type Options struct {
	Name         string
	Capabilities types.CapabilitySet
	BoardPins    []hal.BoardPin
}

// Provider implements hal.Provider in memory.
type Provider struct {
	name  string
	caps  types.CapabilitySet
	board []hal.BoardPin

	responders map[uint16]Responder
	pinsInUse  map[int]string // pin number -> owning session kind
	inited     bool
}

var _ hal.Provider = (*Provider)(nil)

// New builds a simulator. With zero Options it exposes the full generic board
// layout under the name "sim".
func New(opts Options) *Provider {
	if opts.Name == "" {
		opts.Name = "sim"
	}
	if opts.Capabilities == 0 {
		opts.Capabilities = DefaultCapabilities
	}
	if opts.BoardPins == nil {
		opts.BoardPins = DefaultBoardPins()
	}
	return &Provider{
		name:       opts.Name,
		caps:       opts.Capabilities,
		board:      opts.BoardPins,
		responders: make(map[uint16]Responder),
		pinsInUse:  make(map[int]string),
	}
}

// DefaultBoardPins is the simulator's full generic layout: D0..D13 digital,
// A0..A5 analog inputs (A0 doubles as the DAC), plus the bus pins.
func DefaultBoardPins() []hal.BoardPin {
	pins := make([]hal.BoardPin, 0, 28)
	for i := 0; i <= 13; i++ {
		pins = append(pins, hal.BoardPin{
			Number: i,
			Name:   "D" + digits(i),
			Caps:   types.CapDigitalIO,
		})
	}
	for i := 0; i <= 5; i++ {
		caps := types.CapDigitalIO | types.CapAnalogIn
		if i == 0 {
			caps |= types.CapAnalogOut
		}
		pins = append(pins, hal.BoardPin{Number: 14 + i, Name: "A" + digits(i), Caps: caps})
	}
	pins = append(pins,
		hal.BoardPin{Number: 20, Name: "SDA", Caps: types.CapDigitalIO | types.CapI2C},
		hal.BoardPin{Number: 21, Name: "SCL", Caps: types.CapDigitalIO | types.CapI2C},
		hal.BoardPin{Number: 22, Name: "SCK", Caps: types.CapDigitalIO | types.CapSPI},
		hal.BoardPin{Number: 23, Name: "MOSI", Caps: types.CapDigitalIO | types.CapSPI},
		hal.BoardPin{Number: 24, Name: "MISO", Caps: types.CapDigitalIO | types.CapSPI},
		hal.BoardPin{Number: 25, Name: "TX", Caps: types.CapDigitalIO | types.CapUART},
		hal.BoardPin{Number: 26, Name: "RX", Caps: types.CapDigitalIO | types.CapUART},
		hal.BoardPin{Number: 27, Name: "LED", Caps: types.CapDigitalIO},
	)
	return pins
}

func digits(n int) string {
	if n >= 10 {
		return string([]byte{byte('0' + n/10), byte('0' + n%10)})
	}
	return string([]byte{byte('0' + n)})
}

// ---- hal.Provider ----

func (p *Provider) Name() string                      { return p.name }
func (p *Provider) Capabilities() types.CapabilitySet { return p.caps }
func (p *Provider) BoardPins() []hal.BoardPin         { return p.board }

func (p *Provider) Init() error {
	p.inited = true
	return nil
}

func (p *Provider) Deinit() error {
	p.inited = false
	p.pinsInUse = make(map[int]string)
	return nil
}

func (p *Provider) Pins() hal.PinOps  { return (*pinOps)(p) }
func (p *Provider) I2C() hal.I2COps   { return (*i2cOps)(p) }
func (p *Provider) SPI() hal.SPIOps   { return (*spiOps)(p) }
func (p *Provider) UART() hal.UARTOps { return (*uartOps)(p) }

// AddResponder installs an emulated I2C device at a 7-bit address. Installing
// outside the probe window is a programming mistake and panics, matching the
// builder-registration idiom elsewhere in the tree.
func (p *Provider) AddResponder(addr uint16, r Responder) {
	if !mathx.Between(addr, 0x08, 0x77) {
		panic("sim: responder address outside the 7-bit window")
	}
	p.responders[addr] = r
}

func (p *Provider) claimPins(kind string, pins ...*hal.Pin) error {
	for _, pin := range pins {
		if owner, busy := p.pinsInUse[pin.Number()]; busy {
			return &errcode.E{C: errcode.PinInUse, Op: kind, Msg: pin.Name() + " held by " + owner}
		}
	}
	for _, pin := range pins {
		p.pinsInUse[pin.Number()] = kind
	}
	return nil
}

func (p *Provider) freePins(pins ...*hal.Pin) {
	for _, pin := range pins {
		delete(p.pinsInUse, pin.Number())
	}
}
