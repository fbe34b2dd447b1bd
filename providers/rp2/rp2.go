//go:build rp2040 || rp2350

package rp2

import (
	"context"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/types"
)

const providerCaps = types.CapDigitalIO | types.CapAnalogIn |
	types.CapI2C | types.CapSPI | types.CapUART

// Provider implements hal.Provider over RP2 silicon.
type Provider struct {
	pinsInUse map[int]string
	inited    bool
}

var _ hal.Provider = (*Provider)(nil)

func New() *Provider {
	return &Provider{pinsInUse: make(map[int]string)}
}

func (p *Provider) Name() string                      { return "rp2" }
func (p *Provider) Capabilities() types.CapabilitySet { return providerCaps }

func (p *Provider) Init() error {
	machine.InitADC()
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

// BoardPins maps the generic names onto Pico GP numbering: UART0 on GP0/GP1,
// I2C0 on GP4/GP5, SPI0 on GP16/18/19, the onboard LED on GP25 and the three
// ADC-capable pins as A0..A2.
func (p *Provider) BoardPins() []hal.BoardPin {
	d := types.CapDigitalIO
	return []hal.BoardPin{
		{Number: 0, Name: "TX", Caps: d | types.CapUART},
		{Number: 1, Name: "RX", Caps: d | types.CapUART},
		{Number: 2, Name: "D2", Caps: d},
		{Number: 3, Name: "D3", Caps: d},
		{Number: 4, Name: "SDA", Caps: d | types.CapI2C},
		{Number: 5, Name: "SCL", Caps: d | types.CapI2C},
		{Number: 6, Name: "D6", Caps: d},
		{Number: 7, Name: "D7", Caps: d},
		{Number: 8, Name: "D8", Caps: d},
		{Number: 9, Name: "D9", Caps: d},
		{Number: 10, Name: "D10", Caps: d},
		{Number: 11, Name: "D11", Caps: d},
		{Number: 12, Name: "D12", Caps: d},
		{Number: 13, Name: "D13", Caps: d},
		{Number: 16, Name: "MISO", Caps: d | types.CapSPI},
		{Number: 18, Name: "SCK", Caps: d | types.CapSPI},
		{Number: 19, Name: "MOSI", Caps: d | types.CapSPI},
		{Number: 25, Name: "LED", Caps: d},
		{Number: 26, Name: "A0", Caps: d | types.CapAnalogIn},
		{Number: 27, Name: "A1", Caps: d | types.CapAnalogIn},
		{Number: 28, Name: "A2", Caps: d | types.CapAnalogIn},
	}
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

// ---- pin table ----

type pinOps Provider

var _ hal.PinOps = (*pinOps)(nil)

func mpin(p *hal.Pin) machine.Pin { return machine.Pin(p.Number()) }

func (o *pinOps) SetDirection(p *hal.Pin, d types.Direction) error {
	if d == types.DirOutput {
		mpin(p).Configure(machine.PinConfig{Mode: machine.PinOutput})
	} else {
		mpin(p).Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

func (o *pinOps) SetValue(p *hal.Pin, level bool) error {
	mpin(p).Set(level)
	return nil
}

func (o *pinOps) Value(p *hal.Pin) (bool, error) {
	return mpin(p).Get(), nil
}

func (o *pinOps) SetPull(p *hal.Pin, pull types.Pull) error {
	var mode machine.PinMode
	switch pull {
	case types.PullUp:
		mode = machine.PinInputPullup
	case types.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	mpin(p).Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (o *pinOps) AnalogRead(p *hal.Pin) (uint16, error) {
	adc, ok := p.DriverData().(machine.ADC)
	if !ok {
		adc = machine.ADC{Pin: mpin(p)}
		adc.Configure(machine.ADCConfig{})
		p.SetDriverData(adc)
	}
	return adc.Get(), nil
}

// No DAC on RP2; dispatch gates AnalogWrite out before it gets here.
func (o *pinOps) AnalogWrite(p *hal.Pin, v uint16) error {
	return &errcode.E{C: errcode.CapabilityUnsupported, Op: "AnalogWrite", Msg: p.Name()}
}

func (o *pinOps) DeinitPin(p *hal.Pin) {
	mpin(p).Configure(machine.PinConfig{Mode: machine.PinInput})
	p.SetDriverData(nil)
}

// ---- I2C ----

type i2cOps Provider

var _ hal.I2COps = (*i2cOps)(nil)

func (o *i2cOps) CreateI2C(scl, sda *hal.Pin, freqHz uint32) (hal.I2CSession, error) {
	p := (*Provider)(o)
	if err := p.claimPins("i2c", scl, sda); err != nil {
		return nil, err
	}
	if freqHz == 0 {
		freqHz = 400 * machine.KHz
	}
	hw := machine.I2C0
	if sda.Number() != 4 {
		hw = machine.I2C1
	}
	err := hw.Configure(machine.I2CConfig{
		SCL:       machine.Pin(scl.Number()),
		SDA:       machine.Pin(sda.Number()),
		Frequency: freqHz,
	})
	if err != nil {
		p.freePins(scl, sda)
		return nil, &errcode.E{C: errcode.BusOperationFailed, Op: "CreateI2C", Err: err}
	}
	return &i2cSession{p: p, hw: hw, scl: scl, sda: sda}, nil
}

type i2cSession struct {
	p        *Provider
	hw       *machine.I2C
	scl, sda *hal.Pin
	deinited bool
}

var _ hal.I2CSession = (*i2cSession)(nil)

func (s *i2cSession) Tx(addr uint16, w, r []byte) error {
	return s.hw.Tx(addr, w, r)
}

// Probe issues an empty write; a device that ACKs its address is present.
func (s *i2cSession) Probe(addr uint16) bool {
	return s.hw.Tx(addr, []byte{}, nil) == nil
}

func (s *i2cSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.scl, s.sda)
	s.deinited = true
}

// ---- SPI ----

type spiOps Provider

var _ hal.SPIOps = (*spiOps)(nil)

func (o *spiOps) CreateSPI(sck, mosi, miso *hal.Pin) (hal.SPISession, error) {
	p := (*Provider)(o)
	if err := p.claimPins("spi", sck, mosi, miso); err != nil {
		return nil, err
	}
	return &spiSession{p: p, hw: machine.SPI0, sck: sck, mosi: mosi, miso: miso}, nil
}

type spiSession struct {
	p               *Provider
	hw              *machine.SPI
	sck, mosi, miso *hal.Pin
	deinited        bool
}

var _ hal.SPISession = (*spiSession)(nil)

func (s *spiSession) Configure(cfg hal.SPIConfig) error {
	freq := cfg.Frequency
	if freq == 0 {
		freq = 1 * machine.MHz
	}
	err := s.hw.Configure(machine.SPIConfig{
		Frequency: freq,
		SCK:       machine.Pin(s.sck.Number()),
		SDO:       machine.Pin(s.mosi.Number()),
		SDI:       machine.Pin(s.miso.Number()),
		Mode:      cfg.Polarity<<1 | cfg.Phase,
	})
	if err != nil {
		return &errcode.E{C: errcode.BusOperationFailed, Op: "Configure", Err: err}
	}
	return nil
}

func (s *spiSession) Tx(w, r []byte) error { return s.hw.Tx(w, r) }

func (s *spiSession) Transfer(b byte) (byte, error) { return s.hw.Transfer(b) }

func (s *spiSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.sck, s.mosi, s.miso)
	s.deinited = true
}

// ---- UART ----

type uartOps Provider

var _ hal.UARTOps = (*uartOps)(nil)

func (o *uartOps) CreateUART(tx, rx *hal.Pin, baud uint32) (hal.UARTSession, error) {
	p := (*Provider)(o)
	if err := p.claimPins("uart", tx, rx); err != nil {
		return nil, err
	}
	hw := uartx.UART0
	if tx.Number() != 0 {
		hw = uartx.UART1
	}
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.Pin(tx.Number()),
		RX:       machine.Pin(rx.Number()),
	})
	return &uartSession{p: p, hw: hw, tx: tx, rx: rx}, nil
}

type uartSession struct {
	p        *Provider
	hw       *uartx.UART
	tx, rx   *hal.Pin
	deinited bool
}

var _ hal.UARTSession = (*uartSession)(nil)

func (s *uartSession) Write(b []byte) (int, error) { return s.hw.Write(b) }

func (s *uartSession) ReadSome(ctx context.Context, b []byte) (int, error) {
	return s.hw.RecvSomeContext(ctx, b)
}

func (s *uartSession) SetBaudRate(baud uint32) error {
	s.hw.SetBaudRate(baud)
	return nil
}

func (s *uartSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.tx, s.rx)
	s.deinited = true
}
