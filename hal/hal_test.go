package hal

import (
	"context"

	"boardhal-go/errcode"
	"boardhal-go/types"
)

// fakeProvider is the in-package test double. It records hook and table
// calls so the tests can assert dispatch forwarded (or refused to forward)
// them.
type fakeProvider struct {
	name  string
	caps  types.CapabilitySet
	board []BoardPin

	initErr   error
	inits     int
	deinits   int
	pinDeinit map[string]int

	levels   map[string]bool
	analogs  map[string]uint16
	analogIn uint16

	responders   []uint16
	createBusErr error
	txErr        error
	lastI2C      *fakeI2CSession
}

var _ Provider = (*fakeProvider)(nil)

func newFakeProvider(name string, caps types.CapabilitySet, board ...BoardPin) *fakeProvider {
	return &fakeProvider{
		name:      name,
		caps:      caps,
		board:     board,
		pinDeinit: map[string]int{},
		levels:    map[string]bool{},
		analogs:   map[string]uint16{},
		analogIn:  0xBEEF,
	}
}

func (f *fakeProvider) Name() string                      { return f.name }
func (f *fakeProvider) Capabilities() types.CapabilitySet { return f.caps }
func (f *fakeProvider) BoardPins() []BoardPin             { return f.board }

func (f *fakeProvider) Init() error {
	if f.initErr != nil {
		return f.initErr
	}
	f.inits++
	return nil
}

func (f *fakeProvider) Deinit() error {
	f.deinits++
	return nil
}

func (f *fakeProvider) Pins() PinOps  { return (*fakePinOps)(f) }
func (f *fakeProvider) I2C() I2COps   { return (*fakeI2COps)(f) }
func (f *fakeProvider) SPI() SPIOps   { return (*fakeSPIOps)(f) }
func (f *fakeProvider) UART() UARTOps { return (*fakeUARTOps)(f) }

// ---- pin table ----

type fakePinOps fakeProvider

func (o *fakePinOps) SetDirection(p *Pin, d types.Direction) error { return nil }

func (o *fakePinOps) SetValue(p *Pin, level bool) error {
	o.levels[p.Name()] = level
	return nil
}

func (o *fakePinOps) Value(p *Pin) (bool, error) { return o.levels[p.Name()], nil }

func (o *fakePinOps) SetPull(p *Pin, pull types.Pull) error { return nil }

func (o *fakePinOps) AnalogRead(p *Pin) (uint16, error) { return o.analogIn, nil }

func (o *fakePinOps) AnalogWrite(p *Pin, v uint16) error {
	o.analogs[p.Name()] = v
	return nil
}

func (o *fakePinOps) DeinitPin(p *Pin) { o.pinDeinit[p.Name()]++ }

// ---- I2C ----

type fakeI2COps fakeProvider

func (o *fakeI2COps) CreateI2C(scl, sda *Pin, freqHz uint32) (I2CSession, error) {
	if o.createBusErr != nil {
		return nil, o.createBusErr
	}
	s := &fakeI2CSession{p: (*fakeProvider)(o)}
	o.lastI2C = s
	return s, nil
}

type fakeI2CSession struct {
	p       *fakeProvider
	txLog   []uint16
	deinits int
}

func (s *fakeI2CSession) Tx(addr uint16, w, r []byte) error {
	if s.p.txErr != nil {
		return s.p.txErr
	}
	s.txLog = append(s.txLog, addr)
	for i := range r {
		r[i] = byte(addr)
	}
	return nil
}

func (s *fakeI2CSession) Probe(addr uint16) bool {
	for _, a := range s.p.responders {
		if a == addr {
			return true
		}
	}
	return false
}

func (s *fakeI2CSession) Deinit() { s.deinits++ }

// ---- SPI ----

type fakeSPIOps fakeProvider

func (o *fakeSPIOps) CreateSPI(sck, mosi, miso *Pin) (SPISession, error) {
	if o.createBusErr != nil {
		return nil, o.createBusErr
	}
	return &fakeSPISession{}, nil
}

type fakeSPISession struct {
	cfg     SPIConfig
	written []byte
	deinits int
}

func (s *fakeSPISession) Tx(w, r []byte) error {
	s.written = append(s.written, w...)
	for i := range r {
		if i < len(w) {
			r[i] = w[i]
		}
	}
	return nil
}

func (s *fakeSPISession) Transfer(b byte) (byte, error) { return b, nil }

func (s *fakeSPISession) Configure(cfg SPIConfig) error {
	s.cfg = cfg
	return nil
}

func (s *fakeSPISession) Deinit() { s.deinits++ }

// ---- UART ----

type fakeUARTOps fakeProvider

func (o *fakeUARTOps) CreateUART(tx, rx *Pin, baud uint32) (UARTSession, error) {
	return &fakeUARTSession{}, nil
}

type fakeUARTSession struct {
	buf []byte
}

func (s *fakeUARTSession) Write(p []byte) (int, error) {
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *fakeUARTSession) ReadSome(ctx context.Context, p []byte) (int, error) {
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *fakeUARTSession) SetBaudRate(baud uint32) error { return nil }
func (s *fakeUARTSession) Deinit()                       {}

// mustActivate builds a context with the provider registered and active.
func mustActivate(t interface{ Fatalf(string, ...any) }, opts Options, p Provider) *HAL {
	h := New(opts)
	if err := h.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := h.Activate(p); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	return h
}

// code is shorthand for errcode.Of in assertions.
func code(err error) errcode.Code { return errcode.Of(err) }
