package sim

import (
	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/types"

	"tinygo.org/x/drivers"
)

// spiOps creates simulated SPI sessions.
type spiOps Provider

var _ hal.SPIOps = (*spiOps)(nil)

func (o *spiOps) CreateSPI(sck, mosi, miso *hal.Pin) (hal.SPISession, error) {
	p := (*Provider)(o)
	for _, pin := range []*hal.Pin{sck, mosi, miso} {
		if !pin.Capabilities().Has(types.CapSPI) {
			return nil, &errcode.E{C: errcode.CapabilityMismatch, Op: "CreateSPI", Msg: pin.Name()}
		}
	}
	if err := p.claimPins("spi", sck, mosi, miso); err != nil {
		return nil, err
	}
	return &spiSession{p: p, pins: [3]*hal.Pin{sck, mosi, miso}}, nil
}

// spiSession is a loopback: MOSI bytes come straight back on MISO. The last
// write is retained for observation.
type spiSession struct {
	p         *Provider
	pins      [3]*hal.Pin
	cfg       hal.SPIConfig
	LastWrite []byte
	deinited  bool
}

var _ drivers.SPI = (*spiSession)(nil)
var _ hal.SPISession = (*spiSession)(nil)

func (s *spiSession) Tx(w, r []byte) error {
	if len(w) > 0 {
		s.LastWrite = append(s.LastWrite[:0], w...)
	}
	for i := range r {
		if i < len(w) {
			r[i] = w[i]
		} else {
			r[i] = 0xFF
		}
	}
	return nil
}

func (s *spiSession) Transfer(b byte) (byte, error) { return b, nil }

func (s *spiSession) Configure(cfg hal.SPIConfig) error {
	if cfg.Polarity > 1 || cfg.Phase > 1 {
		return &errcode.E{C: errcode.BusOperationFailed, Op: "Configure", Msg: "bad clock mode"}
	}
	s.cfg = cfg
	return nil
}

func (s *spiSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.pins[0], s.pins[1], s.pins[2])
	s.deinited = true
}
