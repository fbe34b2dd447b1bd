package sim

import (
	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/types"

	"tinygo.org/x/drivers"
)

// Responder emulates one I2C device at a fixed address. Tx sees the whole
// write-then-read transaction.
type Responder interface {
	Tx(w, r []byte) error
}

// StaticResponder answers reads from a fixed byte sequence and records the
// last write, in the spirit of a host-side bus double.
type StaticResponder struct {
	Data      []byte
	LastWrite []byte
}

var _ Responder = (*StaticResponder)(nil)

func (s *StaticResponder) Tx(w, r []byte) error {
	if len(w) > 0 {
		s.LastWrite = append(s.LastWrite[:0], w...)
	}
	for i := range r {
		if i < len(s.Data) {
			r[i] = s.Data[i]
		} else {
			r[i] = 0xFF
		}
	}
	return nil
}

// i2cOps creates simulated I2C sessions.
type i2cOps Provider

var _ hal.I2COps = (*i2cOps)(nil)

func (o *i2cOps) CreateI2C(scl, sda *hal.Pin, freqHz uint32) (hal.I2CSession, error) {
	p := (*Provider)(o)
	if !scl.Capabilities().Has(types.CapI2C) || !sda.Capabilities().Has(types.CapI2C) {
		return nil, &errcode.E{C: errcode.CapabilityMismatch, Op: "CreateI2C"}
	}
	if err := p.claimPins("i2c", scl, sda); err != nil {
		return nil, err
	}
	return &i2cSession{p: p, scl: scl, sda: sda, freqHz: freqHz}, nil
}

type i2cSession struct {
	p        *Provider
	scl, sda *hal.Pin
	freqHz   uint32
	deinited bool
}

var _ drivers.I2C = (*i2cSession)(nil)
var _ hal.I2CSession = (*i2cSession)(nil)

func (s *i2cSession) Tx(addr uint16, w, r []byte) error {
	resp, ok := s.p.responders[addr]
	if !ok {
		return &errcode.E{C: errcode.BusOperationFailed, Op: "Tx", Msg: "no device"}
	}
	return resp.Tx(w, r)
}

func (s *i2cSession) Probe(addr uint16) bool {
	_, ok := s.p.responders[addr]
	return ok
}

func (s *i2cSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.scl, s.sda)
	s.deinited = true
}
