package sim

import (
	"context"

	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/types"
)

// uartOps creates simulated serial sessions.
type uartOps Provider

var _ hal.UARTOps = (*uartOps)(nil)

func (o *uartOps) CreateUART(tx, rx *hal.Pin, baud uint32) (hal.UARTSession, error) {
	p := (*Provider)(o)
	if !tx.Capabilities().Has(types.CapUART) || !rx.Capabilities().Has(types.CapUART) {
		return nil, &errcode.E{C: errcode.CapabilityMismatch, Op: "CreateUART"}
	}
	if err := p.claimPins("uart", tx, rx); err != nil {
		return nil, err
	}
	return &uartSession{p: p, tx: tx, rx: rx, baud: baud}, nil
}

// uartSession is a loopback port: written bytes are readable back, bounded by
// a small ring. It never blocks; ReadSome returns whatever is buffered.
type uartSession struct {
	p        *Provider
	tx, rx   *hal.Pin
	baud     uint32
	buf      []byte
	deinited bool
}

var _ hal.UARTSession = (*uartSession)(nil)

const uartRingCap = 256

func (s *uartSession) Write(p []byte) (int, error) {
	room := uartRingCap - len(s.buf)
	n := len(p)
	if n > room {
		n = room
	}
	s.buf = append(s.buf, p[:n]...)
	return n, nil
}

func (s *uartSession) ReadSome(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n := copy(p, s.buf)
	s.buf = s.buf[n:]
	return n, nil
}

func (s *uartSession) SetBaudRate(baud uint32) error {
	s.baud = baud
	return nil
}

func (s *uartSession) Deinit() {
	if s.deinited {
		return
	}
	s.p.freePins(s.tx, s.rx)
	s.buf = nil
	s.deinited = true
}
