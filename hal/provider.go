package hal

import (
	"context"

	"tinygo.org/x/drivers"

	"boardhal-go/types"
)

// Provider is a pluggable backend implementing the pin/bus operation contract.
// Real hardware, a software simulator and host-runtime virtual peripherals all
// plug in through this one interface; selection is a single active instance
// held by the HAL context, never inheritance.
//
// A provider's capability set is fixed at construction. The dispatch layer
// rejects any operation the set disallows before the provider is called, so
// operation tables may assume their capability is present.
type Provider interface {
	Name() string
	Capabilities() types.CapabilitySet

	// Init is called exactly once per activation, Deinit once per
	// deactivation. Init failure leaves the registry untouched.
	Init() error
	Deinit() error

	// Operation tables. A provider whose capability set excludes a bus
	// class may return nil for that table; dispatch never consults it.
	Pins() PinOps
	I2C() I2COps
	SPI() SPIOps
	UART() UARTOps

	// BoardPins returns the provider's own pin descriptors, used to
	// populate the pin registry on activation.
	BoardPins() []BoardPin
}

// BoardPin describes one pin a provider exposes.
type BoardPin struct {
	Number int
	Name   string
	Caps   types.CapabilitySet
}

// PinOps is the per-provider pin operation table. Calls arrive only after the
// dispatch layer has verified the pin's capability set.
type PinOps interface {
	SetDirection(p *Pin, d types.Direction) error
	SetValue(p *Pin, level bool) error
	Value(p *Pin) (bool, error)
	SetPull(p *Pin, pull types.Pull) error
	AnalogRead(p *Pin) (uint16, error)
	AnalogWrite(p *Pin, v uint16) error

	// DeinitPin is invoked exactly once per pin over its lifetime, when
	// the registry releases it.
	DeinitPin(p *Pin)
}

// I2COps creates I2C sessions bound to specific pins.
type I2COps interface {
	CreateI2C(scl, sda *Pin, freqHz uint32) (I2CSession, error)
}

// I2CSession is one provider-backed I2C bus. Tx carries the whole
// write-then-read transaction, as in the tinygo drivers contract.
type I2CSession interface {
	drivers.I2C

	// Probe reports whether a device answers at addr. Used by Scan.
	Probe(addr uint16) bool

	Deinit()
}

// SPIOps creates SPI sessions bound to specific pins.
type SPIOps interface {
	CreateSPI(sck, mosi, miso *Pin) (SPISession, error)
}

// SPIConfig selects clock shape and rate for an SPI session.
type SPIConfig struct {
	Frequency uint32
	Polarity  uint8 // 0 or 1
	Phase     uint8 // 0 or 1
	Bits      uint8 // usually 8
}

// SPISession is one provider-backed SPI bus.
type SPISession interface {
	drivers.SPI

	Configure(cfg SPIConfig) error
	Deinit()
}

// UARTOps creates UART sessions bound to specific pins.
type UARTOps interface {
	CreateUART(tx, rx *Pin, baud uint32) (UARTSession, error)
}

// UARTSession is one provider-backed serial port. ReadSome returns as soon as
// any bytes are available or ctx is done; it never blocks past that.
type UARTSession interface {
	Write(p []byte) (int, error)
	ReadSome(ctx context.Context, p []byte) (int, error)
	SetBaudRate(baud uint32) error
	Deinit()
}
