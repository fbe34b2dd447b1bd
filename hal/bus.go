package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// Bus dispatch. Handles own their lock state: TryLock/Unlock are a simple
// flag check-and-set, sufficient for cooperative single-threaded use only.
// Bus I/O while unlocked is a contract violation and panics.

// 7-bit address window probed by Scan.
const (
	i2cScanFirst uint16 = 0x08
	i2cScanLast  uint16 = 0x77
)

// I2C is one created I2C session. Exclusive-lock state lives with the handle,
// not globally.
type I2C struct {
	hal      *HAL
	scl, sda *Pin
	sess     I2CSession
	held     bool
	deinited bool
}

// NewI2C asks the active provider for an I2C session on the given pins.
// Capability gating happens here; resource errors (for example PinInUse) come
// from the provider verbatim.
func (h *HAL) NewI2C(scl, sda *Pin, freqHz uint32) (*I2C, error) {
	if h.active == nil {
		return nil, errcode.NoActiveProvider
	}
	if !h.active.Capabilities().Has(types.CapI2C) {
		return nil, &errcode.E{C: errcode.CapabilityUnsupported, Op: "NewI2C", Msg: h.active.Name()}
	}
	sess, err := h.active.I2C().CreateI2C(scl, sda, freqHz)
	if err != nil {
		return nil, err
	}
	return &I2C{hal: h, scl: scl, sda: sda, sess: sess}, nil
}

// TryLock is a non-blocking test-and-acquire. It returns false if the handle
// is already held; there is no timeout or blocking wait.
func (b *I2C) TryLock() bool {
	if b.held {
		return false
	}
	b.held = true
	return true
}

// Unlock releases the handle. Unlocking a handle that is not held is a
// contract violation and panics.
func (b *I2C) Unlock() {
	if !b.held {
		panic("hal: unlock of i2c bus not held")
	}
	b.held = false
}

func (b *I2C) mustHold(op string) {
	if b.deinited {
		panic("hal: " + op + " on deinitialised i2c bus")
	}
	if !b.held {
		panic("hal: " + op + " without holding the bus lock")
	}
}

// WriteTo writes w to the device at addr.
func (b *I2C) WriteTo(addr uint16, w []byte) error {
	b.mustHold("WriteTo")
	return b.wrap(b.sess.Tx(addr, w, nil))
}

// ReadFrom fills r from the device at addr.
func (b *I2C) ReadFrom(addr uint16, r []byte) error {
	b.mustHold("ReadFrom")
	return b.wrap(b.sess.Tx(addr, nil, r))
}

// WriteThenRead writes w then reads into r in one transaction.
func (b *I2C) WriteThenRead(addr uint16, w, r []byte) error {
	b.mustHold("WriteThenRead")
	return b.wrap(b.sess.Tx(addr, w, r))
}

// Scan probes the 7-bit address window and stores responding addresses into
// found, in ascending order. It returns the count stored. When more devices
// respond than found can hold, the result truncates silently at capacity and
// the caller gets no signal that truncation occurred; size buffers
// defensively.
func (b *I2C) Scan(found []uint16) int {
	b.mustHold("Scan")
	n := 0
	for addr := i2cScanFirst; addr <= i2cScanLast; addr++ {
		if n == len(found) {
			break
		}
		if b.sess.Probe(addr) {
			found[n] = addr
			n++
		}
		b.hal.Yield()
	}
	return n
}

// Deinit releases the session. It is idempotent and drops any lock still
// held.
func (b *I2C) Deinit() {
	if b.deinited {
		return
	}
	b.held = false
	b.sess.Deinit()
	b.deinited = true
}

func (b *I2C) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errcode.Of(err) != errcode.Error {
		return err
	}
	return &errcode.E{C: errcode.BusOperationFailed, Op: "I2C", Err: err}
}

// SPI is one created SPI session, with the same handle-held lock contract as
// I2C.
type SPI struct {
	hal             *HAL
	sck, mosi, miso *Pin
	sess            SPISession
	held            bool
	deinited        bool
}

// NewSPI asks the active provider for an SPI session on the given pins.
func (h *HAL) NewSPI(sck, mosi, miso *Pin) (*SPI, error) {
	if h.active == nil {
		return nil, errcode.NoActiveProvider
	}
	if !h.active.Capabilities().Has(types.CapSPI) {
		return nil, &errcode.E{C: errcode.CapabilityUnsupported, Op: "NewSPI", Msg: h.active.Name()}
	}
	sess, err := h.active.SPI().CreateSPI(sck, mosi, miso)
	if err != nil {
		return nil, err
	}
	return &SPI{hal: h, sck: sck, mosi: mosi, miso: miso, sess: sess}, nil
}

func (b *SPI) TryLock() bool {
	if b.held {
		return false
	}
	b.held = true
	return true
}

func (b *SPI) Unlock() {
	if !b.held {
		panic("hal: unlock of spi bus not held")
	}
	b.held = false
}

func (b *SPI) mustHold(op string) {
	if b.deinited {
		panic("hal: " + op + " on deinitialised spi bus")
	}
	if !b.held {
		panic("hal: " + op + " without holding the bus lock")
	}
}

// Configure sets clock polarity, phase and frequency. The lock must be held.
func (b *SPI) Configure(cfg SPIConfig) error {
	b.mustHold("Configure")
	return b.wrap(b.sess.Configure(cfg))
}

// Write clocks w out, discarding anything read back.
func (b *SPI) Write(w []byte) error {
	b.mustHold("Write")
	return b.wrap(b.sess.Tx(w, nil))
}

// ReadInto fills r while clocking out zeroes.
func (b *SPI) ReadInto(r []byte) error {
	b.mustHold("ReadInto")
	return b.wrap(b.sess.Tx(nil, r))
}

// Transfer clocks w out and r in simultaneously.
func (b *SPI) Transfer(w, r []byte) error {
	b.mustHold("Transfer")
	return b.wrap(b.sess.Tx(w, r))
}

// Deinit releases the session. Idempotent; drops any lock still held.
func (b *SPI) Deinit() {
	if b.deinited {
		return
	}
	b.held = false
	b.sess.Deinit()
	b.deinited = true
}

func (b *SPI) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errcode.Of(err) != errcode.Error {
		return err
	}
	return &errcode.E{C: errcode.BusOperationFailed, Op: "SPI", Err: err}
}
