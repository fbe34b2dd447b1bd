package hal

import (
	"boardhal-go/errcode"
	"boardhal-go/types"
)

// NewUART asks the active provider for a serial session on the given pins.
// UART sessions have no lock protocol; they are stream-oriented and owned by
// whoever holds the session.
func (h *HAL) NewUART(tx, rx *Pin, baud uint32) (UARTSession, error) {
	if h.active == nil {
		return nil, errcode.NoActiveProvider
	}
	if !h.active.Capabilities().Has(types.CapUART) {
		return nil, &errcode.E{C: errcode.CapabilityUnsupported, Op: "NewUART", Msg: h.active.Name()}
	}
	return h.active.UART().CreateUART(tx, rx, baud)
}
