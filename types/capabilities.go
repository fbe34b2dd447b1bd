package types

import "strings"

// ------------------------
// Capability vocabulary
// ------------------------

// CapabilitySet is a bitmask of peripheral features. It describes both what a
// provider supports as a whole and what an individual pin exposes. A set never
// changes after it has been assigned to a pin or a provider.
type CapabilitySet uint16

const (
	CapDigitalIO CapabilitySet = 1 << iota
	CapAnalogIn
	CapAnalogOut
	CapI2C
	CapSPI
	CapUART
	CapPWM
)

// CapAll is every capability the vocabulary knows about.
const CapAll = CapDigitalIO | CapAnalogIn | CapAnalogOut | CapI2C | CapSPI | CapUART | CapPWM

// Has reports whether every flag in want is present.
func (cs CapabilitySet) Has(want CapabilitySet) bool {
	return want != 0 && cs&want == want
}

// Union returns the combined set. Neither operand is modified.
func (cs CapabilitySet) Union(other CapabilitySet) CapabilitySet {
	return cs | other
}

// Subset reports whether cs is contained in of.
func (cs CapabilitySet) Subset(of CapabilitySet) bool {
	return cs&^of == 0
}

var capNames = []struct {
	flag CapabilitySet
	name string
}{
	{CapDigitalIO, "digital_io"},
	{CapAnalogIn, "analog_in"},
	{CapAnalogOut, "analog_out"},
	{CapI2C, "i2c"},
	{CapSPI, "spi"},
	{CapUART, "uart"},
	{CapPWM, "pwm"},
}

func (cs CapabilitySet) String() string {
	var s []string
	for _, c := range capNames {
		if cs&c.flag != 0 {
			s = append(s, c.name)
		}
	}
	return strings.Join(s, ",")
}
