package types

import "testing"

func TestCapabilitySet_HasUnion(t *testing.T) {
	cs := CapDigitalIO.Union(CapI2C)
	if !cs.Has(CapDigitalIO) || !cs.Has(CapI2C) {
		t.Fatalf("union lost a member: %v", cs)
	}
	if cs.Has(CapAnalogIn) {
		t.Fatalf("Has reported a flag that was never set")
	}
	if cs.Has(0) {
		t.Fatalf("Has(0) must be false")
	}
	// Multi-flag membership: both flags must be present.
	if !cs.Has(CapDigitalIO | CapI2C) {
		t.Fatalf("Has should accept a combined mask")
	}
	if cs.Has(CapDigitalIO | CapSPI) {
		t.Fatalf("Has must require every flag in the mask")
	}
}

func TestCapabilitySet_Subset(t *testing.T) {
	provider := CapDigitalIO | CapAnalogIn | CapI2C
	if !(CapDigitalIO | CapI2C).Subset(provider) {
		t.Fatalf("subset not recognised")
	}
	if (CapDigitalIO | CapSPI).Subset(provider) {
		t.Fatalf("spi is not in the provider set")
	}
	if !CapabilitySet(0).Subset(provider) {
		t.Fatalf("empty set is a subset of everything")
	}
	if !provider.Subset(CapAll) {
		t.Fatalf("every set is a subset of CapAll")
	}
}

func TestCapabilitySet_String(t *testing.T) {
	if s := (CapDigitalIO | CapPWM).String(); s != "digital_io,pwm" {
		t.Fatalf("String() = %q", s)
	}
	if s := CapabilitySet(0).String(); s != "" {
		t.Fatalf("empty String() = %q", s)
	}
}

func TestDirectionPullStrings(t *testing.T) {
	if DirInput.String() != "input" || DirOutput.String() != "output" {
		t.Fatalf("Direction.String failed")
	}
	if PullNone.String() != "none" || PullUp.String() != "up" || PullDown.String() != "down" {
		t.Fatalf("Pull.String failed")
	}
}
