package mathx

import "testing"

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 10) != 5 {
		t.Fatalf("in-range value changed")
	}
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 {
		t.Fatalf("out-of-range value not clamped")
	}
	if Clamp(5, 10, 0) != 5 {
		t.Fatalf("swapped bounds not handled")
	}
}

func TestBetween(t *testing.T) {
	if !Between(uint16(0x40), uint16(0x08), uint16(0x77)) {
		t.Fatalf("0x40 is in the 7-bit address window")
	}
	if Between(uint16(0x03), uint16(0x08), uint16(0x77)) {
		t.Fatalf("reserved address accepted")
	}
	if !Between(3, 10, 0) {
		t.Fatalf("swapped bounds not handled")
	}
}
