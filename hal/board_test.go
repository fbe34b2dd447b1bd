package hal

import (
	"testing"

	"boardhal-go/boards"
	"boardhal-go/errcode"
	"boardhal-go/types"
)

func TestBoardNamespaceGeneration(t *testing.T) {
	// D2 stays out of the provider's board list; the generic descriptor
	// walk must skip it without error.
	p := newFakeProvider("sim", types.CapDigitalIO|types.CapAnalogIn,
		BoardPin{Number: 0, Name: "D0", Caps: types.CapDigitalIO},
		BoardPin{Number: 1, Name: "D1", Caps: types.CapDigitalIO},
		BoardPin{Number: 14, Name: "A0", Caps: types.CapAnalogIn})
	h := mustActivate(t, Options{BoardID: "simboard"}, p)

	ns, err := h.BoardNamespace()
	if err != nil {
		t.Fatalf("BoardNamespace: %v", err)
	}
	want := []string{"__name__", "board_id", "D0", "D1", "A0"}
	if len(ns) != len(want) {
		t.Fatalf("namespace has %d entries, want %d: %v", len(ns), len(want), ns)
	}
	for i, name := range want {
		if ns[i].Name != name {
			t.Fatalf("entry %d = %q, want %q", i, ns[i].Name, name)
		}
	}
	if ns[1].Object != "simboard" {
		t.Fatalf("board_id = %v", ns[1].Object)
	}
	d0, _ := h.PinByName("D0")
	if ns[2].Object != types.Object(d0) {
		t.Fatalf("namespace D0 is not the registry pin")
	}
}

func TestBoardNamespaceIdempotent(t *testing.T) {
	p := newFakeProvider("sim", types.CapDigitalIO,
		BoardPin{Number: 0, Name: "D0", Caps: types.CapDigitalIO})
	h := mustActivate(t, Options{}, p)

	first, err := h.BoardNamespace()
	if err != nil {
		t.Fatalf("first access: %v", err)
	}
	second, err := h.BoardNamespace()
	if err != nil {
		t.Fatalf("second access: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("repeat access changed the entry count")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d changed across accesses", i)
		}
	}
	// Pins created after generation do not appear until reactivation.
	if _, err := h.CreatePin(1, "D1", types.CapDigitalIO); err != nil {
		t.Fatalf("CreatePin: %v", err)
	}
	third, _ := h.BoardNamespace()
	if len(third) != len(first) {
		t.Fatalf("cached namespace rebuilt without a reset")
	}
}

func TestBoardNamespaceResetOnReactivation(t *testing.T) {
	p := newFakeProvider("sim", types.CapDigitalIO,
		BoardPin{Number: 0, Name: "D0", Caps: types.CapDigitalIO})
	h := mustActivate(t, Options{}, p)
	if _, err := h.BoardNamespace(); err != nil {
		t.Fatalf("BoardNamespace: %v", err)
	}
	if err := h.Deactivate(); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := h.BoardNamespace(); code(err) != errcode.NoActiveProvider {
		t.Fatalf("namespace without provider: got %v", err)
	}

	q := newFakeProvider("sim2", types.CapDigitalIO,
		BoardPin{Number: 1, Name: "D1", Caps: types.CapDigitalIO})
	if err := h.Register(q); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := h.Activate(q); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	ns, err := h.BoardNamespace()
	if err != nil {
		t.Fatalf("BoardNamespace after reactivation: %v", err)
	}
	if len(ns) != 3 || ns[2].Name != "D1" {
		t.Fatalf("regenerated namespace wrong: %v", ns)
	}
}

func TestBoardNamespaceExhaustionFailsClosed(t *testing.T) {
	// Two metadata slots plus 63 pins exceed the 64-slot arena.
	const pins = BoardNamespaceCapacity - 1
	descs := make([]boards.Desc, pins)
	board := make([]BoardPin, pins)
	for i := 0; i < pins; i++ {
		name := "P" + itoa(i)
		descs[i] = boards.Desc{Name: name}
		board[i] = BoardPin{Number: i, Name: name, Caps: types.CapDigitalIO}
	}
	p := newFakeProvider("wide", types.CapDigitalIO, board...)
	h := mustActivate(t, Options{PinCapacity: pins, Descriptors: descs}, p)

	if _, err := h.BoardNamespace(); code(err) != errcode.TableExhausted {
		t.Fatalf("overflowing generation: got %v", err)
	}
	// Fails closed: the flag stays clear and the next access fails the
	// same way instead of serving a half-built namespace.
	if _, err := h.BoardNamespace(); code(err) != errcode.TableExhausted {
		t.Fatalf("second overflowing access: got %v", err)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [4]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}
