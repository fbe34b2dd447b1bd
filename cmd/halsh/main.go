// Command halsh is an interactive shell over the simulated provider. It
// exercises the full dispatch surface from a terminal and doubles as a smoke
// harness for the HAL.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"boardhal-go/errcode"
	"boardhal-go/hal"
	"boardhal-go/providers/sim"
	"boardhal-go/types"
	"boardhal-go/x/mathx"
)

func main() {
	h := hal.New(hal.Options{})
	p := sim.New(sim.Options{})

	// A couple of emulated I2C devices so scan has something to find.
	p.AddResponder(0x38, &sim.StaticResponder{Data: []byte{0x18}})
	p.AddResponder(0x50, &sim.StaticResponder{Data: []byte{0xA5, 0x5A}})

	if err := h.Register(p); err != nil {
		fmt.Fprintln(os.Stderr, "register:", err)
		os.Exit(1)
	}
	if err := h.Activate(p); err != nil {
		fmt.Fprintln(os.Stderr, "activate:", err)
		os.Exit(1)
	}
	defer func() { _ = h.Deactivate() }()

	fmt.Println("halsh: provider", p.Name(), "caps:", p.Capabilities())
	fmt.Println(`type "help" for commands`)

	sc := bufio.NewScanner(os.Stdin)
	for prompt(); sc.Scan(); prompt() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Println("parse:", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			return
		}
		run(h, p, args)
	}
}

func prompt() { fmt.Print("hal> ") }

func run(h *hal.HAL, p *sim.Provider, args []string) {
	switch args[0] {
	case "help":
		fmt.Print(`board                 print the board namespace
caps                  print active provider capabilities
dir <pin> in|out      set pin direction
set <pin> 0|1         drive a digital output
get <pin>             read a digital level
aread <pin>           read an analog input (0..65535)
awrite <pin> <v>      write an analog output (clamped to 0..65535)
scan                  create I2C on SCL/SDA, lock, scan, unlock
quit                  leave
`)

	case "board":
		ns, err := h.BoardNamespace()
		if err != nil {
			fmt.Println("board:", err)
			return
		}
		for _, e := range ns {
			if pin, ok := e.Object.(*hal.Pin); ok {
				fmt.Printf("  %-8s pin %-3d caps %s\n", e.Name, pin.Number(), pin.Capabilities())
			} else {
				fmt.Printf("  %-8s %v\n", e.Name, e.Object)
			}
		}

	case "caps":
		if ap, ok := h.Active(); ok {
			fmt.Println(ap.Capabilities())
		} else {
			fmt.Println(errcode.NoActiveProvider)
		}

	case "dir":
		pin, ok := needPin(h, args, 2)
		if !ok {
			return
		}
		d := types.DirInput
		if args[2] == "out" {
			d = types.DirOutput
		}
		report(h.SetDirection(pin, d))

	case "set":
		pin, ok := needPin(h, args, 2)
		if !ok {
			return
		}
		report(h.SetValue(pin, args[2] == "1"))

	case "get":
		pin, ok := needPin(h, args, 1)
		if !ok {
			return
		}
		v, err := h.Value(pin)
		if err != nil {
			fmt.Println(err)
			return
		}
		if v {
			fmt.Println(1)
		} else {
			fmt.Println(0)
		}

	case "aread":
		pin, ok := needPin(h, args, 1)
		if !ok {
			return
		}
		v, err := h.AnalogRead(pin)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println(v)

	case "awrite":
		pin, ok := needPin(h, args, 2)
		if !ok {
			return
		}
		n, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Println("awrite: bad value")
			return
		}
		report(h.AnalogWrite(pin, uint16(mathx.Clamp(n, 0, int(types.AnalogMax)))))

	case "scan":
		doScan(h)

	default:
		fmt.Println("unknown command; try help")
	}
}

func needPin(h *hal.HAL, args []string, want int) (*hal.Pin, bool) {
	if len(args) < want+1 {
		fmt.Println(args[0] + ": missing arguments")
		return nil, false
	}
	pin, ok := h.PinByName(args[1])
	if !ok {
		fmt.Println(errcode.PinNotFound.Error() + ": " + args[1])
		return nil, false
	}
	return pin, true
}

func doScan(h *hal.HAL) {
	scl, _ := h.PinByName("SCL")
	sda, _ := h.PinByName("SDA")
	bus, err := h.NewI2C(scl, sda, 400_000)
	if err != nil {
		fmt.Println("scan:", err)
		return
	}
	defer bus.Deinit()
	if !bus.TryLock() {
		fmt.Println("scan:", errcode.LockUnavailable)
		return
	}
	defer bus.Unlock()

	found := make([]uint16, 16)
	n := bus.Scan(found)
	for _, addr := range found[:n] {
		fmt.Printf("  0x%02X\n", addr)
	}
	fmt.Println(n, "device(s)")
}

func report(err error) {
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("ok")
}
