package main

import (
	"fmt"

	"github.com/retrobus/dmagic65"
	"github.com/retrobus/dmagic65/internal/hostsim"
)

// scenario is a named, self-contained DMA list program plus the expected
// shape of its result, used by both the run and inspect subcommands.
type scenario struct {
	name     string
	revision dmagic.Revision
	build    func(bus *hostsim.Bus, e *dmagic.Engine)
	verify   func(bus *hostsim.Bus) error
}

func scenarioList() []scenario {
	return []scenario{
		scenarioCopy16(),
		scenarioFill(),
		scenarioMix(),
		scenarioChained(),
		scenarioFractional(),
		scenarioTransparency(),
	}
}

func writeDescriptor(bus *hostsim.Bus, listAddr uint32, command uint8, length uint16, src, tgt uint32, modulo uint16) {
	b := []byte{
		command,
		byte(length), byte(length >> 8),
		byte(src), byte(src >> 8), byte(src >> 16),
		byte(tgt), byte(tgt >> 8), byte(tgt >> 16),
		byte(modulo), byte(modulo >> 8),
	}
	bus.Seed(listAddr, b)
}

// armClassic writes the list-address registers directly: 0x1 (mid byte),
// 0x2 (high nibble), then 0x0 (low byte, which arms a classic DMA).
func armClassic(e *dmagic.Engine, listAddr uint32) {
	e.WriteReg(0x1, byte(listAddr>>8))
	e.WriteReg(0x2, byte(listAddr>>16))
	e.WriteReg(0x0, byte(listAddr))
}

func scenarioCopy16() scenario {
	const src, tgt = uint32(0x010000), uint32(0x020000)
	return scenario{
		name:     "copy16",
		revision: dmagic.F018A,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			data := make([]byte, 16)
			for i := range data {
				data[i] = byte(i)
			}
			bus.Seed(src, data)
			writeDescriptor(bus, 0x001000, 0x00, 16, src, tgt, 0)
			armClassic(e, 0x001000)
		},
		verify: func(bus *hostsim.Bus) error {
			got := bus.Snapshot(tgt, 16)
			for i, b := range got {
				if b != byte(i) {
					return fmt.Errorf("target[%d] = 0x%02X, want 0x%02X", i, b, i)
				}
			}
			return nil
		},
	}
}

func scenarioFill() scenario {
	const tgt = uint32(0x030000)
	return scenario{
		name:     "fill",
		revision: dmagic.F018A,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			writeDescriptor(bus, 0x001000, 0x03, 0x0100, 0x0000A5, tgt, 0)
			armClassic(e, 0x001000)
		},
		verify: func(bus *hostsim.Bus) error {
			got := bus.Snapshot(tgt, 256)
			for i, b := range got {
				if b != 0xA5 {
					return fmt.Errorf("target[%d] = 0x%02X, want 0xA5", i, b)
				}
			}
			return nil
		},
	}
}

func scenarioMix() scenario {
	const src, tgt = uint32(0x010000), uint32(0x020000)
	return scenario{
		name:     "mix",
		revision: dmagic.F018A,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			bus.Seed(src, []byte{0x00, 0xFF, 0x0F, 0xF0})
			bus.Seed(tgt, []byte{0x00, 0x00, 0xFF, 0xFF})
			command := uint8(1<<5 | 1<<7 | 0x01) // minterm selector 0b1010, op MIX
			writeDescriptor(bus, 0x001000, command, 4, src, tgt, 0)
			armClassic(e, 0x001000)
		},
		verify: func(bus *hostsim.Bus) error {
			s := bus.Snapshot(src, 4)
			d := bus.Snapshot(tgt, 4)
			m0, m1, m2, m3 := uint8(0x00), uint8(0xFF), uint8(0x00), uint8(0xFF)
			for i := range s {
				want := (s[i] & d[i] & m3) | (s[i] &^ d[i] & m2) | (^s[i] & d[i] & m1) | (^s[i] & ^d[i] & m0)
				if d[i] != want {
					return fmt.Errorf("mix[%d] = 0x%02X, want 0x%02X", i, d[i], want)
				}
			}
			return nil
		},
	}
}

func scenarioChained() scenario {
	const firstSrc, firstTgt = uint32(0x010000), uint32(0x020000)
	const secondSrc, secondTgt = uint32(0x011000), uint32(0x021000)
	return scenario{
		name:     "chained",
		revision: dmagic.F018A,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			bus.Seed(firstSrc, []byte{0xAA, 0xBB})
			bus.Seed(secondSrc, []byte{0xCC, 0xDD})
			writeDescriptor(bus, 0x001000, 0x04, 2, firstSrc, firstTgt, 0) // chain bit set
			writeDescriptor(bus, 0x00100B, 0x00, 2, secondSrc, secondTgt, 0)
			armClassic(e, 0x001000)
		},
		verify: func(bus *hostsim.Bus) error {
			if got := bus.Snapshot(firstTgt, 2); got[0] != 0xAA || got[1] != 0xBB {
				return fmt.Errorf("first target = % X, want AA BB", got)
			}
			if got := bus.Snapshot(secondTgt, 2); got[0] != 0xCC || got[1] != 0xDD {
				return fmt.Errorf("second target = % X, want CC DD", got)
			}
			return nil
		},
	}
}

func scenarioFractional() scenario {
	const src, tgt = uint32(0x100000), uint32(0x200000)
	const listAddr = uint32(0x002001) // low byte nonzero, required to arm the extended list
	return scenario{
		name:     "fractional",
		revision: dmagic.F018B,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			bus.Seed(src, []byte{0x11, 0x22, 0x33, 0x44, 0x55})
			// source megabyte 1, target megabyte 2, source frac lo/hi, then end
			ext := []byte{0x80, 0x01, 0x81, 0x02, 0x82, 0x80, 0x83, 0x01, 0x00}
			bus.Seed(listAddr, ext)
			// descriptor offsets are 20-bit, relative to the megabytes above
			writeDescriptor(bus, listAddr+uint32(len(ext)), 0x00, 4, src&0xFFFFF, tgt&0xFFFFF, 0)
			e.WriteReg(0x1, byte(listAddr>>8))
			e.WriteReg(0x2, byte(listAddr>>16))
			e.WriteReg(0x5, byte(listAddr))
		},
		verify: func(bus *hostsim.Bus) error {
			// source offsets 0, 1, 3, 4: 0x33 is skipped
			got := bus.Snapshot(tgt, 4)
			want := []byte{0x11, 0x22, 0x44, 0x55}
			for i := range want {
				if got[i] != want[i] {
					return fmt.Errorf("target[%d] = 0x%02X, want 0x%02X", i, got[i], want[i])
				}
			}
			return nil
		},
	}
}

func scenarioTransparency() scenario {
	const src, tgt = uint32(0x100000), uint32(0x200000)
	const listAddr = uint32(0x002001)
	return scenario{
		name:     "transparency",
		revision: dmagic.F018B,
		build: func(bus *hostsim.Bus, e *dmagic.Engine) {
			bus.Seed(src, []byte{0x00, 0xFF, 0xAA, 0xFF})
			bus.Seed(tgt, []byte{0x01, 0x02, 0x03, 0x04})
			// source megabyte 1, target megabyte 2, transparency byte,
			// transparency on, then end
			ext := []byte{0x80, 0x01, 0x81, 0x02, 0x86, 0xFF, 0x06, 0x00}
			bus.Seed(listAddr, ext)
			writeDescriptor(bus, listAddr+uint32(len(ext)), 0x00, 4, src&0xFFFFF, tgt&0xFFFFF, 0)
			e.WriteReg(0x1, byte(listAddr>>8))
			e.WriteReg(0x2, byte(listAddr>>16))
			e.WriteReg(0x5, byte(listAddr))
		},
		verify: func(bus *hostsim.Bus) error {
			got := bus.Snapshot(tgt, 4)
			want := []byte{0x00, 0x02, 0xAA, 0x04}
			for i := range want {
				if got[i] != want[i] {
					return fmt.Errorf("target[%d] = 0x%02X, want 0x%02X", i, got[i], want[i])
				}
			}
			return nil
		},
	}
}

// newHarness wires an Engine to a fresh Bus the way a real host would
// present one unified address space to both DMA sides.
func newHarness(rev dmagic.Revision) (*dmagic.Engine, *hostsim.Bus) {
	bus := hostsim.NewBus()
	hooks := dmagic.Hooks{
		SourceMemRead:  bus.Read,
		SourceMemWrite: bus.Write,
		TargetMemRead:  bus.Read,
		TargetMemWrite: bus.Write,
		SourceIORead:   bus.Read,
		SourceIOWrite:  bus.Write,
		TargetIORead:   bus.Read,
		TargetIOWrite:  bus.Write,
		ListRead:       bus.Read,
	}
	return dmagic.New(rev, hooks), bus
}

// runScenario drives s to completion and reports whether its expected
// result was reached.
func runScenario(s scenario) error {
	e, bus := newHarness(s.revision)
	s.build(bus, e)

	const maxSteps = 1 << 20
	for i := 0; i < maxSteps && e.Busy(); i++ {
		if err := e.Update(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.name, err)
		}
	}
	if e.Busy() {
		return fmt.Errorf("scenario %s: did not complete within %d steps", s.name, maxSteps)
	}
	if err := s.verify(bus); err != nil {
		return fmt.Errorf("scenario %s: %w", s.name, err)
	}
	return nil
}
