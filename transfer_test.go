package dmagic

import (
	"testing"

	"github.com/retrobus/dmagic65/internal/testmem"
)

func newExecutingEngine(rev Revision, mem *testmem.Space, op uint8, length uint32, srcAddr, tgtAddr uint32) *Engine {
	e := newTestEngine(rev, mem)
	e.command = op
	e.length = length
	e.sourceAddr = srcAddr
	e.targetAddr = tgtAddr
	e.sourceStep = 1
	e.targetStep = 1
	e.sourceStepFraction = 0x0100
	e.targetStepFraction = 0x0100
	e.configureRouting()
	e.phase = phaseExecuting
	return e
}

func TestTransferCopyByteForByte(t *testing.T) {
	mem := testmem.New(1 << 21)
	mem.Seed(0x010000, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	e := newExecutingEngine(F018A, mem, opCopy, 4, 0x010000, 0x020000)

	for i := 0; i < 4; i++ {
		e.transferByte()
	}
	got := mem.Bytes(0x020000, 4)
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
	if e.Busy() {
		t.Fatalf("expected idle after last byte of unchained op")
	}
}

func TestTransferSwapExchangesDisjointRegions(t *testing.T) {
	mem := testmem.New(1 << 21)
	mem.Seed(0x010000, []byte{0x11, 0x22})
	mem.Seed(0x020000, []byte{0x33, 0x44})
	e := newExecutingEngine(F018A, mem, opSwap, 2, 0x010000, 0x020000)

	e.transferByte()
	e.transferByte()

	if got := mem.Bytes(0x010000, 2); got[0] != 0x33 || got[1] != 0x44 {
		t.Fatalf("source after swap = % X, want 33 44", got)
	}
	if got := mem.Bytes(0x020000, 2); got[0] != 0x11 || got[1] != 0x22 {
		t.Fatalf("target after swap = % X, want 11 22", got)
	}
}

func TestTransferSwapTwiceIsIdentity(t *testing.T) {
	mem := testmem.New(1 << 21)
	original := []byte{0x11, 0x22, 0x33, 0x44}
	mem.Seed(0x010000, append([]byte(nil), original...))
	mem.Seed(0x020000, []byte{0xAA, 0xBB, 0xCC, 0xDD})

	for swaps := 0; swaps < 2; swaps++ {
		e := newExecutingEngine(F018A, mem, opSwap, 4, 0x010000, 0x020000)
		for i := 0; i < 4; i++ {
			e.transferByte()
		}
	}

	got := mem.Bytes(0x010000, 4)
	for i := range original {
		if got[i] != original[i] {
			t.Fatalf("source[%d] after double swap = 0x%02X, want 0x%02X", i, got[i], original[i])
		}
	}
}

func TestTransferFillWritesConstantByte(t *testing.T) {
	mem := testmem.New(1 << 21)
	e := newExecutingEngine(F018A, mem, opFill, 300, 0x0000A5, 0x030000)

	for i := 0; i < 300; i++ {
		e.transferByte()
	}
	got := mem.Bytes(0x030000, 300)
	for i, b := range got {
		if b != 0xA5 {
			t.Fatalf("fill[%d] = 0x%02X, want constant 0xA5", i, b)
		}
	}
}

// Exhaustive MIX truth table: for every (s, d) pair and every 4-bit
// minterm selector, the output must match the boolean-minterm formula.
func TestTransferMixTruthTable(t *testing.T) {
	for selector := 0; selector < 16; selector++ {
		m0 := uint8(0)
		if selector&0x1 != 0 {
			m0 = 0xFF
		}
		m1 := uint8(0)
		if selector&0x2 != 0 {
			m1 = 0xFF
		}
		m2 := uint8(0)
		if selector&0x4 != 0 {
			m2 = 0xFF
		}
		m3 := uint8(0)
		if selector&0x8 != 0 {
			m3 = 0xFF
		}

		for s := 0; s < 256; s += 17 { // sample, full 256x256x16 is excessive
			for d := 0; d < 256; d += 17 {
				mem := testmem.New(1 << 21)
				mem.Seed(0x010000, []byte{byte(s)})
				mem.Seed(0x020000, []byte{byte(d)})
				e := newExecutingEngine(F018A, mem, opMix, 1, 0x010000, 0x020000)
				e.minterms = [4]uint8{m0, m1, m2, m3}
				e.transferByte()

				sb, db := uint8(s), uint8(d)
				want := (sb & db & m3) | (sb &^ db & m2) | (^sb & db & m1) | (^sb & ^db & m0)
				got := mem.Bytes(0x020000, 1)[0]
				if got != want {
					t.Fatalf("selector=%04b s=%d d=%d: got 0x%02X, want 0x%02X", selector, s, d, got, want)
				}
			}
		}
	}
}

func TestTransferTransparencySuppressesMatchingWrites(t *testing.T) {
	mem := testmem.New(1 << 21)
	mem.Seed(0x010000, []byte{0x00, 0xFF, 0xAA, 0xFF})
	sentinel := []byte{0x01, 0x02, 0x03, 0x04}
	mem.Seed(0x020000, append([]byte(nil), sentinel...))

	e := newExecutingEngine(F018A, mem, opCopy, 4, 0x010000, 0x020000)
	e.transparencyOn = true
	e.transparencyVal = 0xFF

	for i := 0; i < 4; i++ {
		e.transferByte()
	}

	got := mem.Bytes(0x020000, 4)
	want := []byte{0x00, sentinel[1], 0xAA, sentinel[3]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, got[i], want[i])
		}
	}
}
