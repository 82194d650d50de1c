package dmagic

// fractionalStep computes one Q8.8-scaled address delta and updates the
// carry remainder, matching calc_fractional_step in the original DMAgic
// core. step is one of {-1, 0, +1}; frac is the Q8.8 multiplier (0x0100 is
// the identity, reproducing classic integer stepping exactly). The
// remainder plus step*frac is carried in a 64-bit signed accumulator; the
// delta is that sum floor-divided by 256 and the new remainder is its low
// 8 bits, so negative steps carry the same way positive ones do.
func fractionalStep(step int32, frac uint16, remain *uint8) int32 {
	sum := int64(*remain) + int64(step)*int64(frac)
	*remain = uint8(sum & 0xFF)
	return int32(sum >> 8)
}

// nextAddr returns the address reached after one step, applying fractional
// stepping unconditionally: with the default identity fraction (0x0100)
// and zero remainder this reduces exactly to addr+step, so classic F018A
// transfers and MEGA-65 fractional transfers share one code path.
func nextAddr(addr uint32, step int32, frac uint16, remain *uint8) uint32 {
	delta := fractionalStep(step, frac, remain)
	return uint32(int64(addr) + int64(delta))
}

func (e *Engine) advanceSource() {
	e.sourceAddr = nextAddr(e.sourceAddr, e.sourceStep, e.sourceStepFraction, &e.sourceStepRemain)
}

func (e *Engine) advanceTarget() {
	e.targetAddr = nextAddr(e.targetAddr, e.targetStep, e.targetStepFraction, &e.targetStepRemain)
}
