package dmagic

// Transfer operations selected by command bits [1:0].
const (
	opCopy = 0
	opMix  = 1
	opSwap = 2
	opFill = 3
)

// transferByte performs exactly one byte of work for the current
// operation, advances whichever of source/target the operation touches,
// and decrements length. When length reaches zero it completes the
// operation (chained re-fetch, or idle).
func (e *Engine) transferByte() {
	switch e.command & 0x03 {
	case opCopy:
		e.writeTargetFiltered(e.readSource())
		e.advanceSource()
		e.advanceTarget()

	case opMix:
		s := e.readSource()
		d := e.readTarget()
		out := (s & d & e.minterms[3]) |
			(s & ^d & e.minterms[2]) |
			(^s & d & e.minterms[1]) |
			(^s & ^d & e.minterms[0])
		e.writeTargetFiltered(out)
		e.advanceSource()
		e.advanceTarget()

	case opSwap:
		s := e.readSource()
		d := e.readTarget()
		if !e.transparencyOn || (e.transparencyVal != s && e.transparencyVal != d) {
			e.writeSource(d)
			e.writeTarget(s)
		}
		e.advanceSource()
		e.advanceTarget()

	case opFill:
		// FILL never reads source memory and never advances source_addr
		// (classic DMAgic behaviour: FILL only steps target_addr) — so
		// the low byte of source_addr is a constant filler value for the
		// whole run, not a moving one.
		filler := uint8(e.sourceAddr & 0xFF)
		e.writeTargetFiltered(filler)
		e.advanceTarget()
	}

	e.length--
	if e.length == 0 {
		e.completeOperation()
	}
}

// completeOperation runs when the current descriptor's length reaches
// zero: either the engine owes another descriptor fetch (chained) or it
// goes idle and the MEGA-65 transient modifiers reset to their defaults.
func (e *Engine) completeOperation() {
	if e.chained {
		e.status = 0x81
		if e.extendedList {
			e.phase = phasePendingExtendedFetch
		} else {
			e.phase = phasePendingClassicFetch
		}
		return
	}

	e.status = 0
	e.phase = phaseIdle
	e.resetMega65Transients()
}
