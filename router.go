package dmagic

// configureRouting selects, for both source and target, the address mask
// and megabyte base that readSource/writeSource/readTarget/writeTarget use
// for the remainder of the current descriptor. It is a pure function of
// the descriptor's I/O routing flags and the current megabyte selectors,
// computed once at descriptor-parse time and cached the way the original
// core caches "cur_megabyte" to avoid re-deciding routing on every byte.
func (e *Engine) configureRouting() {
	if e.sourceIsIO {
		e.sourceMask = 0xFFF
		e.sourceCurMegabyte = e.physIOOffset
	} else {
		e.sourceMask = 0xFFFFF
		e.sourceCurMegabyte = e.sourceMegabyte << 20
	}

	if e.targetIsIO {
		e.targetMask = 0xFFF
		e.targetCurMegabyte = e.physIOOffset
	} else {
		e.targetMask = 0xFFFFF
		e.targetCurMegabyte = e.targetMegabyte << 20
	}
}

func (e *Engine) readSource() uint8 {
	addr := (e.sourceAddr & e.sourceMask) + e.sourceCurMegabyte
	if e.sourceIsIO {
		return e.hooks.SourceIORead(addr)
	}
	return e.hooks.SourceMemRead(addr)
}

func (e *Engine) writeSource(b uint8) {
	addr := (e.sourceAddr & e.sourceMask) + e.sourceCurMegabyte
	if e.sourceIsIO {
		e.hooks.SourceIOWrite(addr, b)
		return
	}
	e.hooks.SourceMemWrite(addr, b)
}

func (e *Engine) readTarget() uint8 {
	addr := (e.targetAddr & e.targetMask) + e.targetCurMegabyte
	if e.targetIsIO {
		return e.hooks.TargetIORead(addr)
	}
	return e.hooks.TargetMemRead(addr)
}

func (e *Engine) writeTarget(b uint8) {
	addr := (e.targetAddr & e.targetMask) + e.targetCurMegabyte
	if e.targetIsIO {
		e.hooks.TargetIOWrite(addr, b)
		return
	}
	e.hooks.TargetMemWrite(addr, b)
}

// writeTargetFiltered applies MEGA-65 transparency suppression for the
// single-write operations (COPY, MIX, FILL): a write is skipped whenever
// the candidate byte equals the transparency value. SWAP has its own,
// two-sided transparency check in transfer.go.
func (e *Engine) writeTargetFiltered(b uint8) {
	if e.transparencyOn && e.transparencyVal == b {
		return
	}
	e.writeTarget(b)
}
