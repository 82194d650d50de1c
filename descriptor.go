package dmagic

// 24-bit source/target offset field bit layout (both revisions share the
// I/O-routing and address bits; F018A additionally derives step from this
// field, see below).
const (
	srcTgtAddrMask  = 0xFFFFF
	bitHold         = 0x100000 // F018A: step = 0
	bitUsesModulo   = 0x200000 // not read: modulo addressing is not implemented
	bitStepNegative = 0x400000 // F018A: step = -1 (when not held)
	bitIsIO         = 0x800000 // both revisions: route through the I/O hooks
)

// fetchDescriptor reads the fixed 11-byte (F018A) or 12-byte (F018B)
// descriptor in one cooperative step — the real F018 hardware has no
// suspension point partway through a descriptor fetch, only between
// whole descriptors.
func (e *Engine) fetchDescriptor() {
	e.command = e.nextListByte()

	lengthLo := uint32(e.nextListByte())
	lengthHi := uint32(e.nextListByte())
	e.length = lengthLo | lengthHi<<8

	srcRaw := e.next24()
	tgtRaw := e.next24()

	if e.revision == F018B {
		e.subcommand = e.nextListByte()
	}

	moduloLo := uint32(e.nextListByte())
	moduloHi := uint32(e.nextListByte())
	e.modulo = uint16(moduloLo | moduloHi<<8)

	if e.revision == F018B {
		e.sourceStep = stepFromCommandBit(e.command, 4)
		e.targetStep = stepFromCommandBit(e.command, 5)
		// Minterms are left untouched: whether F018B uses them at all is
		// undocumented behavior.
	} else {
		e.sourceStep = stepFromAddrField(srcRaw)
		e.targetStep = stepFromAddrField(tgtRaw)
		e.minterms[0] = mintermFromCommandBit(e.command, 4)
		e.minterms[1] = mintermFromCommandBit(e.command, 5)
		e.minterms[2] = mintermFromCommandBit(e.command, 6)
		e.minterms[3] = mintermFromCommandBit(e.command, 7)
	}

	e.sourceIsIO = srcRaw&bitIsIO != 0
	e.targetIsIO = tgtRaw&bitIsIO != 0
	e.sourceAddr = srcRaw & srcTgtAddrMask
	e.targetAddr = tgtRaw & srcTgtAddrMask

	e.configureRouting()

	e.chained = e.command&0x04 != 0

	e.log.Debug("descriptor fetched",
		"command", e.command, "length", e.length,
		"source", e.sourceAddr, "sourceIO", e.sourceIsIO,
		"target", e.targetAddr, "targetIO", e.targetIsIO,
		"chained", e.chained)

	if e.length == 0 {
		e.length = 0x10000
	}

	e.phase = phaseExecuting
}

func stepFromCommandBit(command uint8, bit uint) int32 {
	if command&(1<<bit) != 0 {
		return -1
	}
	return 1
}

func stepFromAddrField(raw uint32) int32 {
	if raw&bitHold != 0 {
		return 0
	}
	if raw&bitStepNegative != 0 {
		return -1
	}
	return 1
}

func mintermFromCommandBit(command uint8, bit uint) uint8 {
	if command&(1<<bit) != 0 {
		return 0xFF
	}
	return 0x00
}
