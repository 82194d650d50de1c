package dmagic

import "fmt"

// WriteReg writes data into the 4-bit-addressed register shadow. Only
// specific addresses arm a DMA:
//
//   - F018A: writing register 0 is the only trigger.
//   - F018B (MEGA-65): writing register 2 also resets register 4 (the list
//     megabyte) for C65 compatibility; register 0xE loads the low byte of
//     the list address without arming; register 0 arms a classic DMA;
//     register 5 arms an extended DMA, but a write of zero is ignored.
//
// If the engine is already busy when a new arm occurs, the previous
// operation is drained to completion first; that drain can fail with
// ErrRunaway or ErrProtocol, which WriteReg returns to the caller instead
// of terminating the host process.
func (e *Engine) WriteReg(addr uint8, data uint8) error {
	addr &= 0x0F
	e.regs[addr] = data

	armed, extended := e.decodeArm(addr, data)
	if !armed {
		return nil
	}

	if e.status != 0 {
		if err := e.drainAll(); err != nil {
			return fmt.Errorf("draining previous DMA before re-arm: %w", err)
		}
	}

	e.arm(addr, extended)
	return nil
}

// decodeArm reports whether writing addr (with the shadow already
// updated to data) should arm a DMA, and whether that arm uses the
// MEGA-65 extended list.
func (e *Engine) decodeArm(addr uint8, data uint8) (armed bool, extended bool) {
	if e.revision != F018B {
		return addr == regListAddrLo, false
	}

	switch addr {
	case regListAddrHi:
		e.regs[regListMegabyte] = 0
		return false, false
	case regListAddrLoNoArm:
		e.regs[regListAddrLo] = data
		return false, false
	case regListAddrLo:
		return true, false
	case regExtListAddrLo:
		if data == 0 {
			return false, false
		}
		return true, true
	default:
		return false, false
	}
}

// arm sets up dmaListAddr/listMegabyte and the pending-fetch phase for a
// newly-armed DMA, and raises status to signal the host that Update must
// be called.
func (e *Engine) arm(addr uint8, extended bool) {
	if e.revision == F018B {
		e.listMegabyte = uint32(e.regs[regListMegabyte]) << 20
	} else {
		e.listMegabyte = 0
	}

	low := e.regs[regListAddrLo]
	if extended {
		low = e.regs[regExtListAddrLo]
	}
	e.dmaListAddr = uint32(low) | uint32(e.regs[regListAddrMid])<<8 | uint32(e.regs[regListAddrHi]&0x0F)<<16

	e.extendedList = extended
	if extended {
		e.phase = phasePendingExtendedFetch
	} else {
		e.phase = phasePendingClassicFetch
	}

	e.log.Debug("DMA armed", "reg", addr, "extended", extended,
		"listMegabyte", e.listMegabyte>>20, "listAddr", e.dmaListAddr)

	e.status = 0x80
}

// ReadReg returns the current status byte, regardless of the address
// requested — real F018 hardware exposes status on every register read.
func (e *Engine) ReadReg(addr uint8) uint8 {
	return e.status
}

// Update performs one cooperative step: at most one byte of transfer, or
// one descriptor fetch, or one extended-list opcode. It is a no-op when
// the engine is idle. Returns ErrProtocol if an extended-list opcode is
// unrecognised.
func (e *Engine) Update() error {
	if e.status == 0 {
		return nil
	}
	return e.step()
}

func (e *Engine) step() error {
	switch e.phase {
	case phasePendingExtendedFetch:
		return e.fetchExtendedListOpcode()
	case phasePendingClassicFetch:
		e.fetchDescriptor()
		return nil
	case phaseExecuting:
		e.transferByte()
		return nil
	default:
		return nil
	}
}

// drainAll repeatedly steps the engine until it goes idle, used when a
// register write arms a new DMA while a previous one is still in flight.
// It aborts with ErrRunaway past maxDrainIterations steps, almost always
// indicating a cyclic chained descriptor.
func (e *Engine) drainAll() error {
	limit := maxDrainIterations
	for e.status != 0 {
		if limit <= 0 {
			return fmt.Errorf("%w: still busy after %d iterations", ErrRunaway, maxDrainIterations)
		}
		if err := e.step(); err != nil {
			return err
		}
		limit--
	}
	return nil
}
