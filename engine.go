package dmagic

import "github.com/retrobus/dmagic65/internal/dmalog"

// Engine is one DMAgic F018 controller instance. It holds the register
// file, the current chip revision (which can change at runtime via
// extended-list opcodes, see extlist.go), and the transfer state re-derived
// at every descriptor fetch.
//
// Engine is not safe for concurrent use: the host is expected to drive it
// from a single goroutine via Update, matching the cooperative,
// one-byte-at-a-time scheduling of the real F018 hardware.
type Engine struct {
	hooks    Hooks
	revision Revision

	regs   [regCount]uint8
	status uint8
	phase  phase

	// current operation, re-derived at each descriptor fetch
	command     uint8
	length      uint32
	chained     bool
	extendedList bool // whether the active chain entered via the extended list

	sourceAddr, targetAddr         uint32
	sourceIsIO, targetIsIO         bool
	sourceMask, targetMask         uint32
	sourceMegabyte, targetMegabyte uint32
	sourceCurMegabyte, targetCurMegabyte uint32

	sourceStep, targetStep                 int32
	sourceStepFraction, targetStepFraction uint16
	sourceStepRemain, targetStepRemain     uint8

	minterms [4]uint8

	listMegabyte uint32
	dmaListAddr  uint32

	transparencyOn  bool
	transparencyVal uint8

	subcommand uint8
	modulo     uint16

	physIOOffset, physIOOffsetDefault uint32

	log *dmalog.Logger
}

// New constructs an Engine for the given chip revision, wired to hooks.
// The engine starts idle, as if Reset had just been called.
func New(revision Revision, hooks Hooks) *Engine {
	e := &Engine{
		hooks:    hooks,
		revision: revision,
		log:      dmalog.Discard(),
	}
	e.Reset()
	return e
}

// EnableDebugLogging turns on structured trace output for descriptor
// fetches, extended-list opcodes and register arms. Off by default, since
// Engine is a library embedded in a host process.
func (e *Engine) EnableDebugLogging(enabled bool) {
	if enabled {
		e.log = dmalog.New()
	}
	e.log.SetDebug(enabled)
}

// Reset returns the engine to idle, zeroes the register shadow and
// megabyte selectors, restores the MEGA-65 transient modifiers to their
// defaults, and restores the default physical I/O offset.
func (e *Engine) Reset() {
	e.phase = phaseIdle
	e.status = 0
	e.command = 0
	e.chained = false
	e.extendedList = false
	for i := range e.regs {
		e.regs[i] = 0
	}
	e.sourceMegabyte = 0
	e.targetMegabyte = 0
	e.listMegabyte = 0
	e.dmaListAddr = 0
	e.resetMega65Transients()
	e.physIOOffset = e.physIOOffsetDefault
}

// resetMega65Transients restores the MEGA-65 modifiers to their defaults:
// identity stepping fraction, zero carry, zero megabyte selectors and
// transparency off. Called on Reset and on every unchained termination.
func (e *Engine) resetMega65Transients() {
	e.sourceStepFraction = 0x0100
	e.targetStepFraction = 0x0100
	e.sourceStepRemain = 0
	e.targetStepRemain = 0
	e.sourceMegabyte = 0
	e.targetMegabyte = 0
	e.transparencyOn = false
	e.transparencyVal = 0
}

// SetPhysIOOffset sets both the current and the default physical I/O base
// offset, added to every I/O-routed address. Reasserted on Reset.
func (e *Engine) SetPhysIOOffset(offset uint32) {
	e.physIOOffset = offset
	e.physIOOffsetDefault = offset
}

// Revision returns the engine's current chip revision. It may change at
// runtime if an extended-list opcode selects a different one.
func (e *Engine) Revision() Revision {
	return e.revision
}

// Status returns the current status byte: bit 7 set while the engine owes
// further work, bit 0 set once a chained descriptor has completed and the
// chain continues (it stays set until the chain ends).
func (e *Engine) Status() uint8 {
	return e.status
}

// Busy reports whether the engine owes further work.
func (e *Engine) Busy() bool {
	return e.status != 0
}
