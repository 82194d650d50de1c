// Package dmagic implements the core of a Commodore 65 / MEGA-65 "F018"
// DMA controller (DMAgic): the register file, the classic and MEGA-65
// extended DMA list formats, and the COPY/MIX/SWAP/FILL transfer engine.
//
// The engine never touches memory or I/O directly. It is driven entirely
// through the Hooks supplied to New, and is stepped one cooperative unit
// of work at a time via Update, so a host can interleave DMA progress with
// CPU and video emulation without ever blocking on a long transfer.
package dmagic

import "errors"

// Revision selects the DMAgic chip generation. It affects both how the
// register file arms a transfer (see Engine.WriteReg) and how a descriptor's
// command and address bytes are decoded (see fetchDescriptor).
type Revision uint8

const (
	F018A Revision = iota
	F018B
)

func (r Revision) String() string {
	if r == F018B {
		return "F018B"
	}
	return "F018A"
}

// Hooks is the capability record the engine uses to reach host memory and
// I/O. All eight read/write hooks and the list reader must be non-nil;
// the engine treats the contract as total (every call succeeds and returns
// a byte), matching real F018 hardware semantics.
type Hooks struct {
	SourceMemRead  func(addr uint32) uint8
	SourceMemWrite func(addr uint32, b uint8)
	TargetMemRead  func(addr uint32) uint8
	TargetMemWrite func(addr uint32, b uint8)

	SourceIORead  func(addr uint32) uint8
	SourceIOWrite func(addr uint32, b uint8)
	TargetIORead  func(addr uint32) uint8
	TargetIOWrite func(addr uint32, b uint8)

	ListRead func(addr uint32) uint8
}

// phase is the tagged variant replacing the original source's sentinel
// command values (-1 / -2) used to signal "fetch owed before any transfer".
type phase int

const (
	phaseIdle phase = iota
	phasePendingClassicFetch
	phasePendingExtendedFetch
	phaseExecuting
)

var (
	// ErrProtocol is returned when the extended-list parser hits an
	// opcode it does not recognise. Fatal to the in-flight DMA.
	ErrProtocol = errors.New("dmagic: unrecognised extended-list opcode")

	// ErrRunaway is returned by the internal full-drain helper when
	// arming overlaps a busy engine and the previous operation does not
	// finish within maxDrainIterations steps — almost always a cyclic
	// chained descriptor.
	ErrRunaway = errors.New("dmagic: run-away DMA, exceeded drain iteration limit")

	// ErrSnapshotVersion, ErrSnapshotSize and ErrSnapshotSubBlock are
	// returned by SnapshotLoad when the supplied block fails validation.
	ErrSnapshotVersion  = errors.New("dmagic: snapshot block version mismatch")
	ErrSnapshotSize     = errors.New("dmagic: snapshot block has wrong size")
	ErrSnapshotSubBlock = errors.New("dmagic: snapshot sub-block index must be zero")
)
