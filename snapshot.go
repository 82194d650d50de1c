package dmagic

import "fmt"

// SnapshotBlock mirrors the versioned sub-block framing a C65/MEGA-65
// emulator's snapshot layer hands to every component it serializes: that
// framing — block headers, file I/O — is out of this core's scope; the
// core only produces and consumes the payload plus the header fields it
// must validate.
type SnapshotBlock struct {
	Version  uint32
	SubIndex uint32
	Data     []byte
}

// SnapshotSave packs the register shadow and chip revision into a fixed
// 256-byte block. Bytes 0x00-0x0F hold the 16 register shadows, byte 0x80
// holds the chip revision, and every other byte is written as 0xFF.
func (e *Engine) SnapshotSave() SnapshotBlock {
	data := make([]byte, snapshotBlockSize)
	for i := range data {
		data[i] = 0xFF
	}
	copy(data[snapshotRegionRegs:snapshotRegionRegs+regCount], e.regs[:])
	data[snapshotRegionRevByte] = byte(e.revision)

	return SnapshotBlock{Version: snapshotBlockVersion, SubIndex: 0, Data: data}
}

// SnapshotLoad restores the register shadow and chip revision from block.
// It rejects a version mismatch, a nonzero sub-block index, or a block
// whose size differs from 256 bytes — none of these are recoverable, and
// SnapshotLoad leaves the engine's current state untouched when it returns
// an error.
func (e *Engine) SnapshotLoad(block SnapshotBlock) error {
	if block.Version != snapshotBlockVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, block.Version, snapshotBlockVersion)
	}
	if block.SubIndex != 0 {
		return fmt.Errorf("%w: got %d", ErrSnapshotSubBlock, block.SubIndex)
	}
	if len(block.Data) != snapshotBlockSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSnapshotSize, len(block.Data), snapshotBlockSize)
	}

	copy(e.regs[:], block.Data[snapshotRegionRegs:snapshotRegionRegs+regCount])
	e.revision = Revision(block.Data[snapshotRegionRevByte])
	return nil
}
