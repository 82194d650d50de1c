package dmagic

// nextListByte fetches one byte from the DMA list at the current pointer
// and advances the pointer modulo 2^20 within the list megabyte slice.
// Unlike source/target access, list reads are always memory and the step
// is always one.
func (e *Engine) nextListByte() uint8 {
	addr := (e.dmaListAddr & 0xFFFFF) + e.listMegabyte
	b := e.hooks.ListRead(addr)
	e.dmaListAddr = (e.dmaListAddr + 1) & 0xFFFFF
	return b
}

// next24 reads a 24-bit little-endian field from the list stream, used for
// the source and target offset fields of a descriptor.
func (e *Engine) next24() uint32 {
	lo := uint32(e.nextListByte())
	mid := uint32(e.nextListByte())
	hi := uint32(e.nextListByte())
	return lo | mid<<8 | hi<<16
}
