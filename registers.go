package dmagic

// Register addresses within the 16-byte DMA register file. Only a handful
// of addresses trigger action on write (see Engine.WriteReg); the rest are
// reserved state latches consumed when a descriptor is fetched.
const (
	regListAddrLo      = 0x0 // writing this register arms a classic DMA
	regListAddrMid     = 0x1
	regListAddrHi      = 0x2 // low nibble only; MEGA-65 also resets reg 4 here
	regListMegabyte    = 0x4 // MEGA-65: megabyte slice of the DMA list
	regExtListAddrLo   = 0x5 // MEGA-65: writing a nonzero value arms an extended DMA
	regListAddrLoNoArm = 0xE // MEGA-65: loads reg 0 without arming

	regCount = 16
)

const maxDrainIterations = 256 * 1024

// snapshot block layout, see snapshot.go.
const (
	snapshotBlockSize     = 256
	snapshotBlockVersion  = 1
	snapshotRegionRegs    = 0x00
	snapshotRegionRevByte = 0x80
)
