package hw

// System wraps the board services that aren't video: the vblank flag
// maintained by the interrupt handler, the watchdog, and the BIOS cells
// describing the cabinet.
type System struct {
	bus Bus
}

func NewSystem(bus Bus) *System {
	return &System{bus: bus}
}

// WaitVBlank spins until the vblank interrupt sets the BIOS flag, then
// clears it so the next wait blocks a full frame.
func (s *System) WaitVBlank() {
	for s.bus.Read8(BIOSVBlankFlag) == 0 {
	}
	s.bus.Write8(BIOSVBlankFlag, 0)
}

// VBlankPending reports the flag without consuming it.
func (s *System) VBlankPending() bool {
	return s.bus.Read8(BIOSVBlankFlag) != 0
}

// KickWatchdog resets the hardware watchdog. Must happen every frame or
// the board resets.
func (s *System) KickWatchdog() {
	s.bus.Write8(IOWatchdog, 0)
}

// IsMVS reports whether this is an arcade cabinet rather than a home
// console.
func (s *System) IsMVS() bool {
	return s.bus.Read8(BIOSMVSFlag) != 0
}

// Region codes as stored in the BIOS country cell.
const (
	RegionJapan  = 0
	RegionUSA    = 1
	RegionEurope = 2
)

// Region returns the cabinet's country code.
func (s *System) Region() uint8 {
	return s.bus.Read8(BIOSCountry)
}

// SetMode writes the LSPC mode register: auto-animation speed in the
// high bits, timer control in the low bits.
func (s *System) SetMode(mode uint16) {
	s.bus.Write16(LSPCMode, mode)
}
