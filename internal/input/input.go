// Package input maintains double-buffered controller state. The frame
// loop calls Update once per frame before game logic runs, so every
// consumer sees one consistent snapshot per frame.
package input

import "github.com/manicakes/progearsdk/internal/hw"

// Button is a canonical button mask. Direction and action buttons map
// to the controller port bits; Start and Select are folded in from the
// system status port.
type Button uint16

const (
	Up     Button = 0x001
	Down   Button = 0x002
	Left   Button = 0x004
	Right  Button = 0x008
	A      Button = 0x010
	B      Button = 0x020
	C      Button = 0x040
	D      Button = 0x080
	Start  Button = 0x100
	Select Button = 0x200
)

// ButtonCount is the number of single-bit buttons tracked per player.
const ButtonCount = 10

// System button masks, from the coin/service port.
const (
	Coin1   = 0x01
	Coin2   = 0x02
	Service = 0x04
)

// Player holds one controller's state for the current frame.
type Player struct {
	Held     Button // buttons down this frame
	Pressed  Button // down this frame, up last frame
	Released Button // up this frame, down last frame

	heldFrames    [ButtonCount]uint16
	releaseFrames [ButtonCount]uint16
}

// State owns both players plus the cabinet's system buttons.
type State struct {
	bus hw.Bus

	Players [2]Player

	sysHeld    uint8
	sysPressed uint8
}

func New(bus hw.Bus) *State {
	return &State{bus: bus}
}

// Init clears every player and system field. Buttons held across Init
// will read as freshly pressed on the next Update.
func (s *State) Init() {
	s.Players[0] = Player{}
	s.Players[1] = Player{}
	s.sysHeld = 0
	s.sysPressed = 0
}

// Update samples the hardware ports and advances edge and frame-count
// state. Ports are active-low; bits are inverted into canonical masks.
func (s *State) Update() {
	p1 := Button(^s.bus.Read8(hw.IOP1)) & 0xFF
	p2 := Button(^s.bus.Read8(hw.IOP2)) & 0xFF

	statusB := ^s.bus.Read8(hw.IOStatusB)
	if statusB&hw.IOP1Start != 0 {
		p1 |= Start
	}
	if statusB&hw.IOP1Select != 0 {
		p1 |= Select
	}
	if statusB&hw.IOP2Start != 0 {
		p2 |= Start
	}
	if statusB&hw.IOP2Select != 0 {
		p2 |= Select
	}

	s.Players[0].update(p1)
	s.Players[1].update(p2)

	sys := ^s.bus.Read8(hw.IOStatusA) & (Coin1 | Coin2 | Service)
	s.sysPressed = sys &^ s.sysHeld
	s.sysHeld = sys
}

func (p *Player) update(held Button) {
	prev := p.Held
	p.Held = held
	p.Pressed = held &^ prev
	p.Released = prev &^ held

	for bit := 0; bit < ButtonCount; bit++ {
		mask := Button(1) << bit
		if held&mask != 0 {
			if p.heldFrames[bit] < 0xFFFF {
				p.heldFrames[bit]++
			}
			p.releaseFrames[bit] = 0
		} else {
			p.heldFrames[bit] = 0
			if p.releaseFrames[bit] < 0xFFFF {
				p.releaseFrames[bit]++
			}
		}
	}
}

// IsHeld reports whether every bit in mask is down.
func (p *Player) IsHeld(mask Button) bool {
	return p.Held&mask == mask
}

// IsPressed reports whether every bit in mask went down this frame.
func (p *Player) IsPressed(mask Button) bool {
	return p.Pressed&mask == mask && mask != 0
}

// IsReleased reports whether every bit in mask came up this frame.
func (p *Player) IsReleased(mask Button) bool {
	return p.Released&mask == mask && mask != 0
}

// Any reports whether anything at all is down.
func (p *Player) Any() bool {
	return p.Held != 0
}

// HeldFrames returns how many consecutive frames the button has been
// down, including this one. Zero when the button is up. Multi-bit
// masks return the minimum across the set bits.
func (p *Player) HeldFrames(mask Button) uint16 {
	return minFrames(&p.heldFrames, mask)
}

// ReleaseFrames returns how many consecutive frames the button has
// been up. Zero while it is held.
func (p *Player) ReleaseFrames(mask Button) uint16 {
	return minFrames(&p.releaseFrames, mask)
}

func minFrames(frames *[ButtonCount]uint16, mask Button) uint16 {
	min := uint16(0xFFFF)
	found := false
	for bit := 0; bit < ButtonCount; bit++ {
		if mask&(Button(1)<<bit) == 0 {
			continue
		}
		found = true
		if frames[bit] < min {
			min = frames[bit]
		}
	}
	if !found {
		return 0
	}
	return min
}

// AxisX maps left/right to -1/0/+1; both held cancels.
func (p *Player) AxisX() int {
	switch {
	case p.Held&Left != 0 && p.Held&Right != 0:
		return 0
	case p.Held&Left != 0:
		return -1
	case p.Held&Right != 0:
		return 1
	}
	return 0
}

// AxisY maps up/down to -1/0/+1; both held cancels.
func (p *Player) AxisY() int {
	switch {
	case p.Held&Up != 0 && p.Held&Down != 0:
		return 0
	case p.Held&Up != 0:
		return -1
	case p.Held&Down != 0:
		return 1
	}
	return 0
}

// CoinPressed reports a coin-switch edge this frame.
func (s *State) CoinPressed(mask uint8) bool {
	return s.sysPressed&mask != 0
}

// ServiceHeld reports the service switch state.
func (s *State) ServiceHeld() bool {
	return s.sysHeld&Service != 0
}
