package hw

// MailboxPollLimit bounds the acknowledge spin. The coprocessor answers
// within a scanline or two when it's healthy; past this many polls we
// assume it wedged and carry on without it.
const MailboxPollLimit = 0xFFFF

// AckBit is OR'd into the echoed command by the coprocessor.
const AckBit = 0x80

// Mailbox is the command channel to the audio coprocessor. Commands are
// single bytes; the coprocessor echoes the command with AckBit set once
// it has latched it.
type Mailbox struct {
	bus      Bus
	timedOut bool
}

func NewMailbox(bus Bus) *Mailbox {
	return &Mailbox{bus: bus}
}

// Command sends cmd and blocks until the coprocessor acknowledges or
// the poll limit is reached. Returns false on timeout; the caller's
// state machine advances either way so a dead coprocessor never hangs
// the game.
func (m *Mailbox) Command(cmd uint8) bool {
	m.bus.Write8(IOSound, cmd)

	want := cmd | AckBit
	for i := 0; i < MailboxPollLimit; i++ {
		if m.bus.Read8(IOSound) == want {
			m.timedOut = false
			return true
		}
	}

	m.timedOut = true
	return false
}

// CommandAsync sends cmd without waiting for the acknowledge.
func (m *Mailbox) CommandAsync(cmd uint8) {
	m.bus.Write8(IOSound, cmd)
}

// Reply reads the coprocessor's last response byte.
func (m *Mailbox) Reply() uint8 {
	return m.bus.Read8(IOSound)
}

// TimedOut reports whether the most recent blocking command timed out.
func (m *Mailbox) TimedOut() bool {
	return m.timedOut
}
