// Package state implements the conversion-state machine shared by the
// decoder and encoder: two orthogonal boolean axes (shift, video)
// driven by a table of control-byte transitions.
package state

// Control bytes recognized by the machine.
const (
	ShiftIn    byte = 0x0E // select the shifted character generator
	ShiftOut   byte = 0x8E // return to the unshifted generator
	ReverseOn  byte = 0x12 // reversed video on
	ReverseOff byte = 0x92 // reversed video off
)

// The shift-lock bytes 0x08/0x09 are not transitions. Their interaction
// with the shift axis is unverified against hardware, so they pass
// through as ordinary codes instead of changing state.

type axis uint8

const (
	axisShift axis = iota
	axisVideo
)

type transition struct {
	axis axis
	on   bool
}

// transitions maps each control byte to the state change it performs.
var transitions = map[byte]transition{
	ShiftIn:    {axisShift, true},
	ShiftOut:   {axisShift, false},
	ReverseOn:  {axisVideo, true},
	ReverseOff: {axisVideo, false},
}

// Control reports whether b is one of the recognized control bytes.
func Control(b byte) bool {
	_, ok := transitions[b]
	return ok
}

// Machine tracks conversion state during one decode or encode pass.
// The zero value is the required starting state: unshifted, normal
// video. State never persists across passes.
type Machine struct {
	shifted  bool
	reversed bool
}

// Apply consumes b when it is a control byte, updating the machine,
// and reports whether it was consumed. Non-control bytes leave the
// machine untouched.
func (m *Machine) Apply(b byte) bool {
	t, ok := transitions[b]
	if !ok {
		return false
	}
	switch t.axis {
	case axisShift:
		m.shifted = t.on
	case axisVideo:
		m.reversed = t.on
	}
	return true
}

// Shifted reports the shift axis.
func (m *Machine) Shifted() bool {
	return m.shifted
}

// Reversed reports the video axis.
func (m *Machine) Reversed() bool {
	return m.reversed
}

// Shift moves the shift axis to want and returns the control byte that
// performs the transition. The second result is false when the machine
// is already in the requested state and no byte is needed.
func (m *Machine) Shift(want bool) (byte, bool) {
	if m.shifted == want {
		return 0, false
	}
	m.shifted = want
	if want {
		return ShiftIn, true
	}
	return ShiftOut, true
}
