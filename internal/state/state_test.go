package state

import "testing"

func TestMachine_ZeroValue(t *testing.T) {
	var m Machine
	if m.Shifted() {
		t.Error("zero machine Shifted() = true, want false")
	}
	if m.Reversed() {
		t.Error("zero machine Reversed() = true, want false")
	}
}

func TestMachine_Apply(t *testing.T) {
	tests := []struct {
		name         string
		bytes        []byte
		wantShifted  bool
		wantReversed bool
	}{
		{"shift in", []byte{ShiftIn}, true, false},
		{"shift in then out", []byte{ShiftIn, ShiftOut}, false, false},
		{"reverse on", []byte{ReverseOn}, false, true},
		{"reverse on then off", []byte{ReverseOn, ReverseOff}, false, false},
		{"axes are independent", []byte{ShiftIn, ReverseOn}, true, true},
		{"shift out alone is a no-op state", []byte{ShiftOut}, false, false},
		{"repeated control bytes are idempotent", []byte{ShiftIn, ShiftIn, ReverseOn, ReverseOn}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Machine
			for _, b := range tt.bytes {
				if !m.Apply(b) {
					t.Fatalf("Apply(0x%02X) = false, want true", b)
				}
			}
			if m.Shifted() != tt.wantShifted {
				t.Errorf("Shifted() = %v, want %v", m.Shifted(), tt.wantShifted)
			}
			if m.Reversed() != tt.wantReversed {
				t.Errorf("Reversed() = %v, want %v", m.Reversed(), tt.wantReversed)
			}
		})
	}
}

func TestMachine_ApplyNonControl(t *testing.T) {
	var m Machine
	m.Apply(ShiftIn)
	m.Apply(ReverseOn)

	for _, b := range []byte{0x00, 0x08, 0x09, 0x41, 0x61, 0xA0, 0xFF} {
		if m.Apply(b) {
			t.Errorf("Apply(0x%02X) = true, want false", b)
		}
	}
	if !m.Shifted() || !m.Reversed() {
		t.Error("non-control bytes must not disturb the machine")
	}
}

func TestControl(t *testing.T) {
	for _, b := range []byte{ShiftIn, ShiftOut, ReverseOn, ReverseOff} {
		if !Control(b) {
			t.Errorf("Control(0x%02X) = false, want true", b)
		}
	}
	for _, b := range []byte{0x00, 0x08, 0x09, 0x0D, 0x41, 0xA0} {
		if Control(b) {
			t.Errorf("Control(0x%02X) = true, want false", b)
		}
	}
}

func TestMachine_Shift(t *testing.T) {
	var m Machine

	if _, emit := m.Shift(false); emit {
		t.Error("Shift(false) from unshifted should emit nothing")
	}

	b, emit := m.Shift(true)
	if !emit || b != ShiftIn {
		t.Errorf("Shift(true) = 0x%02X, %v; want 0x%02X, true", b, emit, ShiftIn)
	}
	if !m.Shifted() {
		t.Error("machine should be shifted after Shift(true)")
	}

	if _, emit := m.Shift(true); emit {
		t.Error("Shift(true) while shifted should emit nothing")
	}

	b, emit = m.Shift(false)
	if !emit || b != ShiftOut {
		t.Errorf("Shift(false) = 0x%02X, %v; want 0x%02X, true", b, emit, ShiftOut)
	}
	if m.Shifted() {
		t.Error("machine should be unshifted after Shift(false)")
	}
}
