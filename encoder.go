package petscii

import (
	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/errors"
	"github.com/forbidden-bands/petscii/internal/state"
)

// Encoder converts Unicode text to PETSCII buffers. Unlike decoding,
// encoding has no identity fallback and requires a character map.
// Encoders are stateless between calls and safe for concurrent use.
type Encoder struct {
	tables *charmap.Map
}

// NewEncoder returns an Encoder backed by m.
func NewEncoder(m *charmap.Map) *Encoder {
	return &Encoder{tables: m}
}

// Encode is a convenience for NewEncoder(m).Encode(text, capacity).
func Encode(text string, m *charmap.Map, capacity int) (String, error) {
	return NewEncoder(m).Encode(text, capacity)
}

// Encode converts text into a String of the given capacity.
//
// Characters without a mapping are elided silently. Shift transitions
// emit 0x0E/0x8E inline, and text that ends shifted gets a trailing
// 0x8E, so concatenating independently encoded buffers never leaks
// shift state. The result fails with a typed oversize error when the
// encoded form, control bytes included, exceeds capacity.
func (e *Encoder) Encode(text string, capacity int) (String, error) {
	if e.tables == nil {
		return String{}, errors.InvalidInput(errors.PhaseEncode, "nil character map")
	}
	if capacity < 0 {
		return String{}, errors.InvalidInput(errors.PhaseEncode, "negative capacity")
	}

	out := make([]byte, 0, capacity)
	var st state.Machine

	for _, r := range text {
		ref, ok := e.tables.ScreenForRune(r)
		if !ok {
			continue
		}
		if !e.tables.HasPetsciiSet(ref.Set) {
			return String{}, errors.New(errors.PhaseEncode, errors.KindCorruptTable).
				Table(charmap.TableScreenToPetscii).
				Value(r).
				Detail("U+%04X routes to unknown screen set %d", r, ref.Set).
				Build()
		}
		pr, ok := e.tables.Petscii(ref.Set, ref.Code)
		if !ok {
			continue
		}

		if b, emit := st.Shift(pr.Attr.Shifted()); emit {
			out = append(out, b)
		}
		out = append(out, pr.Code)
	}

	// Always return to unshifted, regardless of how the text began.
	if b, emit := st.Shift(false); emit {
		out = append(out, b)
	}

	if len(out) > capacity {
		return String{}, errors.Oversize(errors.PhaseEncode, len(out), capacity)
	}

	buf := make([]byte, capacity)
	copy(buf, out)
	return String{data: buf, n: len(out)}, nil
}
