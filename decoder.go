package petscii

import (
	"fmt"
	"strings"

	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/errors"
	"github.com/forbidden-bands/petscii/internal/state"
)

// Decoder converts PETSCII buffers to Unicode text. A nil character
// map selects the pure identity mapping. Decoders are stateless
// between calls and safe for concurrent use.
type Decoder struct {
	tables *charmap.Map
}

// NewDecoder returns a Decoder backed by m. m may be nil for identity
// decoding.
func NewDecoder(m *charmap.Map) *Decoder {
	return &Decoder{tables: m}
}

// Decode is a convenience for NewDecoder(m).Decode(s).
func Decode(s String, m *charmap.Map) (string, error) {
	return NewDecoder(m).Decode(s)
}

// Normalize collapses the alias ranges of the legacy code space:
// 192–223 alias 96–127, 224–254 alias 160–190, and 255 aliases 126.
// Values 0–191 pass through unchanged.
func Normalize(b byte) byte {
	switch {
	case b >= 192 && b <= 223:
		return b - 96
	case b >= 224 && b <= 254:
		return b - 64
	case b == 255:
		return 126
	}
	return b
}

// Decode converts the buffer to text.
//
// Control bytes switch shift and reverse-video state and emit nothing.
// Unmapped codes are not errors: a petscii-to-screen miss emits the
// identity scalar of the original byte and a screen-to-unicode miss
// emits the identity scalar of the normalized code. The only failures
// are the two corrupt-table invariants: a screen code above the 7-bit
// range before reverse-video adjustment, and a screen set the map does
// not know.
func (d *Decoder) Decode(s String) (string, error) {
	if d.tables == nil {
		return decodeIdentity(s), nil
	}

	var (
		b  strings.Builder
		st state.Machine
	)
	b.Grow(s.n)

	for _, raw := range s.data[:s.n] {
		if s.strip && raw == Pad {
			continue
		}
		if st.Apply(raw) {
			continue
		}

		code := Normalize(raw)
		ref, ok := d.tables.Screen(code, st.Shifted())
		if !ok {
			b.WriteRune(rune(raw))
			continue
		}

		if ref.Code > 0x7F {
			return "", errors.CorruptTable(screenTableName(st.Shifted()), raw,
				fmt.Sprintf("legacy code %d maps to screen code %d, above the 7-bit range", code, ref.Code))
		}
		sc := ref.Code
		if st.Reversed() {
			sc += 0x80
		}

		if !d.tables.HasSet(ref.Set) {
			return "", errors.CorruptTable(charmap.TableScreenToUnicode, raw,
				fmt.Sprintf("legacy code %d routes to unknown screen set %d", code, ref.Set))
		}
		r, ok := d.tables.Rune(ref.Set, sc)
		if !ok {
			b.WriteRune(rune(code))
			continue
		}
		b.WriteRune(r)
	}

	return b.String(), nil
}

// decodeIdentity maps every byte to the scalar of the same value. Pad
// stripping still applies; control bytes do not, because without
// tables there is no mapped rendering for state to select.
func decodeIdentity(s String) string {
	var b strings.Builder
	b.Grow(s.n)
	for _, raw := range s.data[:s.n] {
		if s.strip && raw == Pad {
			continue
		}
		b.WriteRune(rune(raw))
	}
	return b.String()
}

func screenTableName(shifted bool) string {
	if shifted {
		return charmap.TableShiftedToScreen
	}
	return charmap.TableUnshiftedToScreen
}
