package petscii

import (
	"fmt"
	"strings"

	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/errors"
	"github.com/forbidden-bands/petscii/internal/state"
)

// Control bytes of the encoding, re-exported for callers that need to
// recognize them in raw data.
const (
	ShiftIn    = state.ShiftIn
	ShiftOut   = state.ShiftOut
	ReverseOn  = state.ReverseOn
	ReverseOff = state.ReverseOff
)

// Pad is the sentinel byte (a shifted space) used by the legacy
// filesystem convention to pad fixed-width entries.
const Pad byte = 0xA0

// String is a fixed-capacity PETSCII byte buffer. Capacity is set at
// construction and never changes; the logical contents occupy the
// first Len bytes and the unused tail stays zero-filled. Values are
// immutable after construction.
type String struct {
	data  []byte
	n     int
	strip bool
}

// New builds a String of the given capacity holding data. It fails
// with a typed oversize error when data does not fit.
func New(capacity int, data []byte) (String, error) {
	return build(capacity, data, false)
}

// NewStripPadding is New with pad stripping enabled: the decoder will
// ignore pad sentinel bytes wherever they occur in the contents.
func NewStripPadding(capacity int, data []byte) (String, error) {
	return build(capacity, data, true)
}

// FromText encodes text with the given character map into a String of
// the given capacity. It fails with a typed oversize error when the
// encoded form, control bytes included, does not fit.
func FromText(text string, m *charmap.Map, capacity int) (String, error) {
	return NewEncoder(m).Encode(text, capacity)
}

func build(capacity int, data []byte, strip bool) (String, error) {
	if capacity < 0 {
		return String{}, errors.InvalidInput(errors.PhaseBuffer, "negative capacity")
	}
	if len(data) > capacity {
		return String{}, errors.Oversize(errors.PhaseBuffer, len(data), capacity)
	}
	buf := make([]byte, capacity)
	copy(buf, data)
	return String{data: buf, n: len(data), strip: strip}, nil
}

// Len returns the logical length in bytes.
func (s String) Len() int {
	return s.n
}

// Cap returns the fixed capacity.
func (s String) Cap() int {
	return len(s.data)
}

// Bytes returns a copy of the logical contents.
func (s String) Bytes() []byte {
	out := make([]byte, s.n)
	copy(out, s.data[:s.n])
	return out
}

// At returns the byte at index i, which must be below Len.
func (s String) At(i int) byte {
	return s.data[:s.n][i]
}

// StripsPadding reports whether the decoder ignores pad sentinels in
// this buffer.
func (s String) StripsPadding() bool {
	return s.strip
}

// Equal reports whether the logical contents match. Capacity and the
// pad-stripping flag are decode options, not contents, and do not
// participate.
func (s String) Equal(o String) bool {
	if s.n != o.n {
		return false
	}
	for i := 0; i < s.n; i++ {
		if s.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// String renders the contents as identity-decoded text: every byte
// becomes the Unicode scalar of the same value, with no control or
// table handling. Use a Decoder for a mapped rendering.
func (s String) String() string {
	var b strings.Builder
	b.Grow(s.n)
	for _, raw := range s.data[:s.n] {
		b.WriteRune(rune(raw))
	}
	return b.String()
}

// Dump renders length, raw bytes and identity-decoded text together
// for debugging.
func (s String) Dump() string {
	return fmt.Sprintf("petscii.String{len: %d, cap: %d, bytes: % 02X, text: %q}",
		s.n, len(s.data), s.data[:s.n], s.String())
}
