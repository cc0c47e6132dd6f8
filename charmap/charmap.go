// Package charmap defines the character map that drives PETSCII/Unicode
// conversion: nine mappings between legacy codes, screen codes and Unicode
// scalars, plus a version tag.
//
// A Map is plain data. It carries no serialization logic (the config
// package owns the document formats) and is never mutated after
// construction, so a single Map may be shared by any number of
// concurrent decoders and encoders.
package charmap

import (
	"sort"
	"strconv"

	"github.com/forbidden-bands/petscii/errors"
)

// Set identifies one screen-code table. Sets 1 and 2 correspond to the
// two character generators of the original hardware; set 3 is virtual
// and only routes control characters through the lookup machinery.
// Additional virtual sets are data, not code: anything keyed in a Map
// is a valid set.
type Set uint8

const (
	SetUppercase Set = 1 // uppercase/graphics generator
	SetLowercase Set = 2 // lowercase/uppercase generator
	SetControl   Set = 3 // virtual, control characters
)

func (s Set) String() string {
	switch s {
	case SetUppercase:
		return "uppercase/graphics"
	case SetLowercase:
		return "lowercase/uppercase"
	case SetControl:
		return "control"
	}
	return "set(" + strconv.Itoa(int(s)) + ")"
}

// Attr is the attribute byte attached to an encode-direction entry.
// Bit 0 marks legacy codes reachable only in shifted mode.
type Attr uint8

const (
	AttrShifted Attr = 1 << 0
)

// Shifted reports whether the entry requires shifted mode.
func (a Attr) Shifted() bool {
	return a&AttrShifted != 0
}

// ScreenRef addresses one screen code within a screen set.
type ScreenRef struct {
	Set  Set
	Code byte
}

// PetsciiRef is an encode-direction target: the legacy code to emit and
// the attributes required to reach it.
type PetsciiRef struct {
	Attr Attr
	Code byte
}

// Table names used in error reporting and in the document formats.
const (
	TableUnshiftedToScreen = "petscii_unshifted_to_screen"
	TableShiftedToScreen   = "petscii_shifted_to_screen"
	TableScreenToUnicode   = "screen_to_unicode"
	TableUnicodeToScreen   = "unicode_to_screen"
	TableScreenToPetscii   = "screen_to_petscii"
)

// Map is the nine-table character map. The two petscii-to-screen tables
// and the unicode-to-screen table feed the per-set groups, which are
// keyed by Set so that virtual sets beyond the classic three need no
// structural change.
//
// Every table is a pure function of its key; a missing key means "no
// mapping" and the conversion engine falls back per its own rules.
type Map struct {
	Version string

	UnshiftedToScreen map[byte]ScreenRef
	ShiftedToScreen   map[byte]ScreenRef
	ScreenToUnicode   map[Set]map[byte]rune
	UnicodeToScreen   map[rune]ScreenRef
	ScreenToPetscii   map[Set]map[byte]PetsciiRef
}

// New returns an empty Map with all tables allocated.
func New(version string) *Map {
	return &Map{
		Version:           version,
		UnshiftedToScreen: make(map[byte]ScreenRef),
		ShiftedToScreen:   make(map[byte]ScreenRef),
		ScreenToUnicode:   make(map[Set]map[byte]rune),
		UnicodeToScreen:   make(map[rune]ScreenRef),
		ScreenToPetscii:   make(map[Set]map[byte]PetsciiRef),
	}
}

// Screen resolves a legacy code to a screen reference using the table
// selected by the shift state.
func (m *Map) Screen(code byte, shifted bool) (ScreenRef, bool) {
	if shifted {
		ref, ok := m.ShiftedToScreen[code]
		return ref, ok
	}
	ref, ok := m.UnshiftedToScreen[code]
	return ref, ok
}

// HasSet reports whether the decode direction knows the given set tag.
func (m *Map) HasSet(s Set) bool {
	_, ok := m.ScreenToUnicode[s]
	return ok
}

// Rune resolves a screen code within a set to its Unicode scalar.
// The caller is expected to have checked HasSet; an unknown set simply
// reports no mapping here.
func (m *Map) Rune(s Set, code byte) (rune, bool) {
	tbl, ok := m.ScreenToUnicode[s]
	if !ok {
		return 0, false
	}
	r, ok := tbl[code]
	return r, ok
}

// ScreenForRune resolves a Unicode scalar to a screen reference.
func (m *Map) ScreenForRune(r rune) (ScreenRef, bool) {
	ref, ok := m.UnicodeToScreen[r]
	return ref, ok
}

// HasPetsciiSet reports whether the encode direction knows the given
// set tag.
func (m *Map) HasPetsciiSet(s Set) bool {
	_, ok := m.ScreenToPetscii[s]
	return ok
}

// Petscii resolves a screen code within a set to its encode target.
func (m *Map) Petscii(s Set, code byte) (PetsciiRef, bool) {
	tbl, ok := m.ScreenToPetscii[s]
	if !ok {
		return PetsciiRef{}, false
	}
	ref, ok := tbl[code]
	return ref, ok
}

// Sets lists the decode-direction set tags in ascending order.
func (m *Map) Sets() []Set {
	out := make([]Set, 0, len(m.ScreenToUnicode))
	for s := range m.ScreenToUnicode {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Validate checks the invariants the conversion engine relies on:
// screen codes produced by the petscii-to-screen tables stay below 128
// (reverse video needs the eighth bit), every set tag those tables name
// resolves to a screen-to-unicode table, and every set tag named by
// unicode-to-screen resolves to a screen-to-petscii table. A Map that
// fails validation would trip the engine's fatal corrupt-table paths at
// conversion time; catching it at load time is the collaborator's job.
func (m *Map) Validate() error {
	check := func(table string, entries map[byte]ScreenRef) error {
		for code, ref := range entries {
			if ref.Code > 0x7F {
				return errors.New(errors.PhaseConfig, errors.KindInvalidData).
					Table(table).
					Value(code).
					Detail("entry %d maps to screen code %d, above the 7-bit range", code, ref.Code).
					Build()
			}
			if !m.HasSet(ref.Set) {
				return errors.New(errors.PhaseConfig, errors.KindInvalidData).
					Table(table).
					Value(code).
					Detail("entry %d names unknown screen set %d", code, ref.Set).
					Build()
			}
		}
		return nil
	}

	if err := check(TableUnshiftedToScreen, m.UnshiftedToScreen); err != nil {
		return err
	}
	if err := check(TableShiftedToScreen, m.ShiftedToScreen); err != nil {
		return err
	}

	for r, ref := range m.UnicodeToScreen {
		if !m.HasPetsciiSet(ref.Set) {
			return errors.New(errors.PhaseConfig, errors.KindInvalidData).
				Table(TableUnicodeToScreen).
				Value(r).
				Detail("U+%04X names unknown screen set %d", r, ref.Set).
				Build()
		}
	}

	return nil
}
