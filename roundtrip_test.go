package petscii

import (
	"bytes"
	"testing"

	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/config"
)

func defaultTables(t testing.TB) *charmap.Map {
	t.Helper()
	m, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default failed: %v", err)
	}
	return m
}

// bannerBytes is a boxed "Hello, world!" in raw PETSCII, box pieces
// and shift runs included.
func bannerBytes() []byte {
	data := []byte{0x0D, 0x0A, 0xB0}
	for i := 0; i < 15; i++ {
		data = append(data, 0x60)
	}
	data = append(data, 0xAE, 0x0D, 0x0A, 0x7D, 0x20, 0x48, ShiftIn)
	data = append(data, []byte("ELLO, WORLD! ")...)
	data = append(data, ShiftOut, 0x7D, 0x0D, 0x0A, 0xAD)
	for i := 0; i < 15; i++ {
		data = append(data, 0x60)
	}
	return append(data, 0xBD, 0x0D, 0x0A)
}

const bannerText = "\r\n┌───────────────┐\r\n│ Hello, world! │\r\n└───────────────┘\r\n"

func TestRoundTrip_UppercaseAlphabet(t *testing.T) {
	m := defaultTables(t)
	text := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	s, err := Encode(text, m, 32)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := make([]byte, 26)
	for i := range want {
		want[i] = 0x41 + byte(i)
	}
	if !bytes.Equal(s.Bytes(), want) {
		t.Errorf("expected % 02X, got % 02X", want, s.Bytes())
	}

	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != text {
		t.Errorf("round trip produced %q, want %q", got, text)
	}
}

func TestRoundTrip_LowercaseAlphabet(t *testing.T) {
	m := defaultTables(t)
	text := "abcdefghijklmnopqrstuvwxyz"

	s, err := Encode(text, m, 32)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := []byte{ShiftIn}
	for i := 0; i < 26; i++ {
		want = append(want, 0x41+byte(i))
	}
	want = append(want, ShiftOut)
	if !bytes.Equal(s.Bytes(), want) {
		t.Errorf("expected % 02X, got % 02X", want, s.Bytes())
	}

	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != text {
		t.Errorf("round trip produced %q, want %q", got, text)
	}
}

func TestRoundTrip_MixedText(t *testing.T) {
	m := defaultTables(t)

	for _, text := range []string{
		"Hello, World!",
		"10 PRINT \"COMMODORE\"",
		"run/stop restore",
		"A1a2B3b4",
	} {
		s, err := Encode(text, m, 64)
		if err != nil {
			t.Fatalf("Encode %q failed: %v", text, err)
		}
		got, err := Decode(s, m)
		if err != nil {
			t.Fatalf("Decode %q failed: %v", text, err)
		}
		if got != text {
			t.Errorf("round trip produced %q, want %q", got, text)
		}
	}
}

func TestRoundTrip_BoxDrawing(t *testing.T) {
	m := defaultTables(t)
	text := "┌─┬─┐│├┼┤└┴┘╱╲"

	s, err := Encode(text, m, 32)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != text {
		t.Errorf("round trip produced %q, want %q", got, text)
	}
}

func TestRoundTrip_ClassicSymbols(t *testing.T) {
	m := defaultTables(t)
	text := "@[£]↑← π"

	s, err := Encode(text, m, 32)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != text {
		t.Errorf("round trip produced %q, want %q", got, text)
	}
}

func TestDecode_AliasRanges(t *testing.T) {
	m := defaultTables(t)
	d := NewDecoder(m)

	decodeOne := func(b byte) string {
		t.Helper()
		s, err := New(1, []byte{b})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		got, err := d.Decode(s)
		if err != nil {
			t.Fatalf("Decode %#02x failed: %v", b, err)
		}
		return got
	}

	for b := 192; b <= 223; b++ {
		if got, want := decodeOne(byte(b)), decodeOne(byte(b-96)); got != want {
			t.Errorf("byte %#02x decoded to %q, alias %#02x to %q", b, got, b-96, want)
		}
	}
	for b := 224; b <= 254; b++ {
		if got, want := decodeOne(byte(b)), decodeOne(byte(b-64)); got != want {
			t.Errorf("byte %#02x decoded to %q, alias %#02x to %q", b, got, b-64, want)
		}
	}
	if got, want := decodeOne(255), decodeOne(126); got != want {
		t.Errorf("byte 0xFF decoded to %q, alias 0x7E to %q", got, want)
	}
	if got := decodeOne(255); got != "π" {
		t.Errorf("byte 0xFF decoded to %q, want %q", got, "π")
	}
}

func TestDecode_ReversedSuits(t *testing.T) {
	m := defaultTables(t)

	s, err := New(6, []byte{ReverseOn, 0x61, 0x73, 0x78, 0x7A, ReverseOff})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "♤♡♧♢" {
		t.Errorf("expected outline suits, got %q", got)
	}
}

func TestDecode_Banner(t *testing.T) {
	m := defaultTables(t)

	data := bannerBytes()
	s, err := New(len(data), data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != bannerText {
		t.Errorf("banner decoded to %q, want %q", got, bannerText)
	}
}

func TestDecode_DirectoryEntry(t *testing.T) {
	m := defaultTables(t)

	// A fixed-width filename padded with shifted spaces, the way the
	// disk directory stores it.
	name := append([]byte("HELLO WORLD"), Pad, Pad, Pad, Pad, Pad)
	s, err := NewStripPadding(16, name)
	if err != nil {
		t.Fatalf("NewStripPadding failed: %v", err)
	}
	got, err := Decode(s, m)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "HELLO WORLD" {
		t.Errorf("expected %q, got %q", "HELLO WORLD", got)
	}
}
