package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forbidden-bands/petscii"
	"github.com/forbidden-bands/petscii/charmap"
)

func cmdDump(tables *charmap.Map, args cliDumpCmd) int {
	data, err := readInput(args.File)
	if err != nil {
		return fail(err)
	}

	cols := args.Columns
	if cols <= 0 {
		cols = 16
	}

	d := petscii.NewDecoder(tables)
	for off := 0; off < len(data); off += cols {
		end := off + cols
		if end > len(data) {
			end = len(data)
		}
		chunk := data[off:end]

		hex := make([]string, len(chunk))
		for i, b := range chunk {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		hexText := strings.Join(hex, " ")
		if width := cols*3 - 1; len(hexText) < width {
			hexText += strings.Repeat(" ", width-len(hexText))
		}

		fmt.Printf("%04X:  %s  %s\n", off, hexText, gutter(d, chunk))
	}
	return 0
}

// gutter renders a chunk for the dump's text column. Bytes are decoded
// one at a time so shift runs in the data cannot leak across rows;
// control bytes and unprintable results come out as dots.
func gutter(d *petscii.Decoder, chunk []byte) string {
	var b strings.Builder
	for _, raw := range chunk {
		s, err := petscii.New(1, []byte{raw})
		if err != nil {
			b.WriteByte('.')
			continue
		}
		text, err := d.Decode(s)
		if err != nil || text == "" {
			b.WriteByte('.')
			continue
		}
		r := []rune(text)[0]
		if r < 0x20 || (r >= 0x7F && r < 0xA0) {
			b.WriteByte('.')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func cmdTable(tables *charmap.Map, args cliTableCmd) int {
	sets := tables.Sets()
	if args.Set != 0 {
		sets = []charmap.Set{charmap.Set(args.Set)}
	}

	for i, set := range sets {
		runes, ok := tables.ScreenToUnicode[set]
		if !ok {
			fmt.Printf("screen set %d: not in the loaded map\n", set)
			continue
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("set %d (%s): %d screen codes\n", set, set, len(runes))

		codes := make([]int, 0, len(runes))
		for code := range runes {
			codes = append(codes, int(code))
		}
		sort.Ints(codes)

		for _, code := range codes {
			r := runes[byte(code)]
			fmt.Printf("  $%02X  U+%04X  %s%s\n", code, r, printable(r), legacyNote(tables, set, byte(code)))
		}
	}
	return 0
}

func printable(r rune) string {
	if r < 0x21 || (r >= 0x7F && r < 0xA1) {
		return " "
	}
	return string(r)
}

func legacyNote(tables *charmap.Map, set charmap.Set, code byte) string {
	pr, ok := tables.Petscii(set, code)
	if !ok {
		if code >= 0x80 {
			return "  (reverse video)"
		}
		return ""
	}
	note := fmt.Sprintf("  petscii $%02X", pr.Code)
	if pr.Attr.Shifted() {
		note += " shifted"
	}
	return note
}
