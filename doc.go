// Package petscii converts between PETSCII, the 8-bit character
// encoding of the Commodore home computers, and Unicode text.
//
// Conversion is table-driven: an externally supplied character map
// (see the charmap package) describes how legacy codes, screen codes
// and Unicode scalars relate, while this package supplies the stateful
// machinery around it: fixed-capacity buffers, shift and reverse-video
// control handling, and the alias normalization of the legacy code
// space.
//
// # Code Spaces
//
// Three code spaces participate in every conversion:
//
//	Legacy code   8-bit PETSCII value as stored on disk or tape
//	Screen code   7-bit display code, partitioned into numbered sets
//	Unicode       the scalar finally exchanged with the caller
//
// Screen sets 1 (uppercase/graphics) and 2 (lowercase/uppercase) match
// the two character generators of the original hardware; set 3 is
// virtual and routes control characters such as CR and LF through the
// same lookup machinery.
//
// # Architecture Overview
//
//	petscii/             Root package: String buffer, Decoder, Encoder
//	├── charmap/         Nine-table character map and its invariants
//	├── config/          Character map loading (embedded, JSON, YAML, zstd)
//	├── errors/          Structured error types
//	├── internal/state/  Shift/reverse-video state machine
//	└── cmd/petscii/     Command line converter and interactive explorer
//
// # Decoding Flow
//
// Bytes are processed in order, carrying shift and video state:
//
//  1. Pad sentinel bytes (0xA0) are dropped when the buffer was built
//     with padding stripping enabled.
//  2. Control bytes (0x0E, 0x8E, 0x12, 0x92) switch state and emit
//     nothing.
//  3. Alias ranges collapse: 192–223 → 96–127, 224–254 → 160–190,
//     255 → 126.
//  4. The shift state selects a petscii-to-screen table; a miss falls
//     back to the identity scalar of the original byte.
//  5. Reversed video adds 128 to the screen code, and the screen set
//     routes the lookup to its screen-to-unicode table; a miss falls
//     back to the identity scalar of the normalized code.
//
// Decoding with a nil character map is the pure identity: every byte
// 0–255 maps to the Unicode scalar of the same value.
//
// # Encoding Flow
//
// Characters are processed in order, starting unshifted:
//
//  1. unicode-to-screen resolves the scalar; unmappable characters are
//     dropped silently.
//  2. The screen set routes to its screen-to-petscii table for the
//     legacy code and its required shift attribute.
//  3. Shift transitions emit 0x0E/0x8E as needed, and text that ends
//     shifted gets a trailing 0x8E, so concatenating encoded strings
//     never leaks shift state.
//
// # Buffers
//
// String is a fixed-capacity byte buffer: capacity is set at
// construction and construction fails with a typed oversize error when
// the source does not fit. The unused tail stays zero-filled and is
// never part of the logical contents.
//
// # Thread Safety
//
// A character map is immutable once built and safe to share. Decoder
// and Encoder hold only that reference and are safe for concurrent
// use; conversion state lives on the stack of each call.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[buffer] oversize: 4 bytes exceed capacity 3
//	[decode] corrupt_table: table petscii_unshifted_to_screen - legacy code 66 maps to screen code 200, above the 7-bit range
//
// Unmapped codes are never errors: decoding falls back to identity
// scalars and encoding elides the character, matching the conventions
// of the historical data this package exists to read.
package petscii
