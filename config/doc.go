// Package config loads character-map table documents and owns the
// process-wide default map.
//
// # Document Format
//
// A table document is a versioned JSON object. Keys are decimal
// strings because JSON object keys are always strings; the screen-code
// tables nest by screen-set number:
//
//	{
//	  "version": "0.2.0",
//	  "charmap": {
//	    "petscii_unshifted_to_screen": {"65": [1, 1]},
//	    "petscii_shifted_to_screen":   {"65": [2, 1]},
//	    "screen_to_unicode":  {"1": {"1": 65}, "2": {"1": 97}},
//	    "unicode_to_screen":  {"65": [1, 1], "97": [2, 1]},
//	    "screen_to_petscii":  {"1": {"1": [0, 65]}, "2": {"1": [1, 65]}}
//	  }
//	}
//
// The same structure is accepted as YAML, and as zstd-compressed JSON
// for embedding in tight places. LoadFile dispatches on the file
// extension. Every loaded document passes the structural checks in
// charmap.Map.Validate before it is handed out, and its version must
// carry the major number SchemaMajor.
//
// # Default Map
//
// A copy of the full Commodore table document is embedded in the
// package. Default returns the process-wide map, parsing the embedded
// document on first use; Install replaces it with a custom map if it
// gets there first. The slot is written at most once per process, so
// decoders and encoders may share the returned map freely across
// goroutines.
package config
