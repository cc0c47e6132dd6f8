package config

import (
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/coreos/go-semver/semver"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/forbidden-bands/petscii/charmap"
	"github.com/forbidden-bands/petscii/errors"
)

// SchemaMajor is the table-document major version this package accepts.
// Documents carrying any other major version are rejected before their
// tables are converted.
const SchemaMajor = 0

//go:embed charmap.json
var embeddedDocument []byte

// document mirrors the on-disk table-document shape.
type document struct {
	Version string      `json:"version" yaml:"version"`
	Charmap documentMap `json:"charmap" yaml:"charmap"`
}

// documentMap holds the raw mapping tables, keyed by decimal strings.
// The screen-code tables nest one level deeper, keyed by screen-set
// number, so a document may carry sets beyond the three the default
// map ships with.
type documentMap struct {
	PetsciiUnshiftedToScreen map[string][2]uint16            `json:"petscii_unshifted_to_screen" yaml:"petscii_unshifted_to_screen"`
	PetsciiShiftedToScreen   map[string][2]uint16            `json:"petscii_shifted_to_screen" yaml:"petscii_shifted_to_screen"`
	ScreenToUnicode          map[string]map[string]uint32    `json:"screen_to_unicode" yaml:"screen_to_unicode"`
	UnicodeToScreen          map[string][2]uint16            `json:"unicode_to_screen" yaml:"unicode_to_screen"`
	ScreenToPetscii          map[string]map[string][2]uint16 `json:"screen_to_petscii" yaml:"screen_to_petscii"`
}

// Load parses a JSON table document from r and converts it into a
// character map.
func Load(r io.Reader) (*charmap.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "reading table document")
	}
	return parseJSON(data)
}

// LoadYAML parses a YAML table document from r and converts it into a
// character map.
func LoadYAML(r io.Reader) (*charmap.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "reading table document")
	}
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parsing YAML table document")
	}
	return finish(&d)
}

// LoadFile loads a table document from path. The extension selects the
// format: .json, .yaml or .yml, and .zst for zstd-compressed JSON.
func LoadFile(path string) (*charmap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.PhaseConfig, errors.KindNotFound).
			Path(path).
			Cause(err).
			Detail("opening table document").
			Build()
	}
	defer f.Close()

	var m *charmap.Map
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		m, err = Load(f)
	case ".yaml", ".yml":
		m, err = LoadYAML(f)
	case ".zst":
		m, err = loadZstd(f)
	default:
		return nil, errors.Unsupported(errors.PhaseConfig, "table document format "+strconv.Quote(ext))
	}
	if err != nil {
		return nil, err
	}

	Logger().Debug("loaded character map",
		zap.String("path", path),
		zap.String("version", m.Version))
	return m, nil
}

func loadZstd(r io.Reader) (*charmap.Map, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "opening zstd stream")
	}
	defer zr.Close()
	return Load(zr)
}

func parseJSON(data []byte) (*charmap.Map, error) {
	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parsing JSON table document")
	}
	return finish(&d)
}

func finish(d *document) (*charmap.Map, error) {
	m, err := d.toMap()
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *document) toMap() (*charmap.Map, error) {
	ver, err := semver.NewVersion(d.Version)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err,
			"table document version "+strconv.Quote(d.Version)+" is not semantic")
	}
	if ver.Major != SchemaMajor {
		return nil, errors.VersionMismatch(d.Version, SchemaMajor)
	}

	m := charmap.New(d.Version)

	if err := fillScreenRefs(m.UnshiftedToScreen, d.Charmap.PetsciiUnshiftedToScreen, charmap.TableUnshiftedToScreen); err != nil {
		return nil, err
	}
	if err := fillScreenRefs(m.ShiftedToScreen, d.Charmap.PetsciiShiftedToScreen, charmap.TableShiftedToScreen); err != nil {
		return nil, err
	}

	for key, entries := range d.Charmap.ScreenToUnicode {
		set, err := parseSet(charmap.TableScreenToUnicode, key)
		if err != nil {
			return nil, err
		}
		runes := make(map[byte]rune, len(entries))
		for k, v := range entries {
			code, err := parseByte(charmap.TableScreenToUnicode, k)
			if err != nil {
				return nil, err
			}
			if v > unicode.MaxRune {
				return nil, errors.New(errors.PhaseConfig, errors.KindInvalidData).
					Table(charmap.TableScreenToUnicode).
					Value(k).
					Detail("scalar %d is not a Unicode code point", v).
					Build()
			}
			runes[code] = rune(v)
		}
		m.ScreenToUnicode[set] = runes
	}

	for k, v := range d.Charmap.UnicodeToScreen {
		r, err := parseScalar(charmap.TableUnicodeToScreen, k)
		if err != nil {
			return nil, err
		}
		ref, err := screenRef(charmap.TableUnicodeToScreen, k, v)
		if err != nil {
			return nil, err
		}
		m.UnicodeToScreen[r] = ref
	}

	for key, entries := range d.Charmap.ScreenToPetscii {
		set, err := parseSet(charmap.TableScreenToPetscii, key)
		if err != nil {
			return nil, err
		}
		refs := make(map[byte]charmap.PetsciiRef, len(entries))
		for k, v := range entries {
			code, err := parseByte(charmap.TableScreenToPetscii, k)
			if err != nil {
				return nil, err
			}
			if v[0] > 0xFF || v[1] > 0xFF {
				return nil, errors.New(errors.PhaseConfig, errors.KindInvalidData).
					Table(charmap.TableScreenToPetscii).
					Value(k).
					Detail("pair [%d, %d] exceeds the byte range", v[0], v[1]).
					Build()
			}
			refs[code] = charmap.PetsciiRef{Attr: charmap.Attr(v[0]), Code: byte(v[1])}
		}
		m.ScreenToPetscii[set] = refs
	}

	return m, nil
}

func fillScreenRefs(dst map[byte]charmap.ScreenRef, src map[string][2]uint16, table string) error {
	for k, v := range src {
		code, err := parseByte(table, k)
		if err != nil {
			return err
		}
		ref, err := screenRef(table, k, v)
		if err != nil {
			return err
		}
		dst[code] = ref
	}
	return nil
}

func screenRef(table, key string, v [2]uint16) (charmap.ScreenRef, error) {
	if v[0] > 0xFF || v[1] > 0xFF {
		return charmap.ScreenRef{}, errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Table(table).
			Value(key).
			Detail("pair [%d, %d] exceeds the byte range", v[0], v[1]).
			Build()
	}
	return charmap.ScreenRef{Set: charmap.Set(v[0]), Code: byte(v[1])}, nil
}

func parseByte(table, key string) (byte, error) {
	n, err := strconv.ParseUint(key, 10, 8)
	if err != nil {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Table(table).
			Value(key).
			Cause(err).
			Detail("key is not an 8-bit decimal").
			Build()
	}
	return byte(n), nil
}

func parseSet(table, key string) (charmap.Set, error) {
	n, err := parseByte(table, key)
	if err != nil {
		return 0, err
	}
	return charmap.Set(n), nil
}

func parseScalar(table, key string) (rune, error) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n > uint64(unicode.MaxRune) {
		return 0, errors.New(errors.PhaseConfig, errors.KindInvalidData).
			Table(table).
			Value(key).
			Cause(err).
			Detail("key is not a Unicode scalar value").
			Build()
	}
	return rune(n), nil
}

var (
	shared       atomic.Pointer[charmap.Map]
	loadEmbedded = sync.OnceValues(func() (*charmap.Map, error) {
		return parseJSON(embeddedDocument)
	})
)

// Default returns the process-wide character map. If no map has been
// installed yet, the embedded table document is parsed once and
// installed. Concurrent callers all observe the same map.
func Default() (*charmap.Map, error) {
	if m := shared.Load(); m != nil {
		return m, nil
	}
	m, err := loadEmbedded()
	if err != nil {
		return nil, err
	}
	if shared.CompareAndSwap(nil, m) {
		Logger().Debug("installed embedded character map", zap.String("version", m.Version))
	}
	return shared.Load(), nil
}

// Install makes m the process-wide character map. The first writer
// wins: once a map is stored, by Install or by Default falling back to
// the embedded document, later calls leave it untouched. It reports
// whether m was stored.
func Install(m *charmap.Map) bool {
	if m == nil {
		return false
	}
	if !shared.CompareAndSwap(nil, m) {
		return false
	}
	Logger().Debug("installed character map", zap.String("version", m.Version))
	return true
}
