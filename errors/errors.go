package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuffer Phase = "buffer" // buffer construction
	PhaseDecode Phase = "decode" // bytes to Unicode
	PhaseEncode Phase = "encode" // Unicode to bytes
	PhaseConfig Phase = "config" // character map loading
)

// Kind categorizes the error
type Kind string

const (
	KindOversize        Kind = "oversize"
	KindCorruptTable    Kind = "corrupt_table"
	KindInvalidData     Kind = "invalid_data"
	KindInvalidInput    Kind = "invalid_input"
	KindNotFound        Kind = "not_found"
	KindUnsupported     Kind = "unsupported"
	KindVersionMismatch Kind = "version_mismatch"
)

// Sentinels for errors.Is checks that care about the kind but not the
// phase. Matching treats empty target fields as wildcards.
var (
	ErrOversize     = &Error{Kind: KindOversize}
	ErrCorruptTable = &Error{Kind: KindCorruptTable}
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Table  string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Table != "" {
		b.WriteString(": table ")
		b.WriteString(e.Table)
	}

	if e.Detail != "" {
		if e.Table != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase or Kind
// on the target matches any value, so the package sentinels can be
// compared against errors raised in any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && e.Phase != t.Phase {
		return false
	}
	if t.Kind != "" && e.Kind != t.Kind {
		return false
	}
	return true
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Table sets the name of the mapping table involved
func (b *Builder) Table(t string) *Builder {
	b.err.Table = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Oversize creates an oversize-input error
func Oversize(phase Phase, have, capacity int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOversize,
		Detail: fmt.Sprintf("%d bytes exceed capacity %d", have, capacity),
		Value:  have,
	}
}

// CorruptTable creates a malformed-table error. The decoder raises it
// instead of guessing when table contents violate an invariant.
func CorruptTable(table string, value any, detail string) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindCorruptTable,
		Table:  table,
		Detail: detail,
		Value:  value,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// VersionMismatch creates a schema version compatibility error
func VersionMismatch(got string, wantMajor int64) *Error {
	return &Error{
		Phase:  PhaseConfig,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("document version %q is not compatible with schema major %d", got, wantMajor),
		Value:  got,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
