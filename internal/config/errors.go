// internal/config/errors.go
//
// Structured configuration errors.
//
// Context
// -------
// Resolution can fail two ways: the located file does not parse, or the
// merged tree fails schema validation.  Both surface as *Error so callers
// can `errors.As` their way to the offending path, section, and field.  A
// missing file is never an error—the loader falls back to defaults and
// validation decides from there.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"fmt"
	"strings"
)

// Error is the single error type raised by configuration resolution.
// Path is set for parse failures, Section and Field for validation
// failures; Err carries the underlying diagnostic when one exists.
type Error struct {
	Path    string // source file, when the failure is tied to one
	Section string // offending section key, e.g., "database"
	Field   string // offending field key within the section
	Reason  string // short human explanation
	Err     error  // wrapped parser or validator diagnostic
}

func (e *Error) Error() string {
	switch {
	case e.Section != "" && e.Field != "":
		return fmt.Sprintf("config: section %q field %q: %s", e.Section, e.Field, e.Reason)
	case e.Section != "":
		return fmt.Sprintf("config: section %q: %s", e.Section, e.Reason)
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("config: failed to load %q: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("config: %s", e.Reason)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// parseError wraps a file-level parse or read failure.
func parseError(path string, err error) *Error {
	return &Error{Path: path, Reason: "parse failure", Err: err}
}

// decodeError wraps an unmarshal failure, lifting the offending dotted key
// out of the decoder diagnostic so the error names section and field.  The
// diagnostic quotes the key in single quotes, e.g.
// "cannot parse 'local_store.redirect_expiration' as int".
func decodeError(path string, err error) *Error {
	e := &Error{Path: path, Reason: "type conversion failure", Err: err}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\''); i >= 0 {
		rest := msg[i+1:]
		if j := strings.IndexByte(rest, '\''); j > 0 {
			key := rest[:j]
			if dot := strings.LastIndexByte(key, '.'); dot >= 0 {
				e.Section, e.Field = key[:dot], key[dot+1:]
			} else {
				e.Field = key
			}
		}
	}
	return e
}
