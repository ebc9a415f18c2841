// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateSettings` immediately after
// it unmarshals the merged Koanf tree into a `Settings` instance.  Any
// rule failure aborts resolution, ensuring no caller ever sees a partial
// or malformed tree.  Nil pointer sections are skipped by the validator,
// which is exactly the optional-section semantics we want: a section's
// `required` fields only apply once the section was triggered.
//
// Rule failures are translated into *Error values naming the section and
// field in config-file spelling (koanf tags), not Go field names, so the
// message points operators at the line they actually have to fix.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = func() *validator.Validate {
	val := validator.New()
	// Report koanf tag names so errors speak config-file language.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("koanf"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}()

//
// public API
//

// validateSettings returns the first rule failure as a *Error, or nil.
func validateSettings(s *Settings) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &Error{Reason: "validation failure", Err: err}
	}

	// Namespace looks like "Settings.database.url"; everything after the
	// root type is the dotted config key.
	fe := verrs[0]
	path := strings.SplitN(fe.Namespace(), ".", 2)
	section, field := "", ""
	if len(path) == 2 {
		if i := strings.LastIndex(path[1], "."); i >= 0 {
			section, field = path[1][:i], path[1][i+1:]
		} else {
			field = path[1]
		}
	}

	reason := "required value missing"
	if fe.Tag() != "required" {
		reason = "invalid value: failed rule " + fe.Tag()
	}
	return &Error{Section: section, Field: field, Reason: reason, Err: err}
}
