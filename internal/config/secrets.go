// internal/config/secrets.go
//
// Secret-reference resolution hook.
//
// Context
// -------
// Any string field whose value begins with the `vault:` prefix is a
// reference, not a secret.  The loader resolves references through the
// registered SecretResolver *before* validation, so the settings tree
// never stores reference URIs—only plain strings—and required-field rules
// run against the real values.  Deployments that keep secrets in the file
// never hit this path; the walk is a no-op when no value carries the
// prefix.
//
// internal/secrets provides the Vault-backed resolver; registering it is
// main's job, which keeps this package free of any Vault dependency.
//
// Notes
// -----
//   - Oxford commas, two spaces after periods.

package config

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// SecretScheme prefixes a string value that should be resolved rather
// than used verbatim.
const SecretScheme = "vault:"

// SecretResolver exchanges a reference (including its scheme prefix) for
// the secret value it names.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

var secretResolver SecretResolver

// SetSecretResolver installs the process-wide resolver.  Call once during
// boot, before the first resolution.
func SetSecretResolver(r SecretResolver) { secretResolver = r }

// resolveSecrets walks every string field in the tree and replaces
// `vault:` references in place.  A reference with no resolver installed
// is fatal: silently validating a URI as if it were the secret would be
// worse than failing.
func resolveSecrets(ctx context.Context, s *Settings) error {
	return walkStrings(reflect.ValueOf(s).Elem(), func(val string) (string, error) {
		if !strings.HasPrefix(val, SecretScheme) {
			return val, nil
		}
		if secretResolver == nil {
			return "", fmt.Errorf("secret reference %q found but no resolver is installed", val)
		}
		out, err := secretResolver.Resolve(ctx, val)
		if err != nil {
			return "", fmt.Errorf("resolve secret %q: %w", val, err)
		}
		return out, nil
	})
}

// walkStrings applies fn to every addressable string reachable from v
// through structs, pointers, and string slices.
func walkStrings(v reflect.Value, fn func(string) (string, error)) error {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			return walkStrings(v.Elem(), fn)
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanSet() {
				continue
			}
			if err := walkStrings(f, fn); err != nil {
				return err
			}
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			if err := walkStrings(v.Index(i), fn); err != nil {
				return err
			}
		}
	case reflect.String:
		out, err := fn(v.String())
		if err != nil {
			return err
		}
		v.SetString(out)
	}
	return nil
}
