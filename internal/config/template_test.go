// internal/config/template_test.go

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTemplateFreshSecretPerCall(t *testing.T) {
	a := Template("id", "sec", "", true)
	b := Template("id", "sec", "", true)
	if a == b {
		t.Fatalf("two templates share a session secret")
	}
	if !strings.Contains(a, "sqlite3://./packrat.sqlite") {
		t.Errorf("database fallback missing:\n%s", a)
	}
}

func TestTemplateParsesBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, "id", "sec", "", true); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("generated template does not load: %v", err)
	}
	if s.Session.Secret == "" {
		t.Fatalf("generated secret empty")
	}
	if s.GitHub == nil || s.GitHub.ClientID != "id" {
		t.Fatalf("github section = %+v", s.GitHub)
	}
}

// A template written without credentials must still load: an empty
// [github] block would trigger that section and fail its required fields.
func TestTemplateWithoutCredentialsLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := WriteTemplate(path, "", "", "", true); err != nil {
		t.Fatalf("WriteTemplate: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("credential-less template does not load: %v", err)
	}
	if s.GitHub != nil {
		t.Fatalf("github section triggered by empty credentials: %+v", s.GitHub)
	}
	if s.Configured("github") {
		t.Fatalf("github reported configured")
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("keep"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteTemplate(path, "", "", "", true); err == nil {
		t.Fatalf("WriteTemplate overwrote an existing file")
	}
	body, _ := os.ReadFile(path)
	if string(body) != "keep" {
		t.Fatalf("existing file clobbered")
	}
}
