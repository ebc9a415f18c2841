// internal/config/loader_test.go
//
// Unit-tests for Load: defaults, section triggering, precedence, and the
// failure taxonomy.
//
// Run: go test ./internal/config -v

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// configBase satisfies the two mandatory sections.
const configBase = `[database]
url = "sqlite3://./packrat.sqlite"

[session]
secret = "abcdef0123456789"
`

// writeConfig writes body to a temp file and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadMinimalFile(t *testing.T) {
	s, err := Load(writeConfig(t, configBase))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.Database.URL != "sqlite3://./packrat.sqlite" {
		t.Errorf("database.url = %q", s.Database.URL)
	}
	if !s.Session.HTTPSOnly {
		t.Errorf("session.https_only default lost")
	}

	// No optional section may be triggered by a minimal file.
	for _, sec := range []string{
		"general", "cors", "github", "gitlab", "azuread", "google",
		"local_store", "s3", "azure_blob", "gcs", "logging", "users",
		"worker", "plugins", "mirroring", "quotas", "profiling",
	} {
		if s.Configured(sec) {
			t.Errorf("section %q unexpectedly configured", sec)
		}
	}

	// Defaulted value sections still carry their defaults.
	if s.LocalStore.RedirectEndpoint != "/files" || s.LocalStore.RedirectExpiration != 3600 {
		t.Errorf("local_store defaults = %+v", s.LocalStore)
	}
	if s.Mirroring.BatchLength != 10 || s.Mirroring.NumParallelDownloads != 10 {
		t.Errorf("mirroring defaults = %+v", s.Mirroring)
	}
	if s.General.PackageUnpackThreads != 1 {
		t.Errorf("general defaults = %+v", s.General)
	}
}

func TestLoadNoFileFailsOnMandatory(t *testing.T) {
	_, err := Load("")
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("Load(\"\") err = %v, want *Error", err)
	}
	if cerr.Section != "database" || cerr.Field != "url" {
		t.Fatalf("error names %q.%q, want database.url", cerr.Section, cerr.Field)
	}
}

func TestLoadNoFileWithEnvMandatory(t *testing.T) {
	t.Setenv("PACKRAT_DATABASE_URL", "sqlite3://./env.sqlite")
	t.Setenv("PACKRAT_SESSION_SECRET", "s3cret")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Database.URL != "sqlite3://./env.sqlite" {
		t.Errorf("database.url = %q", s.Database.URL)
	}
	if !s.Configured("database") || !s.Configured("session") {
		t.Errorf("env-supplied sections not marked configured")
	}
}

func TestLoadFieldPrecedence(t *testing.T) {
	body := configBase + `
[local_store]
redirect_endpoint = "/from-file"
`
	path := writeConfig(t, body)

	// File beats default.
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.LocalStore.RedirectEndpoint; got != "/from-file" {
		t.Fatalf("file value lost: %q", got)
	}

	// Env beats file.
	t.Setenv("PACKRAT_LOCAL_STORE_REDIRECT_ENDPOINT", "/from-env")
	s, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.LocalStore.RedirectEndpoint; got != "/from-env" {
		t.Fatalf("env override lost: %q", got)
	}
}

func TestLoadEnvTriggersSection(t *testing.T) {
	t.Setenv("PACKRAT_S3_ACCESS_KEY", "AKIA")
	s, err := Load(writeConfig(t, configBase))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.S3 == nil || s.S3.AccessKey != "AKIA" {
		t.Fatalf("s3 section not triggered by env: %+v", s.S3)
	}
	if !s.Configured("s3") {
		t.Errorf("Configured(s3) = false")
	}
}

func TestLoadTriggeredSectionDefaults(t *testing.T) {
	body := configBase + `
[gitlab]
client_id = "id"
client_secret = "sec"

[worker]
type = "redis"
`
	s, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.GitLab.URL != "https://gitlab.com" {
		t.Errorf("gitlab.url default = %q", s.GitLab.URL)
	}
	if s.Worker.RedisIP != "127.0.0.1" || s.Worker.RedisPort != 6379 {
		t.Errorf("worker redis defaults = %+v", s.Worker)
	}
}

func TestLoadParseFailure(t *testing.T) {
	path := writeConfig(t, "[database\nurl = ")
	_, err := Load(path)
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if cerr.Path != path {
		t.Errorf("error path = %q, want %q", cerr.Path, path)
	}
	if cerr.Err == nil {
		t.Errorf("parse diagnostic not carried")
	}
}

func TestLoadTriggeredSectionValidation(t *testing.T) {
	tests := []struct {
		name    string
		extra   string
		section string
		field   string
	}{
		{"github missing secret", "[github]\nclient_id = \"id\"\n", "github", "client_secret"},
		{"azuread missing tenant", "[azuread]\nclient_id = \"id\"\nclient_secret = \"s\"\n", "azuread", "tenant_id"},
		{"quotas missing quota", "[quotas]\n", "quotas", "channel_quota"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, configBase+tt.extra))
			var cerr *Error
			if !errors.As(err, &cerr) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if cerr.Section != tt.section || cerr.Field != tt.field {
				t.Fatalf("error names %q.%q, want %s.%s",
					cerr.Section, cerr.Field, tt.section, tt.field)
			}
		})
	}
}

func TestLoadEmptyUsersSection(t *testing.T) {
	s, err := Load(writeConfig(t, configBase+"[users]\nadmins = []\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Configured("users") {
		t.Fatalf("users section not configured")
	}
	if s.Users == nil {
		t.Fatalf("users pointer not allocated")
	}
	if len(s.Users.Admins) != 0 || len(s.Users.Maintainers) != 0 || s.Users.DefaultRole != "" {
		t.Errorf("users = %+v, want all empty", s.Users)
	}
}

func TestLoadWrongType(t *testing.T) {
	_, err := Load(writeConfig(t, configBase+"[local_store]\nredirect_expiration = \"soon\"\n"))
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if cerr.Section != "local_store" || cerr.Field != "redirect_expiration" {
		t.Fatalf("error names %q.%q, want local_store.redirect_expiration",
			cerr.Section, cerr.Field)
	}
	if cerr.Err == nil {
		t.Errorf("decoder diagnostic not carried")
	}
}

func TestLoadExplicitZeroQuota(t *testing.T) {
	s, err := Load(writeConfig(t, configBase+"[quotas]\nchannel_quota = 0\n"))
	if err != nil {
		t.Fatalf("explicit zero quota rejected: %v", err)
	}
	if s.Quotas == nil || s.Quotas.ChannelQuota != 0 {
		t.Fatalf("quotas = %+v, want zero quota", s.Quotas)
	}
	if !s.Configured("quotas") {
		t.Errorf("Configured(quotas) = false")
	}
}

func TestLoadMixedCaseLogLevel(t *testing.T) {
	s, err := Load(writeConfig(t, configBase+"[logging]\nlevel = \"Debug\"\n"))
	if err != nil {
		t.Fatalf("mixed-case level rejected: %v", err)
	}
	if s.Logging.Level != "DEBUG" {
		t.Fatalf("logging.level = %q, want DEBUG", s.Logging.Level)
	}
}
