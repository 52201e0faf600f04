package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"PORT", "INDEX_FILE", "MAX_UPLOAD_MEMORY", "LOCAL_CREDENTIALS_FILE",
		"GOOGLE_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS", "INLINE_CREDENTIALS_PATH",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(t.TempDir())

	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("expected port 5000, got %q", cfg.Port)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("expected 0.0.0.0:5000, got %q", cfg.Addr())
	}
	if cfg.IndexFile != filepath.Join("web", "index.html") {
		t.Errorf("unexpected index file %q", cfg.IndexFile)
	}
	if cfg.LocalCredentialsFile != "credentials.json" {
		t.Errorf("unexpected local credentials file %q", cfg.LocalCredentialsFile)
	}
	if cfg.InlineCredentialsPath != filepath.Join(os.TempDir(), "credentials.json") {
		t.Errorf("unexpected inline credentials path %q", cfg.InlineCredentialsPath)
	}
	if cfg.MaxUploadMemory != 32<<20 {
		t.Errorf("unexpected max upload memory %d", cfg.MaxUploadMemory)
	}
	if cfg.InlineCredentials != "" || cfg.CredentialsFile != "" {
		t.Errorf("expected no credentials, got %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("GOOGLE_CREDENTIALS", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/gcp/key.json")

	cfg := Load()

	if cfg.Addr() != "0.0.0.0:8081" {
		t.Errorf("expected 0.0.0.0:8081, got %q", cfg.Addr())
	}
	if cfg.InlineCredentials != `{"type":"service_account"}` {
		t.Errorf("unexpected inline credentials %q", cfg.InlineCredentials)
	}
	if cfg.CredentialsFile != "/etc/gcp/key.json" {
		t.Errorf("unexpected credentials file %q", cfg.CredentialsFile)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=9090\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("expected port from .env, got %q", cfg.Port)
	}
}
