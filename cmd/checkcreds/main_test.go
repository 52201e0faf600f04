package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vovarama1992/recognizer/internal/config"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	key := filepath.Join(dir, "key.json")
	if err := os.WriteFile(key, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr error
		wantOut string
	}{
		{
			name:    "env file exists",
			cfg:     config.Config{LocalCredentialsFile: missing, CredentialsFile: key},
			wantOut: "file found",
		},
		{
			name:    "env file missing",
			cfg:     config.Config{LocalCredentialsFile: missing, CredentialsFile: missing},
			wantErr: errNoCredentials,
			wantOut: "file does not exist",
		},
		{
			name:    "nothing set",
			cfg:     config.Config{LocalCredentialsFile: missing},
			wantErr: errNoCredentials,
			wantOut: "is not set",
		},
		{
			name:    "local file",
			cfg:     config.Config{LocalCredentialsFile: key},
			wantOut: "server would use local credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(&out, tt.cfg)

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !strings.Contains(out.String(), tt.wantOut) {
				t.Errorf("expected %q in output:\n%s", tt.wantOut, out.String())
			}
		})
	}
}

func TestRun_InlineCredentialsAreNotWritten(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "inline.json")

	var out bytes.Buffer
	err := run(&out, config.Config{
		LocalCredentialsFile:  filepath.Join(dir, "absent.json"),
		InlineCredentials:     `{"private_key":"SECRET"}`,
		InlineCredentialsPath: target,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "would write GOOGLE_CREDENTIALS to: "+target) {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if strings.Contains(out.String(), "SECRET") {
		t.Errorf("payload printed:\n%s", out.String())
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Errorf("expected no file at %s, stat err: %v", target, err)
	}
}
