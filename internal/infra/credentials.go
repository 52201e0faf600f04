package infra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/recognizer/internal/config"
)

type CredentialSource string

const (
	CredentialsLocal   CredentialSource = "local"
	CredentialsInline  CredentialSource = "inline"
	CredentialsEnv     CredentialSource = "env"
	CredentialsDefault CredentialSource = "default"
)

type Credentials struct {
	Source CredentialSource
	// empty for CredentialsDefault: the client falls back to ADC
	Path string

	// GOOGLE_CREDENTIALS payload, only set for CredentialsInline
	inline string
}

// ResolveCredentials picks the credential file the speech client should use:
// local file, then inline payload, then GOOGLE_APPLICATION_CREDENTIALS, then
// application default credentials. It never writes to disk; an inline payload
// only reaches Path after Materialize.
func ResolveCredentials(cfg config.Config) (Credentials, error) {
	if cfg.LocalCredentialsFile != "" {
		info, err := os.Stat(cfg.LocalCredentialsFile)
		if err == nil && !info.IsDir() {
			return Credentials{Source: CredentialsLocal, Path: cfg.LocalCredentialsFile}, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Credentials{}, fmt.Errorf("stat %s: %w", cfg.LocalCredentialsFile, err)
		}
	}

	if cfg.InlineCredentials != "" {
		path := cfg.InlineCredentialsPath
		if path == "" {
			path = filepath.Join(os.TempDir(), "credentials.json")
		}
		return Credentials{Source: CredentialsInline, Path: path, inline: cfg.InlineCredentials}, nil
	}

	if cfg.CredentialsFile != "" {
		return Credentials{Source: CredentialsEnv, Path: cfg.CredentialsFile}, nil
	}

	return Credentials{Source: CredentialsDefault}, nil
}

// Materialize writes an inline payload to Path. Other sources already point at
// a file (or at nothing) and are left alone.
func (c Credentials) Materialize() error {
	if c.Source != CredentialsInline {
		return nil
	}
	if err := os.WriteFile(c.Path, []byte(c.inline), 0o600); err != nil {
		return fmt.Errorf("write inline credentials: %w", err)
	}
	return nil
}
