// Command checkcreds reports which Google credential file the server would
// use and whether it exists.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Vovarama1992/recognizer/internal/config"
	"github.com/Vovarama1992/recognizer/internal/infra"
)

func main() {
	if err := run(os.Stdout, config.Load()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errNoCredentials = errors.New("no usable credential file")

func run(out io.Writer, cfg config.Config) error {
	if cfg.CredentialsFile == "" {
		fmt.Fprintln(out, "GOOGLE_APPLICATION_CREDENTIALS is not set")
	} else {
		fmt.Fprintf(out, "GOOGLE_APPLICATION_CREDENTIALS is set to: %s\n", cfg.CredentialsFile)
		if fileExists(cfg.CredentialsFile) {
			fmt.Fprintln(out, "file found")
		} else {
			fmt.Fprintln(out, "file does not exist at that path")
		}
	}

	creds, err := infra.ResolveCredentials(cfg)
	if err != nil {
		return err
	}
	if creds.Source == infra.CredentialsDefault {
		fmt.Fprintln(out, "server would fall back to application default credentials")
		return errNoCredentials
	}

	if creds.Source == infra.CredentialsInline {
		fmt.Fprintf(out, "server would write GOOGLE_CREDENTIALS to: %s\n", creds.Path)
		return nil
	}

	fmt.Fprintf(out, "server would use %s credentials: %s\n", creds.Source, creds.Path)
	if !fileExists(creds.Path) {
		return fmt.Errorf("%w: %s", errNoCredentials, creds.Path)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
