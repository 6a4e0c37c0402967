// Package commands implements the stylecheck subcommands.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tsawler/stylecheck/rules"
)

// ExitError carries a process exit code out of a command. Err, when set,
// is printed without the usual "Error:" prefix.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// flagOr returns the flag's value when it was set on the command line and
// fallback otherwise.
func flagOr(cmd *cobra.Command, name, fallback string) string {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return f.Value.String()
	}
	return fallback
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseFailOn converts a --fail-on value. The empty severity means never.
func parseFailOn(s string) (rules.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return "", nil
	}
	sev, ok := rules.ParseSeverity(s)
	if !ok {
		return "", fmt.Errorf("unknown severity %q (want critical, high, medium, low or none)", s)
	}
	return sev, nil
}
