package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Validation failure (manifest mismatch, malformed facts)
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// RegionReport is the printable form of one analysis result.
type RegionReport struct {
	FactsDir string       `json:"facts_dir"`
	RunID    string       `json:"run_id,omitempty"`
	Tuples   []RegionPair `json:"region_live_at"`
}

// RegionPair is one (origin, point) pair with unterned names.
type RegionPair struct {
	Origin string `json:"origin"`
	Point  string `json:"point"`
}

// WriteReport renders a report as text or JSON.
//
// The text form is stable and covered by a golden test: one header
// line with the tuple count, then one indented "origin point" line per
// pair in (origin, point) name order.
func WriteReport(w io.Writer, format string, report RegionReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	default:
		fmt.Fprintf(w, "region_live_at (%d tuples):\n", len(report.Tuples))
		for _, pair := range report.Tuples {
			fmt.Fprintf(w, "  %s\t%s\n", pair.Origin, pair.Point)
		}
	}
	return nil
}
