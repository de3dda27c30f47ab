package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Process exit codes.
const (
	ExitOK    = 0
	ExitFail  = 1 // bad config, failed scenario, rotation error
	ExitUsage = 2 // bad arguments, missing files, unreadable journal
)

// Codes carried in JSON error envelopes.
const (
	ErrCodeConfig   = "E001"
	ErrCodeNotFound = "E002"
	ErrCodeJournal  = "E003"
	ErrCodeScenario = "E004"
	ErrCodeRotation = "E005"
	ErrCodeUsage    = "E006"
)

// ExitError ends a command with a specific exit code. Reported is true once a
// Printer has written the failure to the command output, so main does not
// print it again.
type ExitError struct {
	Code     int
	Message  string
	Err      error
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

func exitErr(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// ExitCode maps a command error to the process exit code. Errors that carry
// no code, such as cobra's flag errors, exit with ExitFail.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFail
}

// Reported reports whether err was already written out by a Printer.
func Reported(err error) bool {
	var ee *ExitError
	return errors.As(err, &ee) && ee.Reported
}

// envelope is the single JSON document a command writes with --format json.
type envelope struct {
	Status string   `json:"status"` // "ok" or "error"
	Data   any      `json:"data,omitempty"`
	Error  *failure `json:"error,omitempty"`
}

type failure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Printer writes the outcome of a morph command, as text or as a JSON
// envelope. Diagnostics go to Diag so that JSON on Out stays parseable.
type Printer struct {
	JSON    bool
	Out     io.Writer
	Diag    io.Writer
	Verbose bool
}

func newPrinter(opts *RootOptions, cmd *cobra.Command) *Printer {
	return &Printer{
		JSON:    opts.Format == "json",
		Out:     cmd.OutOrStdout(),
		Diag:    cmd.ErrOrStderr(),
		Verbose: opts.Verbose,
	}
}

// Result writes data, or text verbatim in text mode.
func (p *Printer) Result(data any, text string) error {
	if !p.JSON {
		_, err := io.WriteString(p.Out, text)
		return err
	}
	return json.NewEncoder(p.Out).Encode(envelope{Status: "ok", Data: data})
}

// Fail writes the failure and returns it as a reported *ExitError. The cause
// is included in JSON, and in text only when verbose.
func (p *Printer) Fail(exit int, code, message string, cause error) error {
	f := failure{Code: code, Message: message}
	if cause != nil {
		f.Details = cause.Error()
	}

	if p.JSON {
		// A failed write leaves the error unreported.
		if err := json.NewEncoder(p.Out).Encode(envelope{Status: "error", Error: &f}); err != nil {
			return exitErr(exit, message, cause)
		}
	} else {
		fmt.Fprintf(p.Out, "Error [%s]: %s\n", code, message)
		if p.Verbose && f.Details != "" {
			fmt.Fprintf(p.Out, "  %s\n", f.Details)
		}
	}

	ee := exitErr(exit, message, cause)
	ee.Reported = true
	return ee
}

// Debugf writes a diagnostic line in verbose mode.
func (p *Printer) Debugf(format string, args ...any) {
	if !p.Verbose {
		return
	}
	w := p.Diag
	if w == nil {
		w = p.Out
	}
	fmt.Fprintf(w, format+"\n", args...)
}
