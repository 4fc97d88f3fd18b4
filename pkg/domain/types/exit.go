package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// ExitCode is the process exit status reported to calling automation
type ExitCode int

const (
	ExitOK                 ExitCode = 0
	ExitFailure            ExitCode = 1
	ExitUnexpectedConflict ExitCode = 2
	ExitUnexpectedResponse ExitCode = 3
)

var (
	// ErrTagConfig marks a missing or invalid required setting
	ErrTagConfig = goerr.NewTag("config")
	// ErrTagProtocol marks a response that claimed success but lacked a release ID
	ErrTagProtocol = goerr.NewTag("protocol")
	// ErrTagUnexpectedConflict marks a 422 response without an already_exists error
	ErrTagUnexpectedConflict = goerr.NewTag("unexpected_conflict")
	// ErrTagUnexpectedResponse marks any other status, a transport failure, or a
	// conflict whose tag could not be found in the release list
	ErrTagUnexpectedResponse = goerr.NewTag("unexpected_response")
)

// ExitCodeOf maps an error returned from the CLI to its exit code. nil is ExitOK and
// an error without a known tag is ExitFailure.
func ExitCodeOf(err error) ExitCode {
	switch {
	case err == nil:
		return ExitOK
	case goerr.HasTag(err, ErrTagUnexpectedConflict):
		return ExitUnexpectedConflict
	case goerr.HasTag(err, ErrTagUnexpectedResponse):
		return ExitUnexpectedResponse
	default:
		// ErrTagConfig, ErrTagProtocol and anything untagged (e.g. flag parse errors)
		return ExitFailure
	}
}

