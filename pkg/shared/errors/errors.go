package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the command surface.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitScoreGate = 2
	ExitNoPreset  = 3
)

// CommandError represents an error that ends a command with a specific exit code.
type CommandError struct {
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("command failed with exit code %d", e.ExitCode)
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError wraps err with an exit code.
func NewCommandError(err error, code int) *CommandError {
	return &CommandError{ExitCode: code, Err: err}
}

// ScoreGateError is returned when a score falls under the configured minimum.
type ScoreGateError struct {
	Score     int
	FailUnder int
}

func (e *ScoreGateError) Error() string {
	return fmt.Sprintf("cache efficiency score %d is below the required minimum of %d", e.Score, e.FailUnder)
}

// NewScoreGateError builds a CommandError carrying ExitScoreGate.
func NewScoreGateError(score, failUnder int) *CommandError {
	return NewCommandError(&ScoreGateError{Score: score, FailUnder: failUnder}, ExitScoreGate)
}

// ExitCode extracts the exit code carried by err. Plain errors map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return ExitFailure
}
