package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes surfaced on wrapped command errors. Hosts match on these when
// mapping failures to transport responses.
const (
	CodeValidationFailed = "PAGEKIT_COMMAND_VALIDATION"
	CodeCanceled         = "PAGEKIT_COMMAND_CANCELED"
	CodeTimedOut         = "PAGEKIT_COMMAND_TIMEOUT"
	CodeContextFailed    = "PAGEKIT_COMMAND_CONTEXT"
	CodeExecutionFailed  = "PAGEKIT_COMMAND_EXECUTION"
)

// tag wraps err with a goerrors category and text code. Errors that already
// carry wrapping metadata pass through untouched so the innermost layer wins.
func tag(err error, category goerrors.Category, code, msg string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, category, msg).WithTextCode(code)
}

func wrapValidationError(err error) error {
	return tag(err, goerrors.CategoryValidation, CodeValidationFailed, "command message failed validation")
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tag(err, goerrors.CategoryCommand, CodeCanceled, "command was cancelled")
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, goerrors.CategoryCommand, CodeTimedOut, "command exceeded its deadline")
	default:
		return tag(err, goerrors.CategoryCommand, CodeContextFailed, "command context failed")
	}
}

func wrapExecuteError(err error) error {
	return tag(err, goerrors.CategoryCommand, CodeExecutionFailed, "command execution failed")
}
