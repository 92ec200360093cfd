// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUnavailable = 69
)

// ExitError attaches an exit code to an error returned from run().
type ExitError struct {
	Code int
	Err  error
}

// WithCode wraps err so that Fatal exits with code. A nil err stays nil.
func WithCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int { return e.Code }

// CodeOf returns the exit code for err: ExitOK for nil, the code of the
// first error in the chain with an ExitCode method, else ExitFailure.
func CodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return ExitFailure
}

// Fatal writes "error: err" to stderr and exits with CodeOf(err). Use
// it in main() for errors from run() where the structured logger may
// not be initialized.
func Fatal(err error) {
	report(os.Stderr, err)
	os.Exit(CodeOf(err))
}

func report(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}
