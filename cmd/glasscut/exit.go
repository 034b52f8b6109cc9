package main

import (
	"errors"
	"fmt"
	"io"
)

// Process exit codes.
const (
	exitOK      = 0
	exitInput   = 1
	exitPending = 2
	exitIO      = 3
)

// errPending marks a completed allocation that left pieces unplaced.
var errPending = errors.New("insufficient material: some pieces could not be placed")

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func inputError(err error) error {
	return &exitError{code: exitInput, err: err}
}

func ioError(err error) error {
	return &exitError{code: exitIO, err: err}
}

// exitCode maps a command error to the process exit code, reporting it on w.
func exitCode(err error, w io.Writer) int {
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(w, "error:", err)
	if errors.Is(err, errPending) {
		return exitPending
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitInput
}
