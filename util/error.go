// util/error.go
// Copyright(c) 2024-2026 taxiroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/taxiroute/taxiroute/log"
)

// ErrorLogger is a small utility class used to log errors when validating
// airport data. It tracks context about what is currently being validated
// and accumulates multiple errors, making it possible to report all of
// the problems with a dataset rather than just the first one.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Actual error messages to report.
	errors []string
	// Errors passed to Error(), so that callers can use errors.Is on the
	// result of Err().
	wrapped []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) prefix() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) ErrorString(s string, args ...any) {
	e.errors = append(e.errors, e.prefix()+fmt.Sprintf(s, args...))
}

func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, e.prefix()+err.Error())
	e.wrapped = append(e.wrapped, err)
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

// Err returns nil if no errors have been logged and otherwise an error
// whose message has all of them, one per line. Errors that were passed
// to Error are reachable with errors.Is and errors.As.
func (e *ErrorLogger) Err() error {
	if !e.HaveErrors() {
		return nil
	}
	return &accumulatedError{msg: e.String(), errs: e.wrapped}
}

type accumulatedError struct {
	msg  string
	errs []error
}

func (a *accumulatedError) Error() string   { return a.msg }
func (a *accumulatedError) Unwrap() []error { return a.errs }

func (e *ErrorLogger) PrintErrors(lg *log.Logger) {
	// Two loops so they aren't interleaved with logging to stderr
	if lg != nil {
		for _, err := range e.errors {
			lg.Errorf("%+v", err)
		}
	}
	for _, err := range e.errors {
		fmt.Fprintln(os.Stderr, err)
	}
}

func (e *ErrorLogger) String() string {
	return strings.Join(e.errors, "\n")
}

// CheckDepth should be deferred with the depth at entry to a function
// that uses Push and Pop; it panics if they weren't balanced.
func (e *ErrorLogger) CheckDepth(d int) {
	if e == nil || e.CurrentDepth() == d {
		return
	}

	if r := recover(); r != nil {
		// Don't mask a panic that's already in flight.
		panic(r)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Initial ErrorLogger depth %d, final %d\n", d, e.CurrentDepth())
	for _, f := range log.Callstack(nil) {
		fmt.Fprintf(&sb, "%15s:%d %s\n", f.File, f.Line, f.Function)
	}
	panic(errors.New(sb.String()))
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
