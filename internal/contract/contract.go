// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package contract holds fail-fast checks for internal invariants. A failed
// check means two parts of the program disagree about a structure they share;
// it is never a user error and is never recoverable.
package contract

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

const failMsg = "An internal invariant has been violated"

// Violation is the panic value raised by a failed check. The wrapped error
// carries the stack trace of the failure site.
type Violation struct {
	err error
}

func (v *Violation) Error() string {
	return v.err.Error()
}

func (v *Violation) Unwrap() error {
	return v.err
}

// StackTrace formats the call stack captured where the check failed.
func (v *Violation) StackTrace() string {
	return fmt.Sprintf("%+v", v.err)
}

// failfast logs and panics in a way that is friendly to debugging.
func failfast(msg string) {
	err := errors.New(msg)
	glog.Errorf("fatal: %+v", err)
	panic(&Violation{err: err})
}

// Failf unconditionally abandons the current operation, formatting and logging
// the given message.
func Failf(msg string, args ...interface{}) {
	failfast(fmt.Sprintf("%v: %v", failMsg, fmt.Sprintf(msg, args...)))
}

// Assertf checks an invariant and Failfs if it is false.
func Assertf(cond bool, msg string, args ...interface{}) {
	if !cond {
		Failf(msg, args...)
	}
}
