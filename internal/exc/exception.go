// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package exc

import (
	"fmt"

	"gopkg.microglot.org/gollum.go/internal/idl"
)

// Exception is an error with a stable code and a source location.
type Exception interface {
	error
	Code() string
	Message() string
	Location() Location
}

// Location is a point within the source named by URI.
type Location struct {
	idl.Location
	URI string
}

func (self Location) String() string {
	return fmt.Sprintf("%s:%d:%d", self.URI, self.Line, self.Column)
}

type exception struct {
	code     string
	message  string
	location Location
	cause    error
}

func (self *exception) Error() string {
	return fmt.Sprintf("%s -- %s: %s", self.location, self.code, self.message)
}

func (self *exception) Code() string {
	return self.code
}

func (self *exception) Message() string {
	return self.message
}

func (self *exception) Location() Location {
	return self.location
}

// Unwrap returns the error given to Wrap, if any.
func (self *exception) Unwrap() error {
	return self.cause
}

func New(location Location, code string, message string) Exception {
	return &exception{
		code:     code,
		message:  message,
		location: location,
	}
}

// Wrap converts err into an Exception with the given location and code. The
// original error stays reachable through errors.Is and errors.As. Wrapping
// another Exception keeps its message. A nil err gives a nil Exception.
func Wrap(location Location, code string, err error) Exception {
	if err == nil {
		return nil
	}
	message := err.Error()
	if e, ok := err.(Exception); ok {
		message = e.Message()
	}
	return &exception{
		code:     code,
		message:  message,
		location: location,
		cause:    err,
	}
}

func WrapUnknown(location Location, err error) Exception {
	return Wrap(location, CodeUnknownFatal, err)
}
