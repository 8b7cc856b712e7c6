// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

import "github.com/pkg/errors"

// Error kinds. Every error returned by this package wraps one of these;
// use errors.Cause to retrieve it.
//
var (
	// ErrInvalidArgument reports an invalid handle, an absent callback, a zero
	// width or count, or an out of range bit offset. It is always detected
	// before any mutation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrResourceExhausted reports that storage for an automaton could not be
	// reserved.
	ErrResourceExhausted = errors.New("resource exhausted")
)

func invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func exhausted(format string, args ...interface{}) error {
	return errors.Wrapf(ErrResourceExhausted, format, args...)
}
