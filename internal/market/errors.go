// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"errors"
	"fmt"
)

// ErrConfiguration marks a request that could not be made because a required
// identifier (item name, appid, API key) is missing. Wrap with %w.
var ErrConfiguration = errors.New("configuration error")

// StatusError is a non-200 response from an upstream endpoint. Message is the
// table-mapped meaning of the code when one is known.
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Code)
}

// LogicError is a well-formed upstream response that signals failure, such as
// a success flag of false.
type LogicError struct {
	Message string
}

func (e *LogicError) Error() string {
	return e.Message
}

// FormatError is a request for an aggregate output format the provider (or
// this client) does not support.
type FormatError struct {
	Format string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported format %q", e.Format)
}
