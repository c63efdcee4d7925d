// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package watcherx

import (
	"bytes"
	"io"
)

type (
	// EventChannel carries the events of one watched source. It is closed
	// when the watch ends.
	EventChannel chan Event

	Event interface {
		// Reader returns a reader for the new value, or nil when the event
		// does not carry one.
		Reader() io.Reader
		// Source returns the path of the file the event came from.
		Source() string
	}

	source string

	// ChangeEvent is sent when the watched source has a new value.
	ChangeEvent struct {
		data []byte
		source
	}

	// RemoveEvent is sent when the watched source disappeared.
	RemoveEvent struct {
		source
	}

	// ErrorEvent is sent when watching or reading the source failed. It
	// wraps the underlying error.
	ErrorEvent struct {
		error
		source
	}
)

func (e source) Source() string {
	return string(e)
}

func (e *ChangeEvent) Reader() io.Reader {
	return bytes.NewBuffer(e.data)
}

func (e *RemoveEvent) Reader() io.Reader {
	return nil
}

func (e *ErrorEvent) Reader() io.Reader {
	return nil
}
