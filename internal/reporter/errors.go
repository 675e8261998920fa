package reporter

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned by Send when no connection is open.
	ErrNotConnected = errors.New("reporter not connected")
	// ErrAlreadyConnected is returned by Connect when a connection is already open.
	ErrAlreadyConnected = errors.New("reporter already connected")
)

// ConnectError reports a failed dial to the monitor.
type ConnectError struct {
	Addr string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect to monitor %s: %v", e.Addr, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// SendError reports a record that was not written in full. Written is the
// number of bytes the transport accepted before failing.
type SendError struct {
	Addr    string
	Written int
	Err     error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send progress record to %s (%d bytes written): %v", e.Addr, e.Written, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
