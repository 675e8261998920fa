// Package reporter sends progress records to a monitor over TCP.
//
// A Client owns one connection at a time and moves between two states:
//
//	Disconnected --Connect ok--> Connected --Send*--> Connected --Close--> Disconnected
//
// A failed Connect leaves the client Disconnected. A failed Send is returned to
// the caller and leaves the state untouched; the caller decides whether to
// Close and reconnect. Nothing is retried and no error terminates the process,
// so an unreachable monitor never takes down the worker it observes.
//
// A Client is not safe for concurrent use.
package reporter
