package progress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// RecordSize is the encoded width of every Record.
	RecordSize = 24
	// DonePercentage marks the last record of a worker's run.
	DonePercentage float32 = -1
	// DefaultMonitorHost is the host the monitor listens on by default.
	DefaultMonitorHost = "127.0.0.1"
	// DefaultMonitorPort is the first port of the dynamic range, where the monitor listens by default.
	DefaultMonitorPort = 49152
)

// ErrShortRecord is returned by Decode when fewer than RecordSize bytes are given.
var ErrShortRecord = errors.New("short progress record")

// Record is one progress snapshot of a worker. Timing fields are seconds and
// stay zero when the worker does not measure them.
type Record struct {
	// WorkerID identifies the reporting worker, usually its process id.
	WorkerID int32
	// Percentage is progress in [0, 100], or DonePercentage.
	Percentage float32
	// SendTime is how long the last send phase took.
	SendTime float32
	// ReceiveTime is how long the last receive phase took.
	ReceiveTime float32
	// DelayPass is the duration of the last delay pass.
	DelayPass float32
	// ScatterPass is the duration of the last scatter pass.
	ScatterPass float32
}

// NewRecord builds a record with no timing data.
func NewRecord(workerID int32, percentage float32) Record {
	return Record{WorkerID: workerID, Percentage: percentage}
}

// Finished builds the record that closes a worker's run.
func Finished(workerID int32) Record {
	return Record{WorkerID: workerID, Percentage: DonePercentage}
}

// Done reports whether r carries the DonePercentage sentinel.
func (r Record) Done() bool {
	return r.Percentage == DonePercentage
}

// Encode returns the wire form of r.
func (r Record) Encode() [RecordSize]byte {
	var buf [RecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(r.WorkerID))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(r.Percentage))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(r.SendTime))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(r.ReceiveTime))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(r.DelayPass))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(r.ScatterPass))
	return buf
}

// AppendEncoded appends the wire form of r to dst.
func (r Record) AppendEncoded(dst []byte) []byte {
	buf := r.Encode()
	return append(dst, buf[:]...)
}

// Decode parses the first RecordSize bytes of b. Extra bytes are ignored so a
// monitor can decode straight out of a larger read buffer.
func Decode(b []byte) (Record, error) {
	if len(b) < RecordSize {
		return Record{}, fmt.Errorf("decode %d bytes: %w", len(b), ErrShortRecord)
	}
	return Record{
		WorkerID:    int32(binary.LittleEndian.Uint32(b[0:4])),
		Percentage:  math.Float32frombits(binary.LittleEndian.Uint32(b[4:8])),
		SendTime:    math.Float32frombits(binary.LittleEndian.Uint32(b[8:12])),
		ReceiveTime: math.Float32frombits(binary.LittleEndian.Uint32(b[12:16])),
		DelayPass:   math.Float32frombits(binary.LittleEndian.Uint32(b[16:20])),
		ScatterPass: math.Float32frombits(binary.LittleEndian.Uint32(b[20:24])),
	}, nil
}
