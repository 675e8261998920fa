package progress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRecordEncodeDeterministic verifies identical records produce identical bytes.
func TestRecordEncodeDeterministic(t *testing.T) {
	t.Parallel()

	rec := Record{WorkerID: 123456, Percentage: 50, SendTime: 0, ReceiveTime: 1, DelayPass: 2, ScatterPass: 3}
	require.Equal(t, rec.Encode(), rec.Encode())
}

// TestRecordEncodeLayout pins the byte layout a monitor decodes.
func TestRecordEncodeLayout(t *testing.T) {
	t.Parallel()

	got := NewRecord(4242, 57).Encode()
	want := [RecordSize]byte{
		0x92, 0x10, 0x00, 0x00, // 4242
		0x00, 0x00, 0x64, 0x42, // 57.0
	}
	require.Equal(t, want, got)

	done := Finished(-2).Encode()
	require.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, done[0:4])
	require.Equal(t, []byte{0x00, 0x00, 0x80, 0xbf}, done[4:8])
}

// TestRecordRoundTrip checks Decode recovers every field Encode wrote.
func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  Record
	}{
		{name: "zero", rec: Record{}},
		{name: "progress", rec: NewRecord(4242, 57)},
		{name: "done", rec: Finished(31337)},
		{name: "timings", rec: Record{
			WorkerID:    math.MaxInt32,
			Percentage:  99.5,
			SendTime:    0.125,
			ReceiveTime: 1.5,
			DelayPass:   2.25,
			ScatterPass: 1024,
		}},
		{name: "negative id", rec: Record{WorkerID: math.MinInt32, Percentage: 0.25}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := tt.rec.Encode()
			got, err := Decode(buf[:])
			require.NoError(t, err)
			require.Equal(t, tt.rec, got)
		})
	}
}

// TestRecordWidthConstant ensures the encoded width never depends on values.
func TestRecordWidthConstant(t *testing.T) {
	t.Parallel()

	for _, rec := range []Record{
		{},
		Finished(1),
		{WorkerID: -1, Percentage: float32(math.Inf(1)), ScatterPass: float32(math.NaN())},
		{WorkerID: math.MaxInt32, Percentage: math.MaxFloat32},
	} {
		require.Len(t, rec.AppendEncoded(nil), RecordSize)
	}
}

// TestAppendEncoded verifies the append form keeps the prefix and matches Encode.
func TestAppendEncoded(t *testing.T) {
	t.Parallel()

	rec := NewRecord(7, 12.5)
	prefix := []byte{0xaa, 0xbb}
	out := rec.AppendEncoded(prefix)
	want := rec.Encode()
	require.Equal(t, []byte{0xaa, 0xbb}, out[:2])
	require.Equal(t, want[:], out[2:])
}

// TestDecodeShortBuffer rejects buffers narrower than a record.
func TestDecodeShortBuffer(t *testing.T) {
	t.Parallel()

	_, err := Decode(make([]byte, RecordSize-1))
	require.ErrorIs(t, err, ErrShortRecord)

	rec := NewRecord(1, 2)
	buf := rec.AppendEncoded(nil)
	buf = append(buf, 0xff, 0xff)
	got, err := Decode(buf)
	require.NoError(t, err)
	require.Equal(t, rec, got)
}

// TestRecordDone only flags the sentinel value.
func TestRecordDone(t *testing.T) {
	t.Parallel()

	require.True(t, Finished(5).Done())
	require.False(t, NewRecord(5, 100).Done())
	require.False(t, NewRecord(5, 0).Done())
}
