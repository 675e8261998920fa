package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestReporterRecordsOutcomes checks each observation lands in the right collector.
func TestReporterRecordsOutcomes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r, err := NewReporter(reg)
	require.NoError(t, err)

	r.ObserveConnect(nil)
	r.ObserveConnect(errors.New("refused"))
	r.ObserveSend(24, time.Millisecond, nil)
	r.ObserveSend(10, time.Millisecond, errors.New("short write"))

	require.Equal(t, 1.0, testutil.ToFloat64(r.connects.WithLabelValues(ResultSuccess)))
	require.Equal(t, 1.0, testutil.ToFloat64(r.connects.WithLabelValues(ResultError)))
	require.Equal(t, 1.0, testutil.ToFloat64(r.recordsSent))
	require.Equal(t, 1.0, testutil.ToFloat64(r.sendFailures))
	require.InDelta(t, 34.0, testutil.ToFloat64(r.bytesWritten), 1e-9)
	require.Equal(t, 1, testutil.CollectAndCount(r.sendDuration, "progress_reporter_send_duration_seconds"))
}

// TestReporterDuplicateRegistration surfaces registry conflicts as errors.
func TestReporterDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewReporter(reg)
	require.NoError(t, err)
	_, err = NewReporter(reg)
	require.Error(t, err)
}

// TestNilReporterIsNoop allows clients to run without metrics.
func TestNilReporterIsNoop(t *testing.T) {
	t.Parallel()

	var r *Reporter
	require.NotPanics(t, func() {
		r.ObserveConnect(nil)
		r.ObserveSend(24, time.Second, nil)
	})
}
