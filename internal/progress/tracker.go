package progress

// Timings holds the optional per-step measurements, in seconds.
type Timings struct {
	Send        float32
	Receive     float32
	DelayPass   float32
	ScatterPass float32
}

// Tracker turns completed work steps into records for one worker. It is not
// safe for concurrent use.
type Tracker struct {
	workerID  int32
	total     int
	completed int
}

// NewTracker returns a Tracker for a run of total steps. A non-positive total
// is treated as a single step.
func NewTracker(workerID int32, total int) *Tracker {
	if total <= 0 {
		total = 1
	}
	return &Tracker{workerID: workerID, total: total}
}

// Advance marks one more step complete and returns the record to report.
// Steps beyond total keep reporting 100.
func (t *Tracker) Advance(timings Timings) Record {
	if t.completed < t.total {
		t.completed++
	}
	return Record{
		WorkerID:    t.workerID,
		Percentage:  100 * float32(t.completed) / float32(t.total),
		SendTime:    timings.Send,
		ReceiveTime: timings.Receive,
		DelayPass:   timings.DelayPass,
		ScatterPass: timings.ScatterPass,
	}
}

// Finish returns the sentinel record for the worker.
func (t *Tracker) Finish() Record {
	return Finished(t.workerID)
}

// Completed returns the number of steps advanced so far.
func (t *Tracker) Completed() int {
	return t.completed
}
