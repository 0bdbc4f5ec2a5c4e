package metrics

import (
	"sync"
	"time"
)

type storeStats struct {
	reads           int
	writes          int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about collection storage calls
// and forwards them to OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*storeStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*storeStats),
		otel:  otel,
	}
}

// RecordStoreOp counts a read or write against a collection and stores the last observed latency.
func (r *Recorder) RecordStoreOp(collection, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[collection]
	if !ok {
		stats = &storeStats{}
		r.stats[collection] = stats
	}
	switch op {
	case OpWrite:
		stats.writes++
	default:
		stats.reads++
	}
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOp(collection, op, duration, err)
	}
}

// Snapshot is a copy of the stats recorded for one collection.
type Snapshot struct {
	Reads           int
	Writes          int
	Errors          int
	LastCallLatency time.Duration
}

// Snapshot returns a copy of the current stats for the collection.
func (r *Recorder) Snapshot(collection string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[collection]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Reads:           stats.reads,
		Writes:          stats.writes,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// StoreErrors returns the total failed calls recorded for a collection.
func (r *Recorder) StoreErrors(collection string) int {
	return r.Snapshot(collection).Errors
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}
