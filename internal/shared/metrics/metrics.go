package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	reviewStartedTotal   atomic.Uint64
	reviewCompletedTotal atomic.Uint64
	reviewFailedTotal    atomic.Uint64
	reviewFallbackTotal  atomic.Uint64
	ingestionTotal       atomic.Uint64
	reasoningAttempts    atomic.Uint64

	reviewDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncReviewStarted increments the started counter.
func IncReviewStarted() {
	reviewStartedTotal.Add(1)
}

// IncReviewCompleted increments the completed counter.
func IncReviewCompleted() {
	reviewCompletedTotal.Add(1)
}

// IncReviewFailed increments the failed counter.
func IncReviewFailed() {
	reviewFailedTotal.Add(1)
}

// IncReviewFallback increments the fallback counter. A fallback review
// still counts as completed.
func IncReviewFallback() {
	reviewFallbackTotal.Add(1)
}

// IncIngestion increments the ingestion counter.
func IncIngestion() {
	ingestionTotal.Add(1)
}

// IncReasoningAttempt counts every model call made by the reasoning
// engine; compact retries show up as extra attempts.
func IncReasoningAttempt() {
	reasoningAttempts.Add(1)
}

// ObserveReviewDurationMs records a review duration in milliseconds.
func ObserveReviewDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	reviewDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "review_started_total", "Total contract reviews started", reviewStartedTotal.Load())
	writeCounter(&buf, "review_completed_total", "Total contract reviews completed", reviewCompletedTotal.Load())
	writeCounter(&buf, "review_failed_total", "Total contract reviews failed", reviewFailedTotal.Load())
	writeCounter(&buf, "review_fallback_total", "Total contract reviews served by the deterministic fallback", reviewFallbackTotal.Load())
	writeCounter(&buf, "ingestion_total", "Total documents ingested", ingestionTotal.Load())
	writeCounter(&buf, "reasoning_attempts_total", "Total LLM calls issued by the reasoning engine", reasoningAttempts.Load())
	writeHistogram(&buf, "review_duration_ms", "Review duration in milliseconds", reviewDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
