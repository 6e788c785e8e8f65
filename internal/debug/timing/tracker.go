package timing

import (
	"context"
	"sort"
	"sync"
	"time"

	"bregman-segmenter/internal/logger"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Tracker records durations per named operation. A nil *Tracker is valid
// and records nothing.
type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	log     logger.Logger
	enabled bool
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.Nop()
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		log:     log,
		enabled: true,
	}
}

// StartTiming returns a child of parent carrying the operation start time.
func (tt *Tracker) StartTiming(parent context.Context, operation string) context.Context {
	if tt == nil || !tt.isEnabled() {
		return parent
	}
	return context.WithValue(parent, timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

// EndTiming records the time elapsed since the matching StartTiming.
func (tt *Tracker) EndTiming(ctx context.Context) time.Duration {
	if tt == nil || !tt.isEnabled() {
		return 0
	}

	info, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return 0
	}

	duration := time.Since(info.StartTime)

	tt.mu.Lock()
	tt.timings[info.Operation] = append(tt.timings[info.Operation], duration)
	tt.mu.Unlock()

	tt.log.Debug("Timing", "operation completed", map[string]interface{}{
		"operation":   info.Operation,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}
	return total / time.Duration(len(timings))
}

// Operations lists every operation with at least one recorded timing.
func (tt *Tracker) Operations() []string {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	ops := make([]string, 0, len(tt.timings))
	for op := range tt.timings {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}
