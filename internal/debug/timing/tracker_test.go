package timing

import (
	"context"
	"testing"
	"time"
)

func TestTrackerRecordsOperation(t *testing.T) {
	tt := NewTracker(nil)

	ctx := tt.StartTiming(context.Background(), "segment")
	time.Sleep(2 * time.Millisecond)
	d := tt.EndTiming(ctx)

	if d <= 0 {
		t.Fatalf("duration = %v, want > 0", d)
	}
	got := tt.GetTimings("segment")
	if len(got) != 1 || got[0] != d {
		t.Fatalf("timings = %v, want [%v]", got, d)
	}
	if tt.GetAverageTime("segment") != d {
		t.Errorf("average = %v, want %v", tt.GetAverageTime("segment"), d)
	}
	if ops := tt.Operations(); len(ops) != 1 || ops[0] != "segment" {
		t.Errorf("operations = %v", ops)
	}
}

func TestTrackerKeepsParentContext(t *testing.T) {
	tt := NewTracker(nil)
	parent, cancel := context.WithCancel(context.Background())
	ctx := tt.StartTiming(parent, "load")
	cancel()
	if ctx.Err() == nil {
		t.Fatal("timing context should follow parent cancellation")
	}
}

func TestTrackerDisabledAndNil(t *testing.T) {
	tt := NewTracker(nil)
	tt.SetEnabled(false)
	tt.EndTiming(tt.StartTiming(context.Background(), "x"))
	if len(tt.GetTimings("x")) != 0 {
		t.Error("disabled tracker recorded a timing")
	}

	var nilTracker *Tracker
	ctx := nilTracker.StartTiming(context.Background(), "x")
	if nilTracker.EndTiming(ctx) != 0 {
		t.Error("nil tracker returned a duration")
	}
}

func TestTrackerEndWithoutStart(t *testing.T) {
	tt := NewTracker(nil)
	if tt.EndTiming(context.Background()) != 0 {
		t.Error("expected zero duration without a start")
	}
}

func TestTrackerReset(t *testing.T) {
	tt := NewTracker(nil)
	tt.EndTiming(tt.StartTiming(context.Background(), "a"))
	tt.EndTiming(tt.StartTiming(context.Background(), "b"))

	tt.Reset("a")
	if len(tt.GetTimings("a")) != 0 || len(tt.GetTimings("b")) != 1 {
		t.Fatal("Reset(a) should only clear a")
	}
	tt.Reset("")
	if len(tt.Operations()) != 0 {
		t.Fatal("Reset(\"\") should clear everything")
	}
}
