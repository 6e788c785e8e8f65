package shutdown

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

func TestShutdownClosesInReverseOrder(t *testing.T) {
	m := NewManager(context.Background(), nil)

	var mu sync.Mutex
	var order []string
	for _, name := range []string{"db", "cache", "writer"} {
		name := name
		m.Register(name, closeFunc(func() error {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
			return nil
		}))
	}

	m.Shutdown()
	m.Shutdown()

	want := []string{"writer", "cache", "db"}
	if len(order) != len(want) {
		t.Fatalf("closed %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("closed %v, want %v", order, want)
		}
	}
	if m.Context().Err() == nil {
		t.Error("context not cancelled")
	}
	select {
	case <-m.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestShutdownContinuesPastErrorsAndTimeouts(t *testing.T) {
	m := NewManager(context.Background(), nil)
	m.SetTimeout(10 * time.Millisecond)

	closed := false
	release := make(chan struct{})
	defer close(release)

	m.Register("first", closeFunc(func() error { closed = true; return nil }))
	m.Register("stuck", closeFunc(func() error { <-release; return nil }))
	m.Register("broken", closeFunc(func() error { return errors.New("boom") }))

	m.Shutdown()
	if !closed {
		t.Error("first component not closed after later failures")
	}
}

func TestContextFollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	m := NewManager(parent, nil)
	cancel()
	if m.Context().Err() == nil {
		t.Error("manager context should follow its parent")
	}
	m.Shutdown()
}
