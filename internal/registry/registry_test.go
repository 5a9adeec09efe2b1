package registry

import (
	"bytes"
	"log/slog"
	"reflect"
	"sync"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestDispatch_SubscriptionOrder(t *testing.T) {
	r := New[int](discardLogger())

	var order []string
	r.Subscribe(func(int) { order = append(order, "first") })
	r.Subscribe(func(int) { order = append(order, "second") })
	r.Subscribe(func(int) { order = append(order, "third") })

	if failures := r.Dispatch(1); failures != nil {
		t.Fatalf("Dispatch() failures = %v, want nil", failures)
	}

	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("delivery order = %v, want %v", order, want)
	}
}

func TestSubscribe_DuplicateObserverGetsIndependentHandles(t *testing.T) {
	r := New[string](discardLogger())

	calls := 0
	deliver := func(string) { calls++ }

	h1 := r.Subscribe(deliver)
	h2 := r.Subscribe(deliver)
	if h1 == h2 {
		t.Fatalf("Subscribe() returned the same handle twice: %q", h1)
	}

	r.Dispatch("x")
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	// removing one handle must leave the other registration intact
	if !r.Unsubscribe(h1) {
		t.Fatal("Unsubscribe(h1) = false, want true")
	}
	calls = 0
	r.Dispatch("y")
	if calls != 1 {
		t.Errorf("calls after one unsubscribe = %d, want 1", calls)
	}
}

func TestUnsubscribe_UnknownHandleIsNoOp(t *testing.T) {
	r := New[int](discardLogger())
	h := r.Subscribe(func(int) {})

	if !r.Unsubscribe(h) {
		t.Error("Unsubscribe(h) = false, want true")
	}
	if r.Unsubscribe(h) {
		t.Error("second Unsubscribe(h) = true, want false (no-op)")
	}
	if r.Unsubscribe("not-a-handle") {
		t.Error("Unsubscribe(unknown) = true, want false")
	}
}

func TestDispatch_PanicIsolated(t *testing.T) {
	r := New[int](discardLogger())

	var delivered []string
	r.Subscribe(func(int) { delivered = append(delivered, "before") })
	panicHandle := r.Subscribe(func(int) { panic("observer exploded") })
	r.Subscribe(func(int) { delivered = append(delivered, "after") })

	failures := r.Dispatch(7)

	if want := []string{"before", "after"}; !reflect.DeepEqual(delivered, want) {
		t.Errorf("delivered = %v, want %v", delivered, want)
	}
	if len(failures) != 1 {
		t.Fatalf("len(failures) = %d, want 1", len(failures))
	}
	if failures[0].Handle != panicHandle {
		t.Errorf("failure handle = %q, want %q", failures[0].Handle, panicHandle)
	}
	if failures[0].Panic != "observer exploded" {
		t.Errorf("failure panic = %q, want %q", failures[0].Panic, "observer exploded")
	}
	if failures[0].CorrelationID == "" {
		t.Error("failure correlation ID is empty")
	}
}

func TestDispatch_EmptyRegistry(t *testing.T) {
	r := New[int](discardLogger())
	if failures := r.Dispatch(1); failures != nil {
		t.Errorf("Dispatch() on empty registry = %v, want nil", failures)
	}
}

func TestRegistry_ConcurrentSubscribeDispatch(t *testing.T) {
	r := New[int](discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h := r.Subscribe(func(int) {})
			r.Unsubscribe(h)
		}()
		go func() {
			defer wg.Done()
			r.Dispatch(1)
		}()
	}
	wg.Wait()

	if n := r.Len(); n != 0 {
		t.Errorf("Len() = %d, want 0", n)
	}
}
