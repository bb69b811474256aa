package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish("assignment-created")
	v := <-ch
	if v != "assignment-created" {
		t.Fatalf("expected assignment-created got %v", v)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}

func TestBusSlowSubscriberDropsAndCounts(t *testing.T) {
	bus := NewBuffered(4)
	_ = bus.Subscribe()
	for i := 0; i < 64; i++ {
		bus.Publish(i)
	}
	if got := bus.Dropped(); got != 60 {
		t.Fatalf("expected 60 dropped events got %d", got)
	}
}

func TestBusBufferFloor(t *testing.T) {
	bus := NewBuffered(0)
	ch := bus.Subscribe()
	bus.Publish("first")
	if v := <-ch; v != "first" {
		t.Fatalf("expected first got %v", v)
	}
}
