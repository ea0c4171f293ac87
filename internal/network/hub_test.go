package network

import (
	"testing"

	"shanzai-server/pkg/api"
)

func TestBroadcaster_RegisterAndBroadcast(t *testing.T) {
	b := NewBroadcaster()

	ch1 := b.Register("viewer-1")
	ch2 := b.Register("viewer-2")

	if b.SubscriberCount() != 2 {
		t.Fatalf("SubscriberCount = %d, want 2", b.SubscriberCount())
	}

	snap := &api.StateSnapshot{Level: 3}
	b.Broadcast(snap)

	if got := <-ch1; got.Level != 3 {
		t.Errorf("viewer-1 got level %d, want 3", got.Level)
	}
	if got := <-ch2; got.Level != 3 {
		t.Errorf("viewer-2 got level %d, want 3", got.Level)
	}
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()

	ch := b.Register("viewer-1")
	b.Unregister("viewer-1")

	if b.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount = %d, want 0", b.SubscriberCount())
	}
	if _, open := <-ch; open {
		t.Error("Channel must be closed after Unregister")
	}
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()

	old := b.Register("viewer-1")
	b.Register("viewer-1")

	if _, open := <-old; open {
		t.Error("Old channel must be closed on re-register")
	}
	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount = %d, want 1", b.SubscriberCount())
	}
}

func TestBroadcaster_SlowSubscriberDropsFrames(t *testing.T) {
	b := NewBroadcaster()
	b.Register("viewer-1")

	// Канал буферизован на 100 кадров; лишние должны молча отбрасываться.
	snap := &api.StateSnapshot{}
	for i := 0; i < 250; i++ {
		b.Broadcast(snap)
	}
}
