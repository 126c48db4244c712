package live

import (
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
	}

	hub.register <- client

	hub.Broadcast([]byte(`{"entity_type":"order","method":"POST"}`))

	select {
	case got := <-client.Send:
		if string(got) != `{"entity_type":"order","method":"POST"}` {
			t.Fatalf("unexpected payload: %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client

	// a closed Send channel means the unregister landed
	select {
	case _, ok := <-client.Send:
		if ok {
			t.Fatal("expected Send to be closed")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for unregister")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	slow := &Client{Send: make(chan []byte)} // unbuffered, never read
	hub.register <- slow

	hub.Broadcast([]byte("one"))

	// let the hub attempt delivery before anyone reads; the non-blocking
	// send must fail and drop the client
	time.Sleep(50 * time.Millisecond)

	select {
	case _, ok := <-slow.Send:
		if ok {
			t.Fatal("expected slow client channel to be closed, got a message")
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for slow client to be dropped")
	}
}
