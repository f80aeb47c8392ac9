package ws

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"parkdesk/internal/models"
)

// trackedConn fails the overlap flag if two writes are ever in flight at
// the same time, the condition gorilla/websocket panics on.
type trackedConn struct {
	writing int32
	writes  int32
	overlap int32
	closed  int32
	fail    bool
}

func (c *trackedConn) write() error {
	if !atomic.CompareAndSwapInt32(&c.writing, 0, 1) {
		atomic.StoreInt32(&c.overlap, 1)
		return nil
	}
	defer atomic.StoreInt32(&c.writing, 0)
	if c.fail {
		return errors.New("write failed")
	}
	time.Sleep(50 * time.Microsecond)
	atomic.AddInt32(&c.writes, 1)
	return nil
}

func (c *trackedConn) WriteJSON(v interface{}) error { return c.write() }

func (c *trackedConn) WriteMessage(messageType int, data []byte) error { return c.write() }

func (c *trackedConn) SetWriteDeadline(t time.Time) error { return nil }

func (c *trackedConn) Close() error {
	atomic.StoreInt32(&c.closed, 1)
	return nil
}

func TestWritePumpIsTheOnlyWriter(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := NewServer(hub, time.Millisecond, zap.NewNop())
	c := &trackedConn{}

	id, events := hub.Add()
	done := make(chan struct{})
	go func() {
		server.writePump(id, c, events)
		close(done)
	}()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				hub.NotifySlotChanged(models.Slot{ID: 1, SlotNumber: "A1-01"})
			}
		}()
	}
	wg.Wait()

	hub.Remove(id)
	<-done

	if atomic.LoadInt32(&c.overlap) != 0 {
		t.Fatalf("connection saw concurrent writes")
	}
	if atomic.LoadInt32(&c.writes) == 0 {
		t.Fatalf("expected at least one delivered write")
	}
	if atomic.LoadInt32(&c.closed) == 0 {
		t.Fatalf("connection must be closed after removal")
	}
}

func TestWritePumpDropsFailingConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	server := NewServer(hub, time.Hour, zap.NewNop())
	c := &trackedConn{fail: true}

	id, events := hub.Add()
	done := make(chan struct{})
	go func() {
		server.writePump(id, c, events)
		close(done)
	}()

	hub.NotifySlotChanged(models.Slot{ID: 1, SlotNumber: "A1-01"})
	<-done

	if atomic.LoadInt32(&c.closed) == 0 {
		t.Fatalf("failing connection must be closed")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("failing connection must be removed from the hub, got %d clients", hub.ClientCount())
	}
}
