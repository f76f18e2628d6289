package notify

import (
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestMemorySink_CollectsInOrder(t *testing.T) {
	sink := NewMemorySink()
	sink.Publish(Notification{Level: LevelSuccess, Message: "first"})
	sink.Publish(Notification{Level: LevelError, Message: "second"})

	sent := sink.Sent()
	if len(sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(sent))
	}
	if sent[0].Message != "first" || sent[1].Level != LevelError {
		t.Fatalf("unexpected notifications %+v", sent)
	}

	// Sent returns a copy; mutating it must not affect the sink.
	sent[0].Message = "mutated"
	if sink.Sent()[0].Message != "first" {
		t.Errorf("Sent leaked internal slice")
	}
}

func TestMemorySink_ConcurrentPublish(t *testing.T) {
	sink := NewMemorySink()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink.Publish(Notification{Level: LevelInfo, Message: "ping"})
		}()
	}
	wg.Wait()
	if got := len(sink.Sent()); got != 20 {
		t.Fatalf("expected 20 notifications, got %d", got)
	}
}

func TestZapSink_PublishDoesNotPanic(t *testing.T) {
	sink := NewZapSink(zap.NewNop())
	sink.Publish(Notification{Level: LevelError, Message: "stock ran out"})
	sink.Publish(Notification{Level: LevelSuccess, Message: "order placed"})
}
