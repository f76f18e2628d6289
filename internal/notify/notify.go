package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Level classifies a transient user-facing message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a transient message for the shopper. It is fire and
// forget: publishing never fails and nothing in the core reads it back.
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Sink receives notifications triggered by cart and checkout events.
type Sink interface {
	Publish(n Notification)
}

// ZapSink writes notifications to the application log. Used in the real
// wiring where the frontend renders its own toasts from API responses.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log}
}

func (s *ZapSink) Publish(n Notification) {
	switch n.Level {
	case LevelError:
		s.log.Warn("user notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
	default:
		s.log.Info("user notification", zap.String("level", string(n.Level)), zap.String("message", n.Message))
	}
}

// MemorySink collects notifications for inspection in tests.
type MemorySink struct {
	mu   sync.Mutex
	sent []Notification
}

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Publish(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
}

// Sent returns a copy of everything published so far.
func (s *MemorySink) Sent() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.sent))
	copy(out, s.sent)
	return out
}
