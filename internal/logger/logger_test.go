package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cquispe/portfolio-agent/internal/config"
)

func TestNew(t *testing.T) {
	l, closer := New(config.Logging{Level: "debug", Service: "test-svc"})
	defer closer.Close()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewAsync(t *testing.T) {
	l, closer := New(config.Logging{Level: "debug", Service: "test-svc", Async: true})
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	closer.Close()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
		{"", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input).String(); got != tt.want {
				t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestChatIDContext(t *testing.T) {
	ctx := context.Background()
	if got := ChatID(ctx); got != "" {
		t.Errorf("expected empty chat ID, got %q", got)
	}
	ctx = WithChatID(ctx, "chat-123")
	if got := ChatID(ctx); got != "chat-123" {
		t.Errorf("expected chat-123, got %q", got)
	}
}

// recordingHandler collects slog.Records for test assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
	delay   time.Duration
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, rec slog.Record) error { //nolint:gocritic // slog.Handler interface requires value receiver
	if h.delay > 0 {
		time.Sleep(h.delay)
	}
	h.mu.Lock()
	h.records = append(h.records, rec)
	h.mu.Unlock()
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestAsyncHandler_CloseFlushesRemaining(t *testing.T) {
	inner := &recordingHandler{}
	ah := NewAsyncHandler(inner, 1000, 2)

	const total = 200
	for range total {
		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "flush-test", 0)
		_ = ah.Handle(context.Background(), rec)
	}

	ah.Close()

	if got := inner.count(); got != total {
		t.Fatalf("expected %d records after close, got %d", total, got)
	}
}

func TestAsyncHandler_ChannelFullDrops(t *testing.T) {
	inner := &recordingHandler{delay: 10 * time.Millisecond}
	ah := NewAsyncHandler(inner, 1, 1)

	for range 50 {
		rec := slog.NewRecord(time.Now(), slog.LevelInfo, "flood", 0)
		_ = ah.Handle(context.Background(), rec)
	}

	ah.Close()

	if ah.DroppedCount() == 0 {
		t.Fatal("expected some records to be dropped, got 0")
	}
}
