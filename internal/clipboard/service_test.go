package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniview/internal/config"
)

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	errors int
}

func (m *MockLogger) Debug(msg string, keyvals ...interface{}) {}

func (m *MockLogger) Warn(msg string, keyvals ...interface{}) {}

func (m *MockLogger) Error(msg string, keyvals ...interface{}) { m.errors++ }

func TestNewService(t *testing.T) {
	service := NewService(&MockLogger{}, nil)
	require.NotNil(t, service)
}

func TestWrite(t *testing.T) {
	t.Run("primary method", func(t *testing.T) {
		var copied string
		s := NewService(&MockLogger{}, nil).(*clipboardService)
		s.writeAll = func(text string) error { copied = text; return nil }
		s.run = func(context.Context, string, []string) error {
			t.Fatal("fallback must not run")
			return nil
		}

		msg := s.Write(context.Background(), "https://example.com")()

		assert.Equal(t, CopiedMsg{Text: "https://example.com"}, msg)
		assert.Equal(t, "https://example.com", copied)
	})

	t.Run("falls back to configured command", func(t *testing.T) {
		var gotArgs []string
		var gotText string
		s := NewService(&MockLogger{}, &config.ClipboardConfig{Command: "wl-copy --trim-newline"}).(*clipboardService)
		s.writeAll = func(string) error { return errors.New("no xclip") }
		s.run = func(_ context.Context, text string, args []string) error {
			gotText, gotArgs = text, args
			return nil
		}

		msg := s.Write(context.Background(), "hello")()

		assert.Equal(t, CopiedMsg{Text: "hello"}, msg)
		assert.Equal(t, "hello", gotText)
		assert.Equal(t, []string{"wl-copy", "--trim-newline"}, gotArgs)
	})

	t.Run("fallback failure is reported", func(t *testing.T) {
		logger := &MockLogger{}
		s := NewService(logger, &config.ClipboardConfig{Command: "false"}).(*clipboardService)
		s.writeAll = func(string) error { return errors.New("no xclip") }
		s.run = func(context.Context, string, []string) error { return errors.New("exit status 1") }

		msg := s.Write(context.Background(), "hello")()

		copied, ok := msg.(CopiedMsg)
		require.True(t, ok)
		assert.Error(t, copied.Err)
		assert.Equal(t, 1, logger.errors)
	})
}
