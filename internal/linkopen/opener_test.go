package linkopen

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	calls []string
	err   error
	panic bool
}

func (f *fakeOpener) OpenURL(url string) error {
	f.calls = append(f.calls, url)
	if f.panic {
		panic("no display")
	}
	return f.err
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func countErrors(buf *bytes.Buffer) int {
	return strings.Count(buf.String(), "level=ERROR")
}

func TestOpenCmd(t *testing.T) {
	t.Run("opens the exact url once", func(t *testing.T) {
		o := &fakeOpener{}
		logger, buf := newTestLogger()

		msg := OpenCmd(o, "https://example.com/anime/20", logger)()

		assert.Equal(t, []string{"https://example.com/anime/20"}, o.calls)
		assert.Equal(t, OpenedMsg{URL: "https://example.com/anime/20"}, msg)
		assert.Zero(t, countErrors(buf))
	})

	t.Run("failure is logged once and reported", func(t *testing.T) {
		o := &fakeOpener{err: errors.New("xdg-open: not found")}
		logger, buf := newTestLogger()

		msg := OpenCmd(o, "https://example.com", logger)()

		require.IsType(t, OpenedMsg{}, msg)
		opened := msg.(OpenedMsg)
		assert.ErrorContains(t, opened.Err, "xdg-open")
		assert.Len(t, o.calls, 1)
		assert.Equal(t, 1, countErrors(buf))
		assert.Contains(t, buf.String(), "url=https://example.com")
		assert.Contains(t, buf.String(), "request_id=")
	})

	t.Run("panicking opener does not crash", func(t *testing.T) {
		o := &fakeOpener{panic: true}
		logger, buf := newTestLogger()

		var msg any
		assert.NotPanics(t, func() { msg = OpenCmd(o, "https://example.com", logger)() })

		assert.Error(t, msg.(OpenedMsg).Err)
		assert.Equal(t, 1, countErrors(buf))
	})

	t.Run("invalid url never reaches the opener", func(t *testing.T) {
		o := &fakeOpener{}
		logger, buf := newTestLogger()

		msg := OpenCmd(o, "javascript:alert(1)", logger)()

		assert.Empty(t, o.calls)
		assert.Error(t, msg.(OpenedMsg).Err)
		assert.Equal(t, 1, countErrors(buf))
	})
}

func TestValidateURL(t *testing.T) {
	_, err := ValidateURL("https://myanimelist.net/anime/20/Naruto")
	assert.NoError(t, err)

	for _, bad := range []string{"", "ftp://example.com", "https://", "://nope", "example.com"} {
		_, err := ValidateURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestNew(t *testing.T) {
	o, err := New("")
	require.NoError(t, err)
	assert.IsType(t, BrowserOpener{}, o)

	o, err = New(`firefox --new-tab`)
	require.NoError(t, err)
	require.IsType(t, &CommandOpener{}, o)
	assert.Equal(t, []string{"firefox", "--new-tab"}, o.(*CommandOpener).args)

	_, err = New(`""`)
	assert.Error(t, err)
}

func TestCommandOpenerMissingBinary(t *testing.T) {
	o, err := NewCommandOpener("aniview-definitely-not-a-browser")
	require.NoError(t, err)
	assert.Error(t, o.OpenURL("https://example.com"))
}
