// Package linkopen opens external links outside the terminal UI.
package linkopen

import (
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/browser"

	"github.com/justchokingaround/aniview/internal/cmdline"
)

// Opener opens a URL with some external program
type Opener interface {
	OpenURL(url string) error
}

// BrowserOpener opens URLs in the system's default browser
type BrowserOpener struct{}

// NewBrowserOpener returns an opener backed by the default browser. The
// browser helper's own output is discarded because the TUI owns the
// terminal.
func NewBrowserOpener() BrowserOpener {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return BrowserOpener{}
}

// OpenURL implements Opener
func (BrowserOpener) OpenURL(url string) error {
	return browser.OpenURL(url)
}

// CommandOpener runs a user-configured command with the URL appended
type CommandOpener struct {
	args []string
}

// NewCommandOpener parses command, e.g. `firefox --new-tab`
func NewCommandOpener(command string) (*CommandOpener, error) {
	args := cmdline.Split(command)
	if len(args) == 0 || args[0] == "" {
		return nil, fmt.Errorf("empty link command")
	}
	return &CommandOpener{args: args}, nil
}

// OpenURL implements Opener. It returns once the command has started.
func (o *CommandOpener) OpenURL(url string) error {
	args := append(append([]string{}, o.args[1:]...), url)
	cmd := exec.Command(o.args[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", o.args[0], err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// New picks the configured command when set, the default browser otherwise
func New(command string) (Opener, error) {
	if command == "" {
		return NewBrowserOpener(), nil
	}
	return NewCommandOpener(command)
}

// OpenedMsg reports the outcome of an OpenCmd
type OpenedMsg struct {
	URL string
	Err error
}

// OpenCmd opens url off the UI loop. The opener is called exactly once for
// a valid URL; a failure is logged once and reported in OpenedMsg, never
// returned to the caller.
func OpenCmd(o Opener, url string, logger *slog.Logger) tea.Cmd {
	if logger == nil {
		logger = slog.Default()
	}

	return func() tea.Msg {
		log := logger.With("url", url, "request_id", uuid.NewString())

		err := open(o, url)
		if err != nil {
			log.Error("failed to open url", "error", err)
			return OpenedMsg{URL: url, Err: err}
		}

		log.Debug("opened url")
		return OpenedMsg{URL: url}
	}
}

func open(o Opener, url string) (err error) {
	if _, err := ValidateURL(url); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("opener panicked: %v", r)
		}
	}()

	return o.OpenURL(url)
}
