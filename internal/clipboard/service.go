package clipboard

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justchokingaround/aniview/internal/cmdline"
	"github.com/justchokingaround/aniview/internal/config"
)

// Service copies text to the system clipboard
type Service interface {
	// Write copies text asynchronously; the command yields a CopiedMsg
	Write(ctx context.Context, text string) tea.Cmd
}

// CopiedMsg reports the outcome of a Write
type CopiedMsg struct {
	Text string
	Err  error
}

// Logger interface for clipboard operations
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// clipboardService implements the Service interface
type clipboardService struct {
	logger  Logger
	command string
	// writeAll is the primary clipboard backend
	writeAll func(string) error
	// run executes a fallback command with text on stdin
	run func(ctx context.Context, text string, args []string) error
}

// NewService creates a new clipboard service. cfg may be nil.
func NewService(logger Logger, cfg *config.ClipboardConfig) Service {
	s := &clipboardService{
		logger:   logger,
		writeAll: clipboard.WriteAll,
		run:      runWithStdin,
	}
	if cfg != nil {
		s.command = cfg.Command
	}
	return s
}

// Write copies text, trying the clipboard library first, then the
// configured command, then the platform's usual tools
func (s *clipboardService) Write(ctx context.Context, text string) tea.Cmd {
	return func() tea.Msg {
		err := s.writeAll(text)
		if err == nil {
			s.logger.Debug("copied to clipboard", "text_length", len(text))
			return CopiedMsg{Text: text}
		}
		s.logger.Warn("failed to copy to clipboard using primary method", "error", err)

		args := cmdline.Split(s.command)
		if len(args) == 0 {
			args = s.defaultCommand()
		}
		if len(args) == 0 {
			err := fmt.Errorf("no clipboard tool available on %s", runtime.GOOS)
			s.logger.Error("failed to copy to clipboard", "error", err)
			return CopiedMsg{Text: text, Err: err}
		}

		if err := s.run(ctx, text, args); err != nil {
			s.logger.Error("failed to copy to clipboard", "error", err, "command", args[0])
			return CopiedMsg{Text: text, Err: err}
		}

		s.logger.Debug("copied to clipboard", "command", args[0], "text_length", len(text))
		return CopiedMsg{Text: text}
	}
}

// defaultCommand picks a clipboard tool for the current platform
func (s *clipboardService) defaultCommand() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"clip.exe"}
	case "darwin":
		return []string{"pbcopy"}
	case "linux":
		if isWSL() {
			return []string{"clip.exe"}
		}
		switch {
		case commandExists("wl-copy"):
			return []string{"wl-copy"}
		case commandExists("xclip"):
			return []string{"xclip", "-selection", "clipboard"}
		case commandExists("xsel"):
			return []string{"xsel", "--clipboard", "--input"}
		}
	}
	return nil
}

func runWithStdin(ctx context.Context, text string, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

// isWSL checks if the application is running in Windows Subsystem for Linux
func isWSL() bool {
	versionBytes, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	version := strings.ToLower(string(versionBytes))
	return strings.Contains(version, "microsoft") || strings.Contains(version, "wsl")
}

// commandExists checks if a command exists on the system
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
