//go:build darwin

// Package notify provides desktop notification support.
// macOS delivery goes through osascript, so no cgo or bundled helper
// app is needed; reminders carry a "grove" subtitle so they are
// recognizable among other terminal notifications.
package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

type darwinNotifier struct{}

func newPlatformNotifier() Notifier {
	return &darwinNotifier{}
}

func (n *darwinNotifier) Send(title, message string) error {
	return n.run(title, message, false)
}

func (n *darwinNotifier) SendWithSound(title, message string) error {
	return n.run(title, message, true)
}

// IsSupported reports whether osascript is on PATH.
func (n *darwinNotifier) IsSupported() bool {
	_, err := exec.LookPath("osascript")
	return err == nil
}

func (n *darwinNotifier) run(title, message string, sound bool) error {
	script := fmt.Sprintf(`display notification %q with title %q subtitle "grove"`,
		escapeAppleScript(message), escapeAppleScript(title))
	if sound {
		script += ` sound name "default"`
	}
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}

// escapeAppleScript keeps quotes and backslashes in task text from
// breaking out of the AppleScript string literal.
func escapeAppleScript(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}
