//go:build !darwin && !linux

// Package notify provides desktop notification support.
// Platforms grove has no notification command for get this inert
// backend; IsSupported reports false, so the reminder scan never
// attempts a send.
package notify

type unsupportedNotifier struct{}

func newPlatformNotifier() Notifier {
	return &unsupportedNotifier{}
}

func (n *unsupportedNotifier) Send(title, message string) error {
	return nil
}

func (n *unsupportedNotifier) SendWithSound(title, message string) error {
	return nil
}

func (n *unsupportedNotifier) IsSupported() bool {
	return false
}
