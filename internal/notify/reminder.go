// Package notify provides desktop notification support.
// This file implements the due-date reminder scan: an hourly, read-only
// pass over the present forest that raises one notification per
// due-soon task per day.
package notify

import (
	"time"

	"grove/internal/task"

	"github.com/charmbracelet/log"
)

// DefaultLookahead is the window scanned for upcoming due dates.
const DefaultLookahead = 24 * time.Hour

// DueSoon walks the whole forest, nested tasks included, and returns
// every incomplete task whose due date falls in [now, now+window).
// Overdue tasks are not reported; they already show in the overdue
// bucket.
func DueSoon(f task.Forest, now time.Time, window time.Duration) []task.Task {
	var due []task.Task
	collectDueSoon([]task.Task(f), now, now.Add(window), &due)
	return due
}

func collectDueSoon(tasks []task.Task, now, until time.Time, due *[]task.Task) {
	for _, t := range tasks {
		if !t.Completed && t.DueDate != nil && !t.DueDate.Before(now) && t.DueDate.Before(until) {
			*due = append(*due, t)
		}
		collectDueSoon(t.Subtasks, now, until, due)
	}
}

// Reminder raises desktop notifications for due-soon tasks. Each task
// is notified at most once per calendar day.
type Reminder struct {
	notifier Notifier
	logger   *log.Logger
	window   time.Duration
	sound    bool
	notified map[string]string // task ID -> YYYY-MM-DD of last notification
}

// NewReminder creates a reminder scanner over the given notifier.
// A zero window defaults to DefaultLookahead.
func NewReminder(n Notifier, logger *log.Logger, window time.Duration, sound bool) *Reminder {
	if window <= 0 {
		window = DefaultLookahead
	}
	return &Reminder{
		notifier: n,
		logger:   logger,
		window:   window,
		sound:    sound,
		notified: make(map[string]string),
	}
}

// Check scans the forest and sends a notification for each due-soon
// task not yet notified today. Send failures are logged, never
// surfaced; the scan is read-only with respect to the forest. It
// returns the number of notifications raised.
func (r *Reminder) Check(f task.Forest, now time.Time) int {
	if !r.notifier.IsSupported() {
		return 0
	}

	today := now.Format("2006-01-02")
	sent := 0
	for _, t := range DueSoon(f, now, r.window) {
		if r.notified[t.ID] == today {
			continue
		}

		msg := "Due " + t.DueDate.Format("Mon Jan 2 15:04")
		var err error
		if r.sound {
			err = r.notifier.SendWithSound(t.Text, msg)
		} else {
			err = r.notifier.Send(t.Text, msg)
		}
		if err != nil {
			r.logger.Warn("reminder failed", "task", t.ID, "err", err)
			continue
		}

		r.notified[t.ID] = today
		sent++
	}
	return sent
}
