// Package notify sends desktop reminders for todos that are due.
package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/dori/jotlist/internal/model"
	"github.com/dori/jotlist/internal/view"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string
}

// Runner executes a command. Swapped out in tests.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier sends notifications through notify-send
type Notifier struct {
	run Runner
}

// NewNotifier creates a notifier that shells out to notify-send
func NewNotifier() *Notifier {
	return &Notifier{run: execRunner}
}

// NewNotifierWithRunner creates a notifier that hands its commands to run
func NewNotifierWithRunner(run Runner) *Notifier {
	return &Notifier{run: run}
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	return n.run("notify-send", Args(notification)...)
}

// Args returns the notify-send arguments for notification
func Args(notification Notification) []string {
	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// notify-send takes milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "jotlist")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}
	return args
}

// Due returns the active todos with a deadline before now+within,
// soonest first. Overdue todos are always included.
func Due(todos []model.Todo, now time.Time, within time.Duration) []model.Todo {
	cutoff := now.Add(within)
	due := []model.Todo{}
	for _, t := range view.Sort(todos, view.SortByDeadline, view.Asc) {
		if t.Completed || t.Deadline == nil {
			continue
		}
		if t.Deadline.After(cutoff) {
			break
		}
		due = append(due, t)
	}
	return due
}

// Reminder builds the notification for a due todo
func Reminder(t model.Todo, now time.Time) Notification {
	dueIn := time.Duration(0)
	if t.Deadline != nil {
		dueIn = t.Deadline.Sub(now)
	}

	var body string
	switch {
	case dueIn <= 0:
		body = "Overdue!"
	case dueIn < time.Hour:
		body = "Due in less than an hour"
	default:
		body = "Due " + t.Deadline.Local().Format("Mon Jan 2 15:04")
	}

	urgency := UrgencyNormal
	if dueIn <= 0 || t.Priority == model.PriorityHigh {
		urgency = UrgencyCritical
	}

	return Notification{
		Title:   t.Text,
		Body:    body,
		Urgency: urgency,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	}
}

// RemindDue sends one reminder per due todo and returns how many were sent.
// It stops at the first failure.
func (n *Notifier) RemindDue(todos []model.Todo, now time.Time, within time.Duration) (int, error) {
	sent := 0
	for _, t := range Due(todos, now, within) {
		if err := n.Send(Reminder(t, now)); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}
