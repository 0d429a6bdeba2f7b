package ui

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogInfo  = "dialog-information"
	IconDialogWarn  = "dialog-warning"

	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

// Notifier delivers a desktop notification
type Notifier func(urgency, title, text, icon string)

var (
	notifierMu sync.Mutex
	notifier   Notifier = NotifySend
)

// SetNotifier replaces the notification backend and returns the previous one
func SetNotifier(n Notifier) Notifier {
	notifierMu.Lock()
	defer notifierMu.Unlock()
	previous := notifier
	notifier = n
	return previous
}

func notify(urgency, title, text, icon string) {
	notifierMu.Lock()
	n := notifier
	notifierMu.Unlock()
	if n != nil {
		n(urgency, title, text, icon)
	}
}

func NotifyInfo(title, text string) {
	notify(UrgencyLow, title, text, IconDialogInfo)
}

func NotifyWarn(title, text string) {
	notify(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	notify(UrgencyCritical, title, text, IconDialogError)
}

// NotifySend shows a notification in the desktop session of the user owning $DISPLAY.
// The daemon usually runs as root, so notify-send is executed as that user.
func NotifySend(urgency, title, text, icon string) {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		Debug("Not sending notification '%s', no display session", title)
		return
	}

	user, userId, err := findSessionUser(display)
	if err != nil {
		Warning("Cannot send notification: %v", err)
		return
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", "boost2go",
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	if err := cmd.Run(); err != nil {
		Error("Error sending notification: %v", err)
	}
}

// findSessionUser returns name and id of the user logged in on the given display
func findSessionUser(display string) (user string, userId string, err error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", "", fmt.Errorf("unable to list sessions: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			user = fields[0]
			break
		}
	}
	if len(user) <= 0 {
		return "", "", errors.New("no user found for display " + display)
	}

	output, err = exec.Command("id", "-u", user).Output()
	userId = strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		return "", "", fmt.Errorf("unable to detect id of user %s: %v", user, err)
	}
	return user, userId, nil
}
