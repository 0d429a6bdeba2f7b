package ui

import (
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

type notification struct {
	urgency string
	title   string
	text    string
	icon    string
}

func recordNotifications(t *testing.T) *[]notification {
	var result []notification
	previous := SetNotifier(func(urgency, title, text, icon string) {
		result = append(result, notification{urgency: urgency, title: title, text: text, icon: icon})
	})
	t.Cleanup(func() {
		SetNotifier(previous)
	})
	return &result
}

func TestWarningAndNotify(t *testing.T) {
	// GIVEN
	pterm.DisableOutput()
	defer pterm.EnableOutput()
	notifications := recordNotifications(t)

	// WHEN
	WarningAndNotify("Boost disabled", "voltage %.2f above %.2f", 1.51, 1.45)

	// THEN
	assert.Equal(t, []notification{
		{urgency: UrgencyNormal, title: "Boost disabled", text: "voltage 1.51 above 1.45", icon: IconDialogWarn},
	}, *notifications)
}

func TestInfoAndNotify(t *testing.T) {
	// GIVEN
	pterm.DisableOutput()
	defer pterm.EnableOutput()
	notifications := recordNotifications(t)

	// WHEN
	InfoAndNotify("Boost enabled", "voltage recovered")

	// THEN
	assert.Len(t, *notifications, 1)
	assert.Equal(t, UrgencyLow, (*notifications)[0].urgency)
	assert.Equal(t, IconDialogInfo, (*notifications)[0].icon)
}

func TestErrorAndNotify(t *testing.T) {
	// GIVEN
	pterm.DisableOutput()
	defer pterm.EnableOutput()
	notifications := recordNotifications(t)

	// WHEN
	ErrorAndNotify("Config Validation Error", "duplicate sensor id")

	// THEN
	assert.Len(t, *notifications, 1)
	assert.Equal(t, UrgencyCritical, (*notifications)[0].urgency)
}

func TestNotifySend_WithoutDisplay(t *testing.T) {
	// GIVEN
	t.Setenv("DISPLAY", "")
	_ = os.Unsetenv("DISPLAY")

	// WHEN / THEN
	assert.NotPanics(t, func() {
		NotifySend(UrgencyLow, "title", "text", IconDialogInfo)
	})
}
