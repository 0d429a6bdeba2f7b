package ui

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

func SetDebugEnabled(enabled bool) {
	pterm.PrintDebugMessages = enabled
}

func IsDebugEnabled() bool {
	return pterm.PrintDebugMessages
}

func Printf(format string, a ...interface{}) {
	pterm.Printf(format, a...)
}

func Printfln(format string, a ...interface{}) {
	pterm.Printfln(format, a...)
}

func Debug(format string, a ...interface{}) {
	pterm.Debug.Printfln(format, a...)
}

func Info(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// InfoAndNotify prints an info message and forwards it as a desktop notification
func InfoAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Info("%s: %s", title, text)
	NotifyInfo(title, text)
}

func Success(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

func Warning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// WarningAndNotify prints a warning and forwards it as a desktop notification
func WarningAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Warning("%s: %s", title, text)
	NotifyWarn(title, text)
}

func Error(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// ErrorAndNotify prints an error and forwards it as a desktop notification
func ErrorAndNotify(title string, format string, a ...interface{}) {
	text := fmt.Sprintf(format, a...)
	Error("%s: %s", title, text)
	NotifyError(title, text)
}

func Fatal(format string, a ...interface{}) {
	pterm.Fatal.Printfln(format, a...)
}

// FatalWithoutStacktrace prints the message and exits without the
// stacktrace pterm.Fatal would print in debug mode
func FatalWithoutStacktrace(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
	os.Exit(1)
}
