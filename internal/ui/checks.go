package ui

import "github.com/pterm/pterm"

// CheckStatus is the outcome of one doctor check.
type CheckStatus int

const (
	CheckPass CheckStatus = iota
	CheckWarn
	CheckFail
	// CheckSkip marks a check whose setting is unset, such as build_tempdir.
	CheckSkip
)

var checkMarks = map[CheckStatus]string{
	CheckPass: "✓",
	CheckWarn: "!",
	CheckFail: "✗",
	CheckSkip: "-",
}

// Mark returns the colored status mark printed before a check line.
func (s CheckStatus) Mark() string {
	mark := checkMarks[s]
	switch s {
	case CheckPass:
		return pterm.FgGreen.Sprint(mark)
	case CheckWarn:
		return pterm.FgYellow.Sprint(mark)
	case CheckFail:
		return pterm.FgRed.Sprint(mark)
	default:
		return mark
	}
}

// FormatCheck renders a doctor line as "<mark> <name>: <detail>". Skipped
// checks are dimmed as a whole.
func FormatCheck(status CheckStatus, name, detail string) string {
	line := name
	if detail != "" {
		line += ": " + detail
	}
	if status == CheckSkip {
		return Dim(checkMarks[CheckSkip] + " " + line)
	}
	return status.Mark() + " " + line
}

// FormatLabel renders a "label: value" line for config and doctor headers.
func FormatLabel(label, value string) string {
	return pterm.FgBlue.Sprint(label+":") + " " + value
}

func Dim(text string) string {
	return pterm.FgGray.Sprint(text)
}

// Code highlights a command line or option string.
func Code(text string) string {
	return pterm.FgCyan.Sprint(text)
}
