package ui

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	kxerrors "github.com/griffithind/kitchenx/internal/errors"
)

// ErrorFormatter provides consistent error formatting.
type ErrorFormatter struct {
	writer io.Writer
}

// NewErrorFormatter creates a new error formatter.
func NewErrorFormatter(w io.Writer) *ErrorFormatter {
	return &ErrorFormatter{
		writer: w,
	}
}

// Format formats an error for display.
func (f *ErrorFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	var kxErr *kxerrors.KXError
	if errors.As(err, &kxErr) {
		return f.formatKXError(kxErr)
	}

	return fmt.Sprintf("%s %s\n", CheckFail.Mark(), err.Error())
}

func (f *ErrorFormatter) formatKXError(err *kxerrors.KXError) string {
	var sb strings.Builder

	badge := pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold).
		Sprintf(" %s ", strings.ToUpper(string(err.Category)))
	sb.WriteString(badge)
	sb.WriteString(" ")
	sb.WriteString(pterm.FgRed.Sprint(err.Message))
	sb.WriteString("\n")

	if err.Cause != nil {
		sb.WriteString("\n")
		sb.WriteString(FormatLabel("Cause", err.Cause.Error()))
		sb.WriteString("\n")
	}

	if len(err.Context) > 0 {
		keys := make([]string, 0, len(err.Context))
		for k := range err.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString("\n")
		sb.WriteString(pterm.FgBlue.Sprint("Context"))
		sb.WriteString(":\n")
		for _, k := range keys {
			v := err.Context[k]
			// Build stderr is multi-line
			if strings.Contains(v, "\n") {
				v = "\n    " + strings.ReplaceAll(v, "\n", "\n    ")
			}
			sb.WriteString(fmt.Sprintf("  %s: %s\n", Dim(k), v))
		}
	}

	if err.Hint != "" {
		sb.WriteString("\n")
		sb.WriteString(pterm.FgCyan.Sprint("ℹ"))
		sb.WriteString(" ")
		sb.WriteString(Dim(err.Hint))
		sb.WriteString("\n")
	}

	return sb.String()
}

// Write writes a formatted error to the writer.
func (f *ErrorFormatter) Write(err error) {
	if err == nil {
		return
	}
	fmt.Fprint(f.writer, f.Format(err))
}

// PrintError prints a formatted error using the global configuration.
func PrintError(err error) {
	if err == nil {
		return
	}
	NewErrorFormatter(ErrWriter()).Write(err)
}

// ExitCode maps an error to a process exit code. A failed build exits
// with 2 so callers can tell it apart from usage and configuration errors.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case kxerrors.GetCategory(err) == kxerrors.CategoryBuild:
		return 2
	default:
		return 1
	}
}
