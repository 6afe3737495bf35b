package output

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"weathercheck/internal/report"
	"weathercheck/internal/rules"

	"github.com/fatih/color"
)

const (
	nameWidth      = 40
	statusWidth    = 10
	separatorWidth = 70
)

type TableOptions struct {
	// Color paints the status column. Padding is computed on the plain text.
	Color bool
}

// RenderTable writes the summary table for rep. It does not modify rep, and
// rendering the same report twice yields identical bytes.
func RenderTable(w io.Writer, rep *report.Report, opts TableOptions) error {
	var b strings.Builder
	b.WriteString("\nTest Results Summary:\n")
	b.WriteString(row("Test Name", "Result", "Expected Message", nil))
	b.WriteString(strings.Repeat("=", separatorWidth))
	b.WriteString("\n")
	for _, o := range rep.Outcomes() {
		var paint *color.Color
		if opts.Color {
			paint = statusColor(o.Status)
		}
		b.WriteString(row(o.Name, string(o.Status), o.Expectation, paint))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return flushIfPossible(w)
}

func row(name, status, message string, paint *color.Color) string {
	tag := status
	if paint != nil {
		tag = paint.Sprint(status)
	}
	return fmt.Sprintf("%s %s%s %s\n", padRight(name, nameWidth), tag, padding(status, statusWidth), message)
}

// padRight widens s to width runes and never truncates.
func padRight(s string, width int) string {
	return s + padding(s, width)
}

func padding(s string, width int) string {
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

func statusColor(s rules.Status) *color.Color {
	var c *color.Color
	switch s {
	case rules.StatusPass:
		c = color.New(color.FgGreen)
	case rules.StatusFail:
		c = color.New(color.FgRed)
	case rules.StatusError:
		c = color.New(color.FgRed, color.Bold)
	case rules.StatusSkip:
		c = color.New(color.FgYellow)
	default:
		return nil
	}
	// Force color: the caller already decided the target is a terminal.
	c.EnableColor()
	return c
}
