package stats

import (
	"fmt"
	"io"

	"github.com/torusk/Dvorak-Typing/internal/model"
)

// RenderSummary prints a completion summary for a finished session.
func RenderSummary(w io.Writer, sum model.SessionSummary) error {
	if _, err := fmt.Fprintln(w, "Session complete"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time: %s\n", FormatDuration(sum.DurationMs())); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Speed: %.1f WPM\n", sum.WPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Typed: %d chars, %d words, %d lines\n", sum.Chars, sum.Words, sum.Lines); err != nil {
		return err
	}
	if len(sum.LineWPMs) > 1 {
		curve := MovingAverage(sum.LineWPMs, 2)
		if _, err := fmt.Fprintf(w, "Per-line: %s\n", Sparkline(curve)); err != nil {
			return err
		}
	}
	return nil
}
