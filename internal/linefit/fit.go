// Package linefit packs words into viewport-sized lines.
package linefit

import "strings"

// MeasureFunc maps a word (or a single space) to its rendered width.
// Measurement is injected so the fitter stays independent of any
// rendering stack.
type MeasureFunc func(string) int

// Fit greedily accumulates words left-to-right until the next word would
// exceed limit. The cumulative width is width(first word), then running
// total + spaceWidth + width(next word) for each subsequent word.
//
// A non-empty pool always yields at least one word, even when that single
// word is wider than limit. This guarantees forward progress and keeps a
// zero or negative budget (layout not yet established) from producing an
// empty, stuck line.
func Fit(words []string, limit int, measure MeasureFunc, spaceWidth int) []string {
	if len(words) == 0 {
		return nil
	}
	count := 1
	total := measure(words[0])
	for _, word := range words[1:] {
		next := total + spaceWidth + measure(word)
		if next > limit {
			break
		}
		total = next
		count++
	}
	return words[:count]
}

// MinWordsToPreserve counts the whitespace-delimited words fully or
// partially covered by the first cursor runes of flat. A re-fit uses this
// as a floor so the line is never shortened past what has already been
// typed.
func MinWordsToPreserve(flat string, cursor int) int {
	if cursor <= 0 {
		return 0
	}
	runes := []rune(flat)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return len(strings.Fields(string(runes[:cursor])))
}

// Refit recomputes the line for a new budget while preserving typed
// progress: keep = max(MinWordsToPreserve, len(Fit)), clamped to the pool.
func Refit(words []string, limit int, measure MeasureFunc, spaceWidth int, flat string, cursor int) []string {
	if len(words) == 0 {
		return nil
	}
	keep := len(Fit(words, limit, measure, spaceWidth))
	if floor := MinWordsToPreserve(flat, cursor); floor > keep {
		keep = floor
	}
	if keep > len(words) {
		keep = len(words)
	}
	return words[:keep]
}
