// Package model defines shared data structures.
package model

import "time"

// Config defines practice settings.
type Config struct {
	TextPath string
	Exercise string
	WidthPct float64
	Remap    bool
	Preview  bool
}

// Exercise is a named block of practice text.
type Exercise struct {
	Name string
	Text string
}

// ExerciseInfo describes a stored exercise without its body.
type ExerciseInfo struct {
	ID         int64
	Name       string
	Words      int
	SourcePath string
	ImportedAt time.Time
}

// SessionSummary captures a completed typing session.
type SessionSummary struct {
	StartedAt time.Time
	EndedAt   time.Time
	Chars     int
	Words     int
	Lines     int
	WPM       float64
	LineWPMs  []float64
}

// DurationMs returns the session duration in milliseconds.
func (s SessionSummary) DurationMs() int64 {
	return s.EndedAt.Sub(s.StartedAt).Milliseconds()
}
