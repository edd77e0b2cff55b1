// Package engine implements the typing session state machine.
package engine

import (
	"strings"
	"time"

	"github.com/torusk/Dvorak-Typing/internal/model"
	"github.com/torusk/Dvorak-Typing/internal/stats"
)

// State is the lifecycle phase of a session.
type State uint8

// Session states.
const (
	StateNoText State = iota
	StateInProgress
	StateLineComplete
	StateSessionComplete
)

// Mark is the per-character correctness state of the current line.
type Mark uint8

// Character marks.
const (
	MarkPending Mark = iota
	MarkCorrect
	MarkWrong
)

// Signal tells the presenter what an input operation did.
type Signal uint8

// Input signals.
const (
	SignalIgnore Signal = iota
	SignalCorrect
	SignalWrong
	SignalSkipWord
	SignalAdvanceLine
	SignalDelete
)

// Session owns all mutable typing state for one practice run. It is not
// safe for concurrent use; create one Session per client.
type Session struct {
	words  []string
	offset int

	line      []rune
	lineWords int
	cursor    int
	marks     []Mark

	startedAt time.Time
	endedAt   time.Time
	lineTimes []time.Time

	now func() time.Time
}

// NewSession returns an empty session in the no-text state.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// SetClock overrides the session clock. Intended for tests.
func (s *Session) SetClock(now func() time.Time) {
	s.now = now
}

// LoadText normalizes text into source words and resets all session state.
func (s *Session) LoadText(text string) {
	s.words = strings.Fields(text)
	s.offset = 0
	s.line = nil
	s.lineWords = 0
	s.cursor = 0
	s.marks = nil
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	s.lineTimes = nil
}

// State reports the current lifecycle phase.
func (s *Session) State() State {
	switch {
	case len(s.words) == 0:
		return StateNoText
	case s.offset >= len(s.words):
		return StateSessionComplete
	case len(s.line) > 0 && s.cursor == len(s.line):
		return StateLineComplete
	default:
		return StateInProgress
	}
}

// SetCurrentLine installs the fitter's output as the active line. The
// cursor is capped to the new length and marks left of it are seeded
// correct: a re-fit does not re-validate history, prior input stands.
func (s *Session) SetCurrentLine(words []string) {
	s.lineWords = len(words)
	s.line = []rune(strings.Join(words, " "))
	if s.cursor > len(s.line) {
		s.cursor = len(s.line)
	}
	s.marks = make([]Mark, len(s.line))
	for i := 0; i < s.cursor; i++ {
		s.marks[i] = MarkCorrect
	}
}

// InputChar compares r against the expected character under the cursor.
func (s *Session) InputChar(r rune) Signal {
	if len(s.line) == 0 || s.State() == StateSessionComplete {
		return SignalIgnore
	}
	if s.cursor >= len(s.line) {
		return SignalIgnore
	}
	s.startTiming()
	if r == s.line[s.cursor] {
		s.marks[s.cursor] = MarkCorrect
		s.cursor++
		return SignalCorrect
	}
	s.marks[s.cursor] = MarkWrong
	return SignalWrong
}

// InputSpace handles the space key: a plain match when a space is
// expected, a line-advance request at line end, and a word-skip mid-word.
func (s *Session) InputSpace() Signal {
	if len(s.line) == 0 || s.State() == StateSessionComplete {
		return SignalIgnore
	}
	if s.cursor >= len(s.line) {
		return SignalAdvanceLine
	}
	if s.line[s.cursor] == ' ' {
		return s.InputChar(' ')
	}
	return s.skipWord()
}

// skipWord marks the rest of the current word wrong and jumps the cursor
// past the next space. Characters already marked correct keep their mark.
func (s *Session) skipWord() Signal {
	s.startTiming()
	i := s.cursor
	for i < len(s.line) && s.line[i] != ' ' {
		if s.marks[i] != MarkCorrect {
			s.marks[i] = MarkWrong
		}
		i++
	}
	if i < len(s.line) {
		s.marks[i] = MarkCorrect
		s.cursor = i + 1
	} else {
		s.cursor = len(s.line)
	}
	return SignalSkipWord
}

// Backspace clears a wrong mark in place first; otherwise it steps the
// cursor back and clears the mark it lands on.
func (s *Session) Backspace() Signal {
	if len(s.line) == 0 {
		return SignalIgnore
	}
	if s.cursor < len(s.line) && s.marks[s.cursor] == MarkWrong {
		s.marks[s.cursor] = MarkPending
		return SignalDelete
	}
	if s.cursor > 0 {
		s.cursor--
		s.marks[s.cursor] = MarkPending
		return SignalDelete
	}
	return SignalIgnore
}

// AdvanceLine consumes the completed line's words from the source. When
// the source is exhausted it captures the end timestamp; the caller should
// otherwise fit and install the next line.
func (s *Session) AdvanceLine() {
	if s.lineWords == 0 || s.offset >= len(s.words) {
		return
	}
	s.offset += s.lineWords
	if s.offset > len(s.words) {
		s.offset = len(s.words)
	}
	s.lineTimes = append(s.lineTimes, s.now())
	s.line = nil
	s.lineWords = 0
	s.cursor = 0
	s.marks = nil
	if s.offset >= len(s.words) {
		s.endedAt = s.lineTimes[len(s.lineTimes)-1]
	}
}

// Line returns the current flat line.
func (s *Session) Line() string {
	return string(s.line)
}

// Cursor returns the rune offset into the current line.
func (s *Session) Cursor() int {
	return s.cursor
}

// Marks returns a copy of the per-character marks.
func (s *Session) Marks() []Mark {
	out := make([]Mark, len(s.marks))
	copy(out, s.marks)
	return out
}

// LineWordCount returns the number of words in the current line.
func (s *Session) LineWordCount() int {
	return s.lineWords
}

// WordOffset returns the index of the first unconsumed source word.
func (s *Session) WordOffset() int {
	return s.offset
}

// Remaining returns the unconsumed word pool.
func (s *Session) Remaining() []string {
	if s.offset >= len(s.words) {
		return nil
	}
	return s.words[s.offset:]
}

// WordCount returns the total number of source words.
func (s *Session) WordCount() int {
	return len(s.words)
}

// RequiredChars is the rune length of the full space-joined source text,
// the character total the WPM formula divides by five.
func (s *Session) RequiredChars() int {
	if len(s.words) == 0 {
		return 0
	}
	return len([]rune(strings.Join(s.words, " ")))
}

// Started reports whether the first keystroke has been accepted.
func (s *Session) Started() bool {
	return !s.startedAt.IsZero()
}

// Summary returns completion statistics once the session is complete.
func (s *Session) Summary() (model.SessionSummary, bool) {
	if s.State() != StateSessionComplete || s.startedAt.IsZero() || s.endedAt.IsZero() {
		return model.SessionSummary{}, false
	}
	chars := s.RequiredChars()
	sum := model.SessionSummary{
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Chars:     chars,
		Words:     len(s.words),
		Lines:     len(s.lineTimes),
		WPM:       stats.SessionMetrics(chars, s.endedAt.Sub(s.startedAt).Milliseconds()),
		LineWPMs:  s.lineWPMs(),
	}
	return sum, true
}

// lineWPMs derives a per-line WPM series from line completion times.
// Line character counts are approximated by an even split of the total;
// the series only feeds the completion sparkline.
func (s *Session) lineWPMs() []float64 {
	if len(s.lineTimes) == 0 || s.startedAt.IsZero() {
		return nil
	}
	perLine := float64(s.RequiredChars()) / float64(len(s.lineTimes))
	out := make([]float64, len(s.lineTimes))
	prev := s.startedAt
	for i, at := range s.lineTimes {
		ms := at.Sub(prev).Milliseconds()
		out[i] = stats.SessionMetrics(int(perLine), ms)
		prev = at
	}
	return out
}

func (s *Session) startTiming() {
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}
}
