package engine

import (
	"math"
	"testing"
	"time"
)

func newTestSession(text string, lineWords ...string) *Session {
	s := NewSession()
	s.LoadText(text)
	if len(lineWords) > 0 {
		s.SetCurrentLine(lineWords)
	}
	return s
}

func TestLoadTextNormalizes(t *testing.T) {
	s := NewSession()
	s.LoadText("  the \n quick\t brown  fox ")
	if s.WordCount() != 4 {
		t.Fatalf("expected 4 words, got %d", s.WordCount())
	}
	if s.State() != StateInProgress {
		t.Fatalf("expected in-progress state, got %v", s.State())
	}
	if s.RequiredChars() != 19 {
		t.Fatalf("expected 19 required chars, got %d", s.RequiredChars())
	}
}

func TestLoadTextEmpty(t *testing.T) {
	s := NewSession()
	s.LoadText("   \n ")
	if s.State() != StateNoText {
		t.Fatalf("expected no-text state, got %v", s.State())
	}
	if s.InputChar('a') != SignalIgnore {
		t.Fatalf("expected ignore with no text")
	}
}

func TestInputCharMatchDeterminism(t *testing.T) {
	s := newTestSession("abc", "abc")

	if got := s.InputChar('a'); got != SignalCorrect {
		t.Fatalf("expected correct signal, got %v", got)
	}
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor 1, got %d", s.Cursor())
	}
	if s.Marks()[0] != MarkCorrect {
		t.Fatalf("expected correct mark at 0")
	}

	if got := s.InputChar('x'); got != SignalWrong {
		t.Fatalf("expected wrong signal, got %v", got)
	}
	if s.Cursor() != 1 {
		t.Fatalf("mismatch must not advance cursor, got %d", s.Cursor())
	}
	if s.Marks()[1] != MarkWrong {
		t.Fatalf("expected wrong mark at 1")
	}
}

func TestInputCharIgnoredAtLineEnd(t *testing.T) {
	s := newTestSession("ab cd", "ab")
	s.InputChar('a')
	s.InputChar('b')
	if s.State() != StateLineComplete {
		t.Fatalf("expected line-complete state, got %v", s.State())
	}
	if got := s.InputChar('x'); got != SignalIgnore {
		t.Fatalf("expected ignore at line end, got %v", got)
	}
}

func TestInputSpaceAtLineEnd(t *testing.T) {
	s := newTestSession("ab cd", "ab")
	s.InputChar('a')
	s.InputChar('b')
	if got := s.InputSpace(); got != SignalAdvanceLine {
		t.Fatalf("expected advance-line signal, got %v", got)
	}
}

func TestInputSpaceOnExpectedSpace(t *testing.T) {
	s := newTestSession("a b", "a", "b")
	s.InputChar('a')
	if got := s.InputSpace(); got != SignalCorrect {
		t.Fatalf("expected correct signal for literal space, got %v", got)
	}
	if s.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", s.Cursor())
	}
}

func TestSkipWord(t *testing.T) {
	s := newTestSession("abc def", "abc", "def")
	s.InputChar('a')

	if got := s.InputSpace(); got != SignalSkipWord {
		t.Fatalf("expected skip-word signal, got %v", got)
	}
	marks := s.Marks()
	if marks[1] != MarkWrong || marks[2] != MarkWrong {
		t.Fatalf("expected skipped chars marked wrong, got %v", marks)
	}
	if marks[3] != MarkCorrect {
		t.Fatalf("expected skipped-to space marked correct, got %v", marks)
	}
	if s.Cursor() != 4 {
		t.Fatalf("expected cursor 4, got %d", s.Cursor())
	}
}

func TestSkipWordPreservesCorrectMarks(t *testing.T) {
	s := newTestSession("abc def", "abc", "def")
	s.InputChar('a')
	// A correct mark ahead of the cursor survives the skip's blanket
	// wrong-marking.
	s.marks[2] = MarkCorrect

	s.InputSpace()
	marks := s.Marks()
	if marks[1] != MarkWrong {
		t.Fatalf("expected skipped char marked wrong, got %v", marks[1])
	}
	if marks[2] != MarkCorrect {
		t.Fatalf("skip must preserve a prior correct mark, got %v", marks[2])
	}
}

func TestSkipWordNoTrailingSpace(t *testing.T) {
	s := newTestSession("abc", "abc")
	s.InputChar('a')
	if got := s.InputSpace(); got != SignalSkipWord {
		t.Fatalf("expected skip-word signal, got %v", got)
	}
	if s.Cursor() != 3 {
		t.Fatalf("expected cursor at line end, got %d", s.Cursor())
	}
}

func TestBackspaceClearsWrongMarkInPlace(t *testing.T) {
	s := newTestSession("ab", "ab")
	s.InputChar('a')
	s.InputChar('x')

	if got := s.Backspace(); got != SignalDelete {
		t.Fatalf("expected delete signal, got %v", got)
	}
	if s.Cursor() != 1 {
		t.Fatalf("clearing a wrong mark must not move the cursor, got %d", s.Cursor())
	}
	if s.Marks()[1] != MarkPending {
		t.Fatalf("expected pending mark after clear")
	}

	// Second backspace steps back over the correct 'a'.
	if got := s.Backspace(); got != SignalDelete {
		t.Fatalf("expected delete signal, got %v", got)
	}
	if s.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", s.Cursor())
	}
	if s.Marks()[0] != MarkPending {
		t.Fatalf("expected pending mark at 0")
	}

	if got := s.Backspace(); got != SignalIgnore {
		t.Fatalf("expected ignore at cursor 0, got %v", got)
	}
}

func TestCursorPreservedUnderRefit(t *testing.T) {
	s := newTestSession("one two three", "one", "two")
	for _, r := range "one t" {
		s.InputChar(r)
	}
	if s.Cursor() != 5 {
		t.Fatalf("expected cursor 5, got %d", s.Cursor())
	}

	s.SetCurrentLine([]string{"one", "two", "three"})
	if s.Cursor() != 5 {
		t.Fatalf("expected cursor preserved at 5, got %d", s.Cursor())
	}
	marks := s.Marks()
	for i := 0; i < 5; i++ {
		if marks[i] != MarkCorrect {
			t.Fatalf("expected mark %d correct after re-fit, got %v", i, marks[i])
		}
	}
	for i := 5; i < len(marks); i++ {
		if marks[i] != MarkPending {
			t.Fatalf("expected mark %d pending after re-fit, got %v", i, marks[i])
		}
	}
}

func TestRefitCapsCursorToShorterLine(t *testing.T) {
	s := newTestSession("one two", "one", "two")
	for _, r := range "one tw" {
		s.InputChar(r)
	}
	s.SetCurrentLine([]string{"one"})
	if s.Cursor() != 3 {
		t.Fatalf("expected cursor capped to 3, got %d", s.Cursor())
	}
}

func TestMonotonicConsumption(t *testing.T) {
	s := newTestSession("a b c d")
	s.SetCurrentLine([]string{"a", "b"})
	s.AdvanceLine()
	if s.WordOffset() != 2 {
		t.Fatalf("expected offset 2, got %d", s.WordOffset())
	}
	s.SetCurrentLine([]string{"c"})
	s.AdvanceLine()
	if s.WordOffset() != 3 {
		t.Fatalf("expected offset 3, got %d", s.WordOffset())
	}
	s.SetCurrentLine([]string{"d"})
	s.AdvanceLine()
	if s.WordOffset() != 4 {
		t.Fatalf("expected offset 4, got %d", s.WordOffset())
	}
	if s.State() != StateSessionComplete {
		t.Fatalf("expected session-complete, got %v", s.State())
	}
	// Further advances never move the offset.
	s.AdvanceLine()
	if s.WordOffset() != 4 {
		t.Fatalf("offset must not move past source length, got %d", s.WordOffset())
	}
}

func TestLazyTimingStartsOnFirstKeystroke(t *testing.T) {
	s := newTestSession("ab", "ab")
	if s.Started() {
		t.Fatalf("timing must not start before input")
	}
	s.InputChar('x') // mismatch still starts the clock
	if !s.Started() {
		t.Fatalf("timing must start on first accepted keystroke")
	}
}

func TestWPMScenario(t *testing.T) {
	s := NewSession()
	base := time.Unix(100, 0)
	current := base
	s.SetClock(func() time.Time { return current })

	s.LoadText("the quick brown fox")
	s.SetCurrentLine([]string{"the", "quick", "brown", "fox"})
	for _, r := range "the quick brown fox" {
		if got := s.InputChar(r); got != SignalCorrect {
			t.Fatalf("expected correct signal for %q, got %v", r, got)
		}
	}
	current = base.Add(12 * time.Second)
	if got := s.InputSpace(); got != SignalAdvanceLine {
		t.Fatalf("expected advance-line, got %v", got)
	}
	s.AdvanceLine()

	sum, ok := s.Summary()
	if !ok {
		t.Fatalf("expected completion summary")
	}
	if math.Abs(sum.WPM-19.0) > 1e-9 {
		t.Fatalf("expected 19.0 WPM, got %v", sum.WPM)
	}
	if sum.Chars != 19 {
		t.Fatalf("expected 19 chars, got %d", sum.Chars)
	}
}

func TestCompletionScenario(t *testing.T) {
	s := newTestSession("a b", "a", "b")
	s.InputChar('a')
	s.InputSpace()
	s.InputChar('b')
	if got := s.InputSpace(); got != SignalAdvanceLine {
		t.Fatalf("expected advance-line at line end, got %v", got)
	}
	s.AdvanceLine()

	if s.WordOffset() != 2 {
		t.Fatalf("expected word offset 2, got %d", s.WordOffset())
	}
	if s.State() != StateSessionComplete {
		t.Fatalf("expected session-complete, got %v", s.State())
	}
	if _, ok := s.Summary(); !ok {
		t.Fatalf("expected non-null completion summary")
	}
	if s.Remaining() != nil {
		t.Fatalf("expected no remaining words")
	}
}

func TestSummaryUnavailableMidSession(t *testing.T) {
	s := newTestSession("a b", "a")
	if _, ok := s.Summary(); ok {
		t.Fatalf("summary must be unavailable before completion")
	}
}
