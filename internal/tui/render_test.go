package tui

import (
	"strings"
	"testing"

	"github.com/torusk/Dvorak-Typing/internal/engine"
	"github.com/torusk/Dvorak-Typing/internal/model"
)

func TestRenderLineMarks(t *testing.T) {
	marks := []engine.Mark{engine.MarkCorrect, engine.MarkWrong, engine.MarkPending}
	out := renderLine("abc", marks, 2)

	if !strings.Contains(out, correctStyle.Render("a")) {
		t.Fatalf("expected correct style for 'a': %q", out)
	}
	if !strings.Contains(out, incorrectStyle.Render("b")) {
		t.Fatalf("expected incorrect style for 'b': %q", out)
	}
	if !strings.Contains(out, cursorStyle.Render("c")) {
		t.Fatalf("expected underlined pending style at cursor: %q", out)
	}
}

func TestRenderLineWrongSpaceDot(t *testing.T) {
	marks := []engine.Mark{engine.MarkCorrect, engine.MarkWrong, engine.MarkPending}
	out := renderLine("a b", marks, 2)
	if !strings.Contains(out, incorrectStyle.Render("·")) {
		t.Fatalf("expected dot for wrong space: %q", out)
	}
}

func TestRenderLineCursorPastEnd(t *testing.T) {
	marks := []engine.Mark{engine.MarkCorrect}
	out := renderLine("a", marks, 1)
	if !strings.Contains(out, correctStyle.Render("a")) {
		t.Fatalf("expected plain correct style when cursor is at line end: %q", out)
	}
}

func TestModelAdvancesThroughExercise(t *testing.T) {
	cfg := modelConfig()
	m := NewModel(cfg, exercise("a b"))
	m.width = 40
	m.height = 10
	m.refitLine()

	if m.session.Line() != "a b" {
		t.Fatalf("expected fitted line %q, got %q", "a b", m.session.Line())
	}
	m.handleRunes([]rune("a"))
	m.handleSpace()
	m.handleRunes([]rune("b"))
	m.handleSpace()

	sum, ok := m.Summary()
	if !ok {
		t.Fatalf("expected summary after completing exercise")
	}
	if sum.Words != 2 {
		t.Fatalf("expected 2 words in summary, got %d", sum.Words)
	}
}

func TestModelRefitPreservesCursor(t *testing.T) {
	m := NewModel(modelConfig(), exercise("one two three four"))
	m.width = 40
	m.height = 10
	m.refitLine()
	m.handleRunes([]rune("one t"))
	cursor := m.session.Cursor()

	m.width = 12
	m.refitLine()
	if m.session.Cursor() != cursor {
		t.Fatalf("expected cursor %d preserved across refit, got %d", cursor, m.session.Cursor())
	}
	marks := m.session.Marks()
	for i := 0; i < cursor; i++ {
		if marks[i] != engine.MarkCorrect {
			t.Fatalf("expected mark %d correct after refit", i)
		}
	}
}

func TestModelRemapResolvesRunes(t *testing.T) {
	cfg := modelConfig()
	cfg.Remap = true
	m := NewModel(cfg, exercise("hi"))
	m.width = 40
	m.height = 10
	m.refitLine()

	// QWERTY j and g produce Dvorak h and i.
	m.handleRunes([]rune("jg"))
	if m.session.Cursor() != 2 {
		t.Fatalf("expected both remapped chars accepted, cursor at 2, got %d", m.session.Cursor())
	}
}

func modelConfig() model.Config {
	return model.Config{WidthPct: 0.7, Preview: true}
}

func exercise(text string) model.Exercise {
	return model.Exercise{Name: "Test", Text: text}
}
