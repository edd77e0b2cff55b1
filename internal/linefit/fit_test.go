package linefit

import (
	"reflect"
	"testing"
)

func runeLen(s string) int {
	return len([]rune(s))
}

func TestFitPacksWholeWords(t *testing.T) {
	words := []string{"one", "two", "three", "four"}

	got := Fit(words, 10, runeLen, 1)
	want := []string{"one", "two"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestFitExactBudget(t *testing.T) {
	words := []string{"ab", "cd", "ef"}

	// "ab cd ef" is exactly 8 wide.
	got := Fit(words, 8, runeLen, 1)
	if len(got) != 3 {
		t.Fatalf("expected all 3 words at exact budget, got %v", got)
	}
}

func TestFitForwardProgress(t *testing.T) {
	words := []string{"unfittablyenormous", "b"}

	got := Fit(words, 4, runeLen, 1)
	if len(got) != 1 || got[0] != "unfittablyenormous" {
		t.Fatalf("expected single oversized word, got %v", got)
	}
}

func TestFitZeroBudget(t *testing.T) {
	got := Fit([]string{"a", "b"}, 0, runeLen, 1)
	if len(got) != 1 {
		t.Fatalf("expected one word on zero budget, got %v", got)
	}
}

func TestFitEmptyPool(t *testing.T) {
	if got := Fit(nil, 80, runeLen, 1); got != nil {
		t.Fatalf("expected nil for empty pool, got %v", got)
	}
}

func TestMinWordsToPreserve(t *testing.T) {
	cases := []struct {
		flat   string
		cursor int
		want   int
	}{
		{"abc def", 0, 0},
		{"abc def", 1, 1},
		{"abc def", 3, 1},
		{"abc def", 4, 1},
		{"abc def", 5, 2},
		{"abc def", 7, 2},
		{"abc def", 99, 2},
		{"", 3, 0},
	}
	for _, tc := range cases {
		if got := MinWordsToPreserve(tc.flat, tc.cursor); got != tc.want {
			t.Errorf("MinWordsToPreserve(%q, %d) = %d, want %d", tc.flat, tc.cursor, got, tc.want)
		}
	}
}

func TestRefitNeverShortensBelowTyped(t *testing.T) {
	words := []string{"one", "two", "three"}
	flat := "one two three"
	cursor := 9 // inside "three"

	got := Refit(words, 3, runeLen, 1, flat, cursor)
	if len(got) != 3 {
		t.Fatalf("expected all typed words preserved on shrink, got %v", got)
	}
}

func TestRefitGrowsWithBudget(t *testing.T) {
	words := []string{"one", "two", "three"}

	got := Refit(words, 13, runeLen, 1, "one", 2)
	if len(got) != 3 {
		t.Fatalf("expected all words to fit wider budget, got %v", got)
	}
}

func TestRefitClampsToPool(t *testing.T) {
	words := []string{"one"}

	got := Refit(words, 80, runeLen, 1, "one two", 7)
	if len(got) != 1 {
		t.Fatalf("expected clamp to pool length, got %v", got)
	}
}
