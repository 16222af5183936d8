package document

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrapTextShortLine(t *testing.T) {
	got := wrapText("Furnace filter", 50)
	if !reflect.DeepEqual(got, []string{"Furnace filter"}) {
		t.Fatalf("unexpected wrap: %v", got)
	}
}

func TestWrapTextBreaksOnWords(t *testing.T) {
	got := wrapText("replace condenser fan motor and capacitor", 20)
	want := []string{"replace condenser", "fan motor and", "capacitor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, line := range got {
		if len(line) > 20 {
			t.Fatalf("line over budget: %q", line)
		}
	}
}

func TestWrapTextHardBreaksLongWords(t *testing.T) {
	got := wrapText("abcdefghijklmnopqrstuvwxyz", 10)
	want := []string{"abcdefghij", "klmnopqrst", "uvwxyz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWrapTextCountsCharactersNotBytes(t *testing.T) {
	// 40 em dashes are 120 bytes but 40 characters, under a 50-char budget.
	word := strings.Repeat("—", 40)
	got := wrapText(word, 50)
	if !reflect.DeepEqual(got, []string{word}) {
		t.Fatalf("expected a single line, got %d: %v", len(got), got)
	}

	got = wrapText(strings.Repeat("é", 12), 10)
	want := []string{strings.Repeat("é", 10), strings.Repeat("é", 2)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, line := range got {
		if !utf8.ValidString(line) {
			t.Fatalf("hard break split a rune: %q", line)
		}
	}
}

func TestWrapTextCollapsesWhitespace(t *testing.T) {
	got := wrapText("  two   words \n here ", 50)
	if !reflect.DeepEqual(got, []string{"two words here"}) {
		t.Fatalf("unexpected wrap: %v", got)
	}
}

func TestWrapTextEmpty(t *testing.T) {
	if got := wrapText("   ", 50); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestWrapTextNoContentLoss(t *testing.T) {
	input := "seasonal maintenance on two rooftop units including coil cleaning and refrigerant check"
	lines := wrapText(input, 25)
	joined := ""
	for i, line := range lines {
		if i > 0 {
			joined += " "
		}
		joined += line
	}
	if joined != input {
		t.Fatalf("content changed by wrapping:\n  in:  %q\n  out: %q", input, joined)
	}
}
