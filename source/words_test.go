package source

import (
	"testing"
)

func makeChar(text string, x0, top float64, upright bool) char {
	if upright {
		return char{text: text, x0: x0, x1: x0 + 5, top: top, bottom: top + 10, upright: true}
	}
	return char{text: text, x0: x0, x1: x0 + 10, top: top, bottom: top + 5}
}

func TestGroupWordsUpright(t *testing.T) {
	chars := []char{
		makeChar("B", 5, 100, true),
		makeChar("A", 0, 100.5, true),
		makeChar(" ", 10, 100, true),
		makeChar("C", 15, 100, true),
		makeChar("D", 40, 100, true),
		makeChar("E", 0, 50, true),
	}

	words := groupWords(chars, DefaultTolerance)

	want := []string{"E", "AB", "C", "D"}
	if len(words) != len(want) {
		t.Fatalf("expected %d words, got %d: %+v", len(want), len(words), words)
	}
	for i, w := range want {
		if words[i].Text != w {
			t.Errorf("word %d: expected %q, got %q", i, w, words[i].Text)
		}
		if !words[i].Upright {
			t.Errorf("word %d: expected upright", i)
		}
	}

	ab := words[1]
	if ab.X0 != 0 || ab.Top != 100 || ab.Height != 10.5 {
		t.Errorf("unexpected box for AB: %+v", ab)
	}
}

func TestGroupWordsRotatedReadsTopDown(t *testing.T) {
	// Set bottom to top, so the first shown glyph is lowest on the page.
	chars := []char{
		makeChar("T", 20, 200, false),
		makeChar("A", 20, 195, false),
		makeChar("P", 20, 190, false),
	}

	words := groupWords(chars, DefaultTolerance)

	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	w := words[0]
	if w.Text != "PAT" {
		t.Errorf("expected %q, got %q", "PAT", w.Text)
	}
	if w.Upright {
		t.Error("expected rotated word")
	}
	if w.Top != 190 || w.Height != 15 {
		t.Errorf("unexpected box: %+v", w)
	}
}

func TestGroupWordsUprightBeforeRotated(t *testing.T) {
	chars := []char{
		makeChar("R", 5, 10, false),
		makeChar("U", 100, 300, true),
	}

	words := groupWords(chars, DefaultTolerance)

	if len(words) != 2 || words[0].Text != "U" || words[1].Text != "R" {
		t.Errorf("unexpected order: %+v", words)
	}
}

func TestToChars(t *testing.T) {
	g := []glyph{{text: "A", x0: 110, x1: 115, y0: 700, y1: 710, upright: true}}

	c := toChars(g, [4]float64{10, 0, 622, 792})

	if c[0].x0 != 100 || c[0].x1 != 105 || c[0].top != 82 || c[0].bottom != 92 {
		t.Errorf("unexpected char: %+v", c[0])
	}
}
