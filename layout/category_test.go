package layout

import (
	"testing"

	"github.com/tsawler/catalogstage/model"
)

func rotated(txt string, height float64) model.Word {
	return model.Word{Text: txt, X0: 10, Top: 100, Height: height}
}

func TestNormalizeCategoryMarker(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"TAPUR", "Rupat"},
		{"ASULB-SOTRA", "Blusa Artos"},
		{"SASULB", "Blusas"},
		{"-SASULB-", "Blusas"},
		{"SASU LB", "Blusas"},
		{"1234", model.DefaultCategory},
		{"--", model.DefaultCategory},
		{"", model.DefaultCategory},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeCategoryMarker(tt.raw); got != tt.want {
				t.Errorf("NormalizeCategoryMarker(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDetectCategory_TallestMarkerWins(t *testing.T) {
	words := []model.Word{
		rotated("SODIT", 40),
		rotated("TAPUR", 90),
		makeWord(40, 100, "VESTIDO"),
	}

	if got := DetectCategory(words); got != "Rupat" {
		t.Errorf("got %q, want %q", got, "Rupat")
	}
}

func TestDetectCategory_Default(t *testing.T) {
	tests := []struct {
		name  string
		words []model.Word
	}{
		{"no words", nil},
		{"only upright", []model.Word{makeWord(40, 100, "BLUSAS")}},
		{"too short", []model.Word{rotated("ABC", 50)}},
		{"lowercase", []model.Word{rotated("Blusas", 50)}},
		{"digits", []model.Word{rotated("AB12", 50)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCategory(tt.words); got != model.DefaultCategory {
				t.Errorf("got %q, want default", got)
			}
		})
	}
}

func TestDetectCategory_TieKeepsFirst(t *testing.T) {
	words := []model.Word{
		rotated("SASULB", 60),
		rotated("SODITSEV", 60),
	}

	if got := DetectCategory(words); got != "Blusas" {
		t.Errorf("got %q, want %q", got, "Blusas")
	}
}
