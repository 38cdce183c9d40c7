package parse

import "testing"

func TestCleanName(t *testing.T) {
	tests := []struct {
		chunk string
		want  string
	}{
		{"Blusa manga larga", "Blusa manga larga"},
		{"Camisa basica (REF123456)", "Camisa basica"},
		{"Vestido floral (AB-987654) $45.00", "Vestido floral"},
		{"- Pantalon recto, ", "Pantalon recto"},
		{"Falda midi Tallas: S, M", "Falda midi"},
		{"Top 2024 edicion", "Top edicion"},
		{"(123456) $10.00", "Producto sin nombre"},
		{"", "Producto sin nombre"},
	}

	for _, tt := range tests {
		t.Run(tt.chunk, func(t *testing.T) {
			if got := CleanName(tt.chunk); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.chunk, got, tt.want)
			}
		})
	}
}
