package pipeline

import (
	"strings"
	"testing"
)

func TestCleanMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "code blocks removed",
			in:   "Instalación:\n```bash\npip install x\n```\nListo.",
			want: "Instalación: Listo.",
		},
		{
			name: "inline code removed",
			in:   "Ejecuta `make build` para compilar",
			want: "Ejecuta para compilar",
		},
		{
			name: "images removed links keep text",
			in:   "![badge](https://img.shields.io/x.svg) Ver [documentación](https://docs.example.com)",
			want: "Ver documentación",
		},
		{
			name: "headers and emphasis stripped",
			in:   "# Proyecto\n\nUn **detector** de _fraude_ en línea",
			want: "Proyecto Un detector de fraude en línea",
		},
		{
			name: "html and blockquotes stripped",
			in:   "<div align=\"center\">Hola</div>\n> nota importante",
			want: "Hola nota importante",
		},
		{
			name: "list bullets stripped",
			in:   "- uno\n- dos\n1. tres",
			want: "uno dos tres",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanMarkdown(tt.in, 0); got != tt.want {
				t.Errorf("CleanMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanMarkdown_TruncatesAtWordBoundary(t *testing.T) {
	in := strings.Repeat("palabra ", 100)
	got := CleanMarkdown(in, 50)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if len(got) > 53 {
		t.Errorf("result too long: %d chars", len(got))
	}
	if strings.Contains(strings.TrimSuffix(got, "..."), "palabr ") {
		t.Errorf("cut mid-word: %q", got)
	}
}
