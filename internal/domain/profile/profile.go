// Package profile loads the professional profile sources the agent embeds in
// its system prompt.
package profile

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/cquispe/portfolio-agent/internal/config"
)

// Placeholder text substituted when a source file is missing or unreadable.
// Data unavailability degrades the prompt, it never fails the service.
const (
	SummaryUnavailable  = "Resumen profesional no disponible"
	LinkedInUnavailable = "Perfil de LinkedIn no disponible"
)

// Profile holds the loaded professional profile.
type Profile struct {
	Name     string
	Summary  string
	LinkedIn string
}

// Load reads the summary text file and extracts plain text from the LinkedIn
// PDF export. Missing or broken files are replaced by placeholders.
func Load(cfg config.Profile) *Profile {
	return &Profile{
		Name:     cfg.Name,
		Summary:  loadSummary(cfg.SummaryPath),
		LinkedIn: loadLinkedIn(cfg.LinkedInPDF),
	}
}

func loadSummary(path string) string {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		slog.Warn("profile summary not available", "path", path, "error", err)
		return SummaryUnavailable
	}
	return strings.TrimSpace(string(data))
}

func loadLinkedIn(path string) string {
	f, r, err := pdf.Open(path)
	if err != nil {
		slog.Warn("linkedin pdf not available", "path", path, "error", err)
		return LinkedInUnavailable
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}

	out := strings.TrimSpace(buf.String())
	if out == "" {
		return LinkedInUnavailable
	}
	return out
}
