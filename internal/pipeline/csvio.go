// Package pipeline implements the offline tagging flow: scraping repository
// documentation from GitHub, classifying each project through a forced model
// function call and aggregating the portfolio metadata the chat agent serves.
package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
)

// Column names of the documentation CSV. The tagged CSV appends the
// classification column.
var docColumns = []string{
	"repo_nombre",
	"es_privado",
	"tiene_readme",
	"documentacion",
	"archivo_origen",
	"fecha_actualizacion",
	"url_repositorio",
}

const classificationColumn = "clasificacion_dinamica"

// TaggedRow is one repository row flowing through the pipeline. The fields
// mirror the CSV columns; Classification is empty until the classifier runs.
type TaggedRow struct {
	RepoName       string
	Private        string
	HasReadme      string
	Documentation  string
	Description    string
	SourceFile     string
	UpdatedAt      string
	URL            string
	Classification string
}

// Name derives the short project name from the repository URL.
func (r TaggedRow) Name() string {
	if r.URL == "" {
		return "Sin nombre"
	}
	parts := strings.Split(r.URL, "/")
	return parts[len(parts)-1]
}

// ReadDocumentationCSV loads a documentation CSV. It accepts both the raw
// scrape output and a previously tagged file, so an interrupted
// classification run can resume from its own output.
func ReadDocumentationCSV(path string) ([]TaggedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	var rows []TaggedRow
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		rows = append(rows, TaggedRow{
			RepoName:       field(record, "repo_nombre"),
			Private:        field(record, "es_privado"),
			HasReadme:      field(record, "tiene_readme"),
			Documentation:  field(record, "documentacion"),
			Description:    field(record, "documentacion_resumen"),
			SourceFile:     field(record, "archivo_origen"),
			UpdatedAt:      field(record, "fecha_actualizacion"),
			URL:            field(record, "url_repositorio"),
			Classification: field(record, classificationColumn),
		})
	}
	return rows, nil
}

// WriteDocumentationCSV writes the raw scrape output.
func WriteDocumentationCSV(path string, rows []TaggedRow) error {
	return writeCSV(path, docColumns, rows, false)
}

// WriteTaggedCSV writes rows including the classification column.
func WriteTaggedCSV(path string, rows []TaggedRow) error {
	columns := append(append([]string{}, docColumns...), classificationColumn)
	return writeCSV(path, columns, rows, true)
}

// Files carry a UTF-8 BOM so spreadsheet tools detect the encoding.
func writeCSV(path string, columns []string, rows []TaggedRow, withClassification bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString("\ufeff"); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.RepoName,
			row.Private,
			row.HasReadme,
			row.Documentation,
			row.SourceFile,
			row.UpdatedAt,
			row.URL,
		}
		if withClassification {
			record = append(record, row.Classification)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// WriteMetadataJSON writes the aggregate metadata the chat agent loads.
func WriteMetadataJSON(path string, meta *catalog.Metadata) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
