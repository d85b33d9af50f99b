// Package catalog holds the read-only view over the tagged-project table and
// its aggregate metadata, and answers search and expertise queries for the
// conversational agent.
package catalog

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Wire-level error messages. These travel verbatim to the model and to API
// clients, so they keep the dataset's Spanish phrasing.
var (
	// ErrNoCatalog signals that no project rows were loaded. Callers must be
	// able to tell "no catalog" apart from "no matches".
	ErrNoCatalog = errors.New("No hay proyectos disponibles")

	// ErrNoMetadata signals that the aggregate metadata failed to load.
	ErrNoMetadata = errors.New("Metadata no disponible")

	// ErrUnknownCategory is the sentinel behind UnknownCategoryError.
	ErrUnknownCategory = errors.New("unknown expertise category")
)

// UnknownCategoryError reports an expertise category outside the fixed
// enumeration. It unwraps to ErrUnknownCategory.
type UnknownCategoryError struct {
	Category string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("Categoría '%s' no reconocida", e.Category)
}

func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// Project is one catalogued repository: its URL plus the serialized
// classification produced by the offline tagging pipeline.
type Project struct {
	URL               string
	RawClassification string
}

// Catalog is immutable after construction and safe for concurrent reads.
type Catalog struct {
	projects []Project
	meta     *Metadata
}

// New builds a catalog from an in-memory project table and metadata.
// meta may be nil when the aggregate file was unavailable.
func New(projects []Project, meta *Metadata) *Catalog {
	return &Catalog{projects: projects, meta: meta}
}

// Load reads the tagged-project CSV and the aggregate metadata JSON.
// A missing file degrades to an empty table / nil metadata instead of
// failing; only unreadable or malformed content is an error.
func Load(projectsCSV, metadataJSON string) (*Catalog, error) {
	projects, err := loadProjects(projectsCSV)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	meta, err := loadMetadata(metadataJSON)
	if err != nil {
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	return New(projects, meta), nil
}

// Size returns the total number of project rows, parseable or not.
func (c *Catalog) Size() int { return len(c.projects) }

// HasMetadata reports whether the aggregate metadata was loaded.
func (c *Catalog) HasMetadata() bool { return c.meta != nil }

func loadProjects(path string) ([]Project, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	// The pipeline writes the CSV with a UTF-8 BOM for spreadsheet
	// compatibility; strip it before matching column names.
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	urlIdx, classIdx := -1, -1
	for i, name := range header {
		switch name {
		case "url_repositorio":
			urlIdx = i
		case "clasificacion_dinamica":
			classIdx = i
		}
	}
	if urlIdx < 0 || classIdx < 0 {
		return nil, fmt.Errorf("%s: missing url_repositorio or clasificacion_dinamica column", path)
	}

	var projects []Project
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := Project{}
		if urlIdx < len(row) {
			p.URL = row[urlIdx]
		}
		if classIdx < len(row) {
			p.RawClassification = row[classIdx]
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func loadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}
