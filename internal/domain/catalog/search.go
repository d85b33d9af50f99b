package catalog

import "strings"

// DefaultSearchLimit caps the number of returned matches when the caller
// does not supply one.
const DefaultSearchLimit = 5

// Filters are the optional, conjunctive search criteria.
type Filters struct {
	Domain      string // case-insensitive exact match on dominio_aplicacion
	Technology  string // case-insensitive substring over backend+frontend+databases+devops
	ProjectType string // case-insensitive substring over tipo_proyecto entries
	MLOnly      bool   // require at least one ml_ia entry
	Limit       int    // max matches returned, not scanned; <=0 means DefaultSearchLimit
}

// ResultItem is one matching project projected for display.
type ResultItem struct {
	Name        string `json:"nombre"`
	URL         string `json:"url"`
	Purpose     string `json:"proposito"`
	Domain      string `json:"dominio"`
	Type        string `json:"tipo"`
	Backend     string `json:"tecnologias_backend"`
	Frontend    string `json:"tecnologias_frontend"`
	Databases   string `json:"bases_datos"`
	MLAI        string `json:"ml_ia"`
	KeyFeatures string `json:"funcionalidades"`
}

// SearchResult reports the matches plus the full table size so the agent can
// phrase answers like "5 de 42 proyectos".
type SearchResult struct {
	Found          int          `json:"encontrados"`
	Projects       []ResultItem `json:"proyectos"`
	TotalPortfolio int          `json:"total_portafolio"`
}

// Search scans the project table in stored order, applying all supplied
// filters conjunctively, and stops as soon as Limit matches are collected.
// Rows whose classification does not parse are skipped silently but still
// count toward TotalPortfolio. Returns ErrNoCatalog when no rows are loaded.
func (c *Catalog) Search(f Filters) (*SearchResult, error) {
	if len(c.projects) == 0 {
		return nil, ErrNoCatalog
	}
	if f.Limit <= 0 {
		f.Limit = DefaultSearchLimit
	}

	items := make([]ResultItem, 0, f.Limit)
	for i := range c.projects {
		cls, err := ParseClassification(c.projects[i].RawClassification)
		if err != nil {
			continue
		}
		if !matches(cls, f) {
			continue
		}
		items = append(items, project(&c.projects[i], cls))
		if len(items) >= f.Limit {
			break
		}
	}

	return &SearchResult{
		Found:          len(items),
		Projects:       items,
		TotalPortfolio: len(c.projects),
	}, nil
}

func matches(cls *Classification, f Filters) bool {
	if f.Domain != "" && !strings.EqualFold(cls.Domain, f.Domain) {
		return false
	}
	if f.Technology != "" {
		all := make([]string, 0, len(cls.Backend)+len(cls.Frontend)+len(cls.Databases)+len(cls.DevOps))
		all = append(all, cls.Backend...)
		all = append(all, cls.Frontend...)
		all = append(all, cls.Databases...)
		all = append(all, cls.DevOps...)
		if !anyContains(all, f.Technology) {
			return false
		}
	}
	if f.ProjectType != "" && !anyContains(cls.ProjectTypes, f.ProjectType) {
		return false
	}
	if f.MLOnly && len(cls.MLAI) == 0 {
		return false
	}
	return true
}

// anyContains reports whether any entry contains needle, case-insensitively.
func anyContains(entries []string, needle string) bool {
	needle = strings.ToLower(needle)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e), needle) {
			return true
		}
	}
	return false
}

func project(p *Project, cls *Classification) ResultItem {
	item := ResultItem{
		Name:        displayName(p.URL),
		URL:         p.URL,
		Purpose:     cls.MainPurpose,
		Domain:      cls.Domain,
		Type:        strings.Join(cls.ProjectTypes, ", "),
		Backend:     strings.Join(cls.Backend, ", "),
		Frontend:    strings.Join(cls.Frontend, ", "),
		Databases:   strings.Join(cls.Databases, ", "),
		MLAI:        strings.Join(cls.MLAI, ", "),
		KeyFeatures: strings.Join(firstStrings(cls.KeyFeatures, 3), ", "),
	}
	if item.URL == "" {
		item.URL = "N/A"
	}
	if item.Purpose == "" {
		item.Purpose = "Sin descripción"
	}
	if item.Domain == "" {
		item.Domain = "N/A"
	}
	return item
}

// displayName derives a project name from the last path segment of its URL.
func displayName(url string) string {
	parts := strings.Split(url, "/")
	return parts[len(parts)-1]
}

func firstStrings(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
