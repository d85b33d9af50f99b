package catalog

import "fmt"

// Expertise returns the rolled-up view for one category of the fixed
// enumeration: "general", "backend", "frontend", "ml" or "ia" ("ml" and
// "ia" are aliases). Any other value is an UnknownCategoryError; guessing a
// close match would hand the model wrong numbers, so the contract is
// fail-fast. Returns ErrNoMetadata when the aggregate file never loaded.
//
// The result is a plain JSON-serializable map because each category exposes
// a different shape; the count maps inside keep descending-frequency order.
func (c *Catalog) Expertise(category string) (map[string]any, error) {
	if c.meta == nil {
		return nil, ErrNoMetadata
	}
	m := c.meta

	switch category {
	case "general":
		return map[string]any{
			"total_proyectos":        m.TotalProjects,
			"estadisticas_generales": m.Stats,
			"dominios_principales":   firstN(m.Domains, 10),
			"top_backend":            firstN(m.TopTechnologies.Backend, 10),
			"top_frontend":           firstN(m.TopTechnologies.Frontend, 5),
			"top_ml_ia":              firstN(m.TopTechnologies.MLAI, 10),
		}, nil

	case "backend":
		return map[string]any{
			"tecnologias":       orEmpty(m.TopTechnologies.Backend),
			"bases_datos":       orEmpty(m.TopTechnologies.Databases),
			"proyectos_backend": m.Stats.WithBackend,
			"porcentaje":        m.percentage(m.Stats.WithBackend),
		}, nil

	case "frontend":
		return map[string]any{
			"tecnologias":        orEmpty(m.TopTechnologies.Frontend),
			"proyectos_frontend": m.Stats.WithFrontend,
			"porcentaje":         m.percentage(m.Stats.WithFrontend),
		}, nil

	case "ml", "ia":
		return map[string]any{
			"tecnologias_ml_ia": orEmpty(m.TopTechnologies.MLAI),
			"proyectos_ml_ia":   m.Stats.WithMLAI,
			"porcentaje":        m.percentage(m.Stats.WithMLAI),
		}, nil

	default:
		return nil, &UnknownCategoryError{Category: category}
	}
}

// percentage renders count over the portfolio total with exactly one decimal
// digit and a trailing percent sign. This is presentation text, not a number.
func (m *Metadata) percentage(count int) string {
	total := m.TotalProjects
	if total <= 0 {
		total = 1
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}
