package pipeline

import (
	"time"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
)

// BuildMetadata aggregates the tagged project rows into the portfolio-wide
// view the chat agent serves. Rows whose classification fails to parse still
// count toward the total but contribute nothing to the tallies.
func BuildMetadata(projects []catalog.Project, now time.Time) *catalog.Metadata {
	domains := newCounter()
	projectTypes := newCounter()
	backend := newCounter()
	frontend := newCounter()
	databases := newCounter()
	mlai := newCounter()
	devops := newCounter()
	features := newCounter()
	languages := newCounter()

	stats := catalog.Stats{}

	for _, p := range projects {
		c, err := catalog.ParseClassification(p.RawClassification)
		if err != nil {
			continue
		}

		domain := c.Domain
		if domain == "" {
			domain = "No clasificado"
		}
		domains.add(domain)
		projectTypes.addAll(c.ProjectTypes)
		backend.addAll(c.Backend)
		frontend.addAll(c.Frontend)
		databases.addAll(c.Databases)
		mlai.addAll(c.MLAI)
		devops.addAll(c.DevOps)
		features.addAll(c.KeyFeatures)
		languages.addAll(c.Languages)

		if len(c.Backend) > 0 {
			stats.WithBackend++
		}
		if len(c.Frontend) > 0 {
			stats.WithFrontend++
		}
		if len(c.MLAI) > 0 {
			stats.WithMLAI++
		}
		if len(c.Backend) > 0 && len(c.Frontend) > 0 {
			stats.FullStack++
		}
	}

	return &catalog.Metadata{
		TotalProjects: len(projects),
		GeneratedAt:   now.Format(time.RFC3339),
		Domains:       domains.mostCommon(0),
		ProjectTypes:  projectTypes.mostCommon(0),
		TopTechnologies: catalog.TechCounts{
			Backend:   backend.mostCommon(15),
			Frontend:  frontend.mostCommon(15),
			Databases: databases.mostCommon(10),
			MLAI:      mlai.mostCommon(15),
			DevOps:    devops.mostCommon(15),
		},
		CommonFeatures: features.mostCommon(20),
		Languages:      languages.mostCommon(10),
		Stats:          stats,
	}
}
