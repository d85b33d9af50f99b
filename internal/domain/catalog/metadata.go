package catalog

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Counts is a name → frequency mapping whose JSON object order is
// contractual: entries are stored in descending frequency and must be
// serialized back in that same order.
type Counts = orderedmap.OrderedMap[string, int]

// TechCounts groups the per-category technology counters, each pre-truncated
// to its top-N by the offline pipeline.
type TechCounts struct {
	Backend   *Counts `json:"backend"`
	Frontend  *Counts `json:"frontend"`
	Databases *Counts `json:"bases_datos"`
	MLAI      *Counts `json:"ml_ia"`
	DevOps    *Counts `json:"devops_cloud"`
}

// Stats holds the precomputed summary statistics over the whole portfolio.
type Stats struct {
	WithBackend  int `json:"proyectos_con_backend"`
	WithFrontend int `json:"proyectos_con_frontend"`
	WithMLAI     int `json:"proyectos_con_ml_ia"`
	FullStack    int `json:"proyectos_full_stack"`
}

// Metadata is the aggregate view produced once by the offline pipeline and
// loaded read-only by the catalog.
type Metadata struct {
	TotalProjects   int        `json:"total_proyectos"`
	GeneratedAt     string     `json:"fecha_generacion,omitempty"`
	Domains         *Counts    `json:"dominios_aplicacion"`
	ProjectTypes    *Counts    `json:"tipos_proyecto,omitempty"`
	TopTechnologies TechCounts `json:"top_tecnologias"`
	CommonFeatures  *Counts    `json:"funcionalidades_mas_comunes,omitempty"`
	Languages       *Counts    `json:"lenguajes_programacion,omitempty"`
	Stats           Stats      `json:"estadisticas"`
}

// firstN returns a new ordered map holding the first n entries of src,
// preserving order. A nil src yields an empty map so JSON output stays an
// object rather than null.
func firstN(src *Counts, n int) *Counts {
	out := orderedmap.New[string, int]()
	if src == nil {
		return out
	}
	for pair := src.Oldest(); pair != nil && n > 0; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
		n--
	}
	return out
}

// orEmpty guards JSON output against nil count maps.
func orEmpty(src *Counts) *Counts {
	if src == nil {
		return orderedmap.New[string, int]()
	}
	return src
}
