package catalog

import "encoding/json"

// Classification is the AI-produced set of tags describing one project.
// Every field is optional: the producing pipeline is schema-free model
// output, so parsing stays loose and unknown keys are ignored.
type Classification struct {
	MainPurpose    string   `json:"proposito_principal,omitempty"`
	Domain         string   `json:"dominio_aplicacion,omitempty"`
	ProjectTypes   []string `json:"tipo_proyecto,omitempty"`
	Backend        []string `json:"tecnologias_backend,omitempty"`
	Frontend       []string `json:"tecnologias_frontend,omitempty"`
	Databases      []string `json:"bases_datos,omitempty"`
	MLAI           []string `json:"ml_ia,omitempty"`
	DevOps         []string `json:"devops_cloud,omitempty"`
	KeyFeatures    []string `json:"funcionalidades_clave,omitempty"`
	Languages      []string `json:"lenguajes_programacion,omitempty"`
	AdditionalTags []string `json:"tags_adicionales,omitempty"`
}

// ParseClassification decodes the serialized classification of one project
// row. Rows that fail to parse are skipped by the caller, never surfaced.
func ParseClassification(raw string) (*Classification, error) {
	var c Classification
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, err
	}
	return &c, nil
}
