package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

func mustJSON(t *testing.T, cls string) Project {
	t.Helper()
	return Project{URL: "https://github.com/cquispe/" + t.Name(), RawClassification: cls}
}

func testProjects() []Project {
	return []Project{
		{
			URL: "https://github.com/cquispe/tienda-api",
			RawClassification: `{
				"proposito_principal": "API para gestión de inventario",
				"dominio_aplicacion": "E-commerce",
				"tipo_proyecto": ["API REST"],
				"tecnologias_backend": ["FastAPI", "Python"],
				"bases_datos": ["PostgreSQL"],
				"funcionalidades_clave": ["Autenticación JWT", "Pagos", "Reportes", "Webhooks"]
			}`,
		},
		{
			URL: "https://github.com/cquispe/riesgo-ml",
			RawClassification: `{
				"proposito_principal": "Modelo de scoring crediticio",
				"dominio_aplicacion": "Finanzas",
				"tipo_proyecto": ["Pipeline de datos"],
				"tecnologias_backend": ["Django"],
				"ml_ia": ["Scikit-learn"]
			}`,
		},
		{
			URL:               "https://github.com/cquispe/roto",
			RawClassification: `{not valid json`,
		},
		{
			URL: "https://github.com/cquispe/panel-ventas",
			RawClassification: `{
				"dominio_aplicacion": "E-commerce",
				"tipo_proyecto": ["Dashboard"],
				"tecnologias_frontend": ["React"],
				"devops_cloud": ["Docker"]
			}`,
		},
	}
}

func TestSearch_FilterConjunction(t *testing.T) {
	c := New(testProjects(), nil)

	// Domain + technology must both hold.
	res, err := c.Search(Filters{Domain: "E-commerce", Technology: "FastAPI"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 1 || res.Projects[0].Name != "tienda-api" {
		t.Fatalf("expected only tienda-api, got %+v", res.Projects)
	}

	// Same domain but a technology only the other record has: no match.
	res, err = c.Search(Filters{Domain: "Finanzas", Technology: "React"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 0 {
		t.Fatalf("expected no matches, got %d", res.Found)
	}

	// ml_only on its own.
	res, err = c.Search(Filters{MLOnly: true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 1 || res.Projects[0].Name != "riesgo-ml" {
		t.Fatalf("expected only riesgo-ml, got %+v", res.Projects)
	}
}

func TestSearch_DomainMatchIsCaseInsensitiveExact(t *testing.T) {
	c := New(testProjects(), nil)

	res, err := c.Search(Filters{Domain: "e-commerce"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 2 {
		t.Fatalf("expected 2 e-commerce matches, got %d", res.Found)
	}

	// Substrings of the domain must NOT match: exact comparison only.
	res, err = c.Search(Filters{Domain: "commerce"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 0 {
		t.Fatalf("domain filter must be exact, got %d matches", res.Found)
	}
}

func TestSearch_TechnologyIsSubstringAcrossCategories(t *testing.T) {
	c := New(testProjects(), nil)

	// Substring of a backend tech.
	res, err := c.Search(Filters{Technology: "fast"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 1 || res.Projects[0].Name != "tienda-api" {
		t.Fatalf("expected tienda-api via substring, got %+v", res.Projects)
	}

	// devops_cloud participates in the technology union.
	res, err = c.Search(Filters{Technology: "docker"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 1 || res.Projects[0].Name != "panel-ventas" {
		t.Fatalf("expected panel-ventas via devops tech, got %+v", res.Projects)
	}
}

func TestSearch_LimitIsAPrefixCap(t *testing.T) {
	c := New(testProjects(), nil)

	one, err := c.Search(Filters{Limit: 1})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if one.Found != 1 {
		t.Fatalf("expected exactly 1 result, got %d", one.Found)
	}

	three, err := c.Search(Filters{Limit: 3})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if three.Found != 3 {
		t.Fatalf("expected 3 results, got %d", three.Found)
	}
	// Raising the limit extends the prefix without reordering.
	if three.Projects[0] != one.Projects[0] {
		t.Errorf("prefix changed when limit grew: %+v vs %+v", three.Projects[0], one.Projects[0])
	}
	if three.Projects[0].Name != "tienda-api" || three.Projects[1].Name != "riesgo-ml" {
		t.Errorf("results not in stored order: %+v", three.Projects)
	}
}

func TestSearch_MalformedRowsAreInvisibleButCounted(t *testing.T) {
	c := New(testProjects(), nil)

	res, err := c.Search(Filters{Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 3 {
		t.Fatalf("expected 3 parseable matches, got %d", res.Found)
	}
	if res.TotalPortfolio != 4 {
		t.Fatalf("total_portafolio must count malformed rows too, got %d", res.TotalPortfolio)
	}
	for _, p := range res.Projects {
		if p.Name == "roto" {
			t.Fatal("malformed row leaked into results")
		}
	}
}

func TestSearch_EmptyCatalog(t *testing.T) {
	c := New(nil, nil)
	if _, err := c.Search(Filters{}); !errors.Is(err, ErrNoCatalog) {
		t.Fatalf("expected ErrNoCatalog, got %v", err)
	}
}

func TestSearch_ProjectionDefaults(t *testing.T) {
	c := New([]Project{mustJSON(t, `{"dominio_aplicacion": "Salud"}`)}, nil)

	res, err := c.Search(Filters{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Projects[0].Purpose != "Sin descripción" {
		t.Errorf("expected purpose placeholder, got %q", res.Projects[0].Purpose)
	}
	// At most the first 3 key features are joined.
	c = New(testProjects(), nil)
	res, err = c.Search(Filters{Technology: "FastAPI"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := res.Projects[0].KeyFeatures; got != "Autenticación JWT, Pagos, Reportes" {
		t.Errorf("expected first 3 features, got %q", got)
	}
}

func newCounts(pairs ...any) *Counts {
	om := orderedmap.New[string, int]()
	for i := 0; i < len(pairs); i += 2 {
		om.Set(pairs[i].(string), pairs[i+1].(int))
	}
	return om
}

func testMetadata() *Metadata {
	return &Metadata{
		TotalProjects: 40,
		Domains:       newCounts("E-commerce", 12, "Finanzas", 8, "Salud", 5),
		TopTechnologies: TechCounts{
			Backend:   newCounts("FastAPI", 15, "Django", 9),
			Frontend:  newCounts("React", 11),
			Databases: newCounts("PostgreSQL", 14),
			MLAI:      newCounts("Scikit-learn", 6),
			DevOps:    newCounts("Docker", 18),
		},
		Stats: Stats{
			WithBackend:  10,
			WithFrontend: 16,
			WithMLAI:     6,
			FullStack:    9,
		},
	}
}

func TestExpertise_BackendPercentageRendering(t *testing.T) {
	c := New(nil, testMetadata())

	res, err := c.Expertise("backend")
	if err != nil {
		t.Fatalf("Expertise: %v", err)
	}
	if got := res["porcentaje"]; got != "25.0%" {
		t.Fatalf("expected porcentaje \"25.0%%\", got %v", got)
	}
	if got := res["proyectos_backend"]; got != 10 {
		t.Fatalf("expected 10 backend projects, got %v", got)
	}
}

func TestExpertise_MLAliases(t *testing.T) {
	c := New(nil, testMetadata())

	ml, err := c.Expertise("ml")
	if err != nil {
		t.Fatalf("Expertise(ml): %v", err)
	}
	ia, err := c.Expertise("ia")
	if err != nil {
		t.Fatalf("Expertise(ia): %v", err)
	}
	if ml["porcentaje"] != ia["porcentaje"] || ml["proyectos_ml_ia"] != ia["proyectos_ml_ia"] {
		t.Fatal("ml and ia must hit the same branch")
	}
	if ml["porcentaje"] != "15.0%" {
		t.Fatalf("expected 15.0%%, got %v", ml["porcentaje"])
	}
}

func TestExpertise_GeneralTruncation(t *testing.T) {
	c := New(nil, testMetadata())

	res, err := c.Expertise("general")
	if err != nil {
		t.Fatalf("Expertise: %v", err)
	}
	domains, ok := res["dominios_principales"].(*Counts)
	if !ok {
		t.Fatalf("dominios_principales has unexpected type %T", res["dominios_principales"])
	}
	if domains.Len() != 3 {
		t.Fatalf("expected 3 domains, got %d", domains.Len())
	}
	// Order of the loaded map must survive truncation.
	if first := domains.Oldest(); first.Key != "E-commerce" || first.Value != 12 {
		t.Fatalf("expected E-commerce first, got %s=%d", first.Key, first.Value)
	}
}

func TestExpertise_UnknownCategoryDoesNotPanic(t *testing.T) {
	c := New(nil, testMetadata())

	_, err := c.Expertise("devops")
	if !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	var uce *UnknownCategoryError
	if !errors.As(err, &uce) {
		t.Fatal("expected UnknownCategoryError")
	}
	if uce.Error() != "Categoría 'devops' no reconocida" {
		t.Fatalf("unexpected message %q", uce.Error())
	}
}

func TestExpertise_NoMetadata(t *testing.T) {
	c := New(testProjects(), nil)
	if _, err := c.Expertise("general"); !errors.Is(err, ErrNoMetadata) {
		t.Fatalf("expected ErrNoMetadata, got %v", err)
	}
}

func TestLoad_MissingFilesDegradeGracefully(t *testing.T) {
	dir := t.TempDir()
	c, err := Load(filepath.Join(dir, "no.csv"), filepath.Join(dir, "no.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Size() != 0 {
		t.Errorf("expected empty catalog, got %d rows", c.Size())
	}
	if c.HasMetadata() {
		t.Error("expected no metadata")
	}
}

func TestLoad_CSVWithBOM(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "repos.csv")
	content := "\ufeffrepo_nombre,url_repositorio,clasificacion_dinamica\n" +
		"cquispe/tienda-api,https://github.com/cquispe/tienda-api,\"{\"\"dominio_aplicacion\"\": \"\"E-commerce\"\"}\"\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(csvPath, filepath.Join(dir, "no.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Size() != 1 {
		t.Fatalf("expected 1 row, got %d", c.Size())
	}
	res, err := c.Search(Filters{Domain: "e-commerce"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Found != 1 || res.Projects[0].Name != "tienda-api" {
		t.Fatalf("unexpected result %+v", res.Projects)
	}
}

func TestLoad_MetadataRoundTripKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	metaPath := filepath.Join(dir, "metadata.json")
	doc := `{
		"total_proyectos": 2,
		"dominios_aplicacion": {"Zeta": 9, "Alfa": 3},
		"top_tecnologias": {"backend": {}, "frontend": {}, "bases_datos": {}, "ml_ia": {}, "devops_cloud": {}},
		"estadisticas": {"proyectos_con_backend": 1, "proyectos_con_frontend": 0, "proyectos_con_ml_ia": 0, "proyectos_full_stack": 0}
	}`
	if err := os.WriteFile(metaPath, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Load(filepath.Join(dir, "no.csv"), metaPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	res, err := c.Expertise("general")
	if err != nil {
		t.Fatalf("Expertise: %v", err)
	}
	domains := res["dominios_principales"].(*Counts)
	if first := domains.Oldest(); first.Key != "Zeta" {
		t.Fatalf("document order lost: first key %q", first.Key)
	}
}
