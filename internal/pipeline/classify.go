package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
	"github.com/cquispe/portfolio-agent/internal/domain/conversation"
	"github.com/cquispe/portfolio-agent/internal/port/llm"
)

const classifyToolName = "clasificar_proyecto"

const classifySystemPrompt = "Eres un arquitecto de software experto que analiza proyectos técnicamente. " +
	"Identificas con precisión tecnologías, frameworks, propósito y dominio de aplicación. " +
	"NO asumes, solo reportas lo que está documentado."

const classifyPromptFormat = `Analiza este proyecto de GitHub a profundidad y clasifícalo usando la función 'clasificar_proyecto'.

**INFORMACIÓN DEL PROYECTO:**
- Nombre del repositorio: %s
- Descripción breve: %s
- Documentación completa:
%s

**INSTRUCCIONES:**
1. Lee TODO el contenido cuidadosamente
2. Identifica el propósito REAL del proyecto (no asumas, lee la documentación)
3. Extrae TODAS las tecnologías mencionadas, no inventes ninguna
4. Si no hay información sobre alguna categoría, deja el array vacío []
5. Sé específico: no digas solo "backend", di el framework exacto
6. Para ML/IA: identifica si hay modelos, librerías de ML, APIs de IA
7. Para funcionalidades: identifica características técnicas concretas

**IMPORTANTE:** Usa la función 'clasificar_proyecto' para devolver la clasificación estructurada.`

// Written for rows the model could not classify after all retries.
const emptyClassification = `{"proposito_principal": "Sin información suficiente", "dominio_aplicacion": "No clasificado", "tipo_proyecto": [], "tecnologias_backend": [], "tecnologias_frontend": [], "bases_datos": [], "ml_ia": [], "devops_cloud": [], "funcionalidades_clave": [], "lenguajes_programacion": [], "tags_adicionales": []}`

var classifyTool = llm.ToolDef{
	Name:        classifyToolName,
	Description: "Clasifica un proyecto de software identificando sus tecnologías, propósito, dominio y características principales",
	Parameters: json.RawMessage(`{
		"type": "object",
		"properties": {
			"proposito_principal": {
				"type": "string",
				"description": "El objetivo principal del proyecto en una frase clara (ej: 'API para gestión de inventario', 'Dashboard de análisis financiero')"
			},
			"dominio_aplicacion": {
				"type": "string",
				"description": "El dominio o industria (ej: 'E-commerce', 'Finanzas', 'Salud', 'Educación', 'DevOps', 'Data Science')"
			},
			"tipo_proyecto": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Tipo(s) de proyecto (ej: 'API REST', 'Full Stack Web', 'CLI Tool', 'Bot', 'Librería', 'Dashboard', 'Microservicio', 'Scraper', 'Pipeline de datos')"
			},
			"tecnologias_backend": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Frameworks y tecnologías backend identificadas (ej: 'FastAPI', 'Django', 'Express.js', 'Spring Boot', 'Node.js')"
			},
			"tecnologias_frontend": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Frameworks y tecnologías frontend identificadas (ej: 'React', 'Vue.js', 'Angular', 'Next.js', 'Tailwind CSS')"
			},
			"bases_datos": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Bases de datos utilizadas (ej: 'PostgreSQL', 'MongoDB', 'Redis', 'MySQL', 'Supabase')"
			},
			"ml_ia": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Tecnologías de ML/IA si aplica (ej: 'TensorFlow', 'PyTorch', 'OpenAI API', 'LangChain', 'Scikit-learn', 'Hugging Face', 'NLP', 'Computer Vision')"
			},
			"devops_cloud": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Herramientas DevOps y cloud (ej: 'Docker', 'Kubernetes', 'AWS', 'GitHub Actions', 'Terraform', 'CI/CD')"
			},
			"funcionalidades_clave": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Funcionalidades principales (ej: 'Autenticación JWT', 'Procesamiento de pagos', 'Chat en tiempo real', 'Generación de reportes', 'Notificaciones push')"
			},
			"lenguajes_programacion": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Lenguajes de programación principales (ej: 'Python', 'JavaScript', 'TypeScript', 'Go', 'Rust', 'Java')"
			},
			"tags_adicionales": {
				"type": "array",
				"items": {"type": "string"},
				"description": "Otros tags relevantes que no encajan en categorías anteriores (ej: 'Open Source', 'Producción', 'Experimental', 'Template', 'Monorepo')"
			}
		},
		"required": ["proposito_principal", "dominio_aplicacion", "tipo_proyecto"]
	}`),
}

// Classifier tags documentation rows through a forced function call against
// an OpenAI-compatible model.
type Classifier struct {
	llm           llm.Client
	model         string
	maxConcurrent int
	maxDocChars   int
	log           *slog.Logger
}

// NewClassifier builds a classifier. maxDocChars caps the documentation
// excerpt embedded in each prompt.
func NewClassifier(client llm.Client, model string, maxConcurrent, maxDocChars int, log *slog.Logger) *Classifier {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	if maxDocChars < 1 {
		maxDocChars = 4000
	}
	return &Classifier{
		llm:           client,
		model:         model,
		maxConcurrent: maxConcurrent,
		maxDocChars:   maxDocChars,
		log:           log,
	}
}

// ClassifyAll tags every row, skipping those that already carry a valid
// classification so interrupted runs resume where they stopped. Rows the
// model cannot classify get the empty fallback instead of failing the run.
func (c *Classifier) ClassifyAll(ctx context.Context, rows []TaggedRow) ([]TaggedRow, error) {
	out := make([]TaggedRow, len(rows))
	copy(out, rows)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxConcurrent)

	for i := range out {
		if _, err := catalog.ParseClassification(out[i].Classification); out[i].Classification != "" && err == nil {
			continue
		}

		g.Go(func() error {
			name := out[i].Name()
			c.log.Info("classifying project", "repo", name)

			raw, err := c.classifyOne(ctx, name, out[i].Description, out[i].Documentation)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				c.log.Warn("classification failed, using fallback", "repo", name, "error", err)
				raw = emptyClassification
			}
			out[i].Classification = raw
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

func (c *Classifier) classifyOne(ctx context.Context, name, description, documentation string) (string, error) {
	if len(documentation) > c.maxDocChars {
		documentation = documentation[:c.maxDocChars]
	}
	prompt := fmt.Sprintf(classifyPromptFormat, name, description, documentation)

	var raw string
	backoff := retry.WithMaxRetries(2, retry.NewConstant(2*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		resp, err := c.llm.Complete(ctx, llm.ChatRequest{
			Model: c.model,
			Messages: []conversation.Message{
				conversation.System(classifySystemPrompt),
				conversation.User(prompt),
			},
			Tools:       []llm.ToolDef{classifyTool},
			ForceTool:   classifyToolName,
			Temperature: 0.2,
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		if len(resp.Message.ToolCalls) == 0 {
			return retry.RetryableError(fmt.Errorf("model answered without the %s call", classifyToolName))
		}

		args := string(resp.Message.ToolCalls[0].Arguments)
		if _, err := catalog.ParseClassification(args); err != nil {
			return retry.RetryableError(fmt.Errorf("invalid classification payload: %w", err))
		}
		raw = args
		return nil
	})
	if err != nil {
		return "", err
	}
	return raw, nil
}
