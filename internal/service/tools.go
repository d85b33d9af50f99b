package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
	"github.com/cquispe/portfolio-agent/internal/port/llm"
)

// Tool names exposed to the model.
const (
	ToolRecordUserDetails = "record_user_details"
	ToolRecordUnknown     = "record_unknown_question"
	ToolSearchProjects    = "search_projects"
	ToolGetExpertise      = "get_technical_expertise"
)

type toolHandler func(ctx context.Context, args json.RawMessage) any

type tool struct {
	def     llm.ToolDef
	handler toolHandler
}

// ToolRegistry owns the agent's callable tools: their JSON schemas for the
// model and the handlers that run when the model invokes them.
type ToolRegistry struct {
	tools map[string]tool
	order []string
}

// NewToolRegistry builds the four portfolio tools over the given catalog and
// notification sink.
func NewToolRegistry(cat *catalog.Catalog, sink *AlertSink) *ToolRegistry {
	r := &ToolRegistry{tools: make(map[string]tool)}

	r.add(llm.ToolDef{
		Name:        ToolRecordUserDetails,
		Description: "Registra información de contacto del usuario interesado.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"email": {"type": "string", "description": "Email del usuario"},
				"name": {"type": "string", "description": "Nombre del usuario"},
				"notes": {"type": "string", "description": "Notas adicionales del contexto"}
			},
			"required": ["email"]
		}`),
	}, func(ctx context.Context, args json.RawMessage) any {
		var in struct {
			Email string `json:"email"`
			Name  string `json:"name"`
			Notes string `json:"notes"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return map[string]string{"error": fmt.Sprintf("argumentos inválidos: %v", err)}
		}
		if in.Name == "" {
			in.Name = "Nombre no indicado"
		}
		if in.Notes == "" {
			in.Notes = "no proporcionadas"
		}
		sink.Send(ctx, fmt.Sprintf("📧 Contacto: %s | Email: %s | Notas: %s", in.Name, in.Email, in.Notes))
		return map[string]string{"recorded": "ok"}
	})

	r.add(llm.ToolDef{
		Name:        ToolRecordUnknown,
		Description: "Registra preguntas que no se pudieron responder.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"question": {"type": "string", "description": "Pregunta sin respuesta"}
			},
			"required": ["question"]
		}`),
	}, func(ctx context.Context, args json.RawMessage) any {
		var in struct {
			Question string `json:"question"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return map[string]string{"error": fmt.Sprintf("argumentos inválidos: %v", err)}
		}
		sink.Send(ctx, "❓ Pregunta sin respuesta: "+in.Question)
		return map[string]string{"recorded": "ok"}
	})

	r.add(llm.ToolDef{
		Name:        ToolSearchProjects,
		Description: "Busca proyectos específicos por dominio, tecnología o tipo. Úsala para '¿Qué proyectos has hecho con FastAPI?' o '¿Tienes experiencia en E-commerce?'",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"dominio": {"type": "string", "description": "Dominio (E-commerce, Finanzas, ML, etc.)"},
				"tecnologia": {"type": "string", "description": "Tecnología (FastAPI, React, PostgreSQL, etc.)"},
				"tipo_proyecto": {"type": "string", "description": "Tipo (API REST, Dashboard, Bot, etc.)"},
				"incluye_ml": {"type": "boolean", "description": "Filtrar solo proyectos ML/IA"},
				"limit": {"type": "integer", "description": "Máximo de proyectos a retornar"}
			},
			"required": []
		}`),
	}, func(_ context.Context, args json.RawMessage) any {
		var in struct {
			Domain      string `json:"dominio"`
			Technology  string `json:"tecnologia"`
			ProjectType string `json:"tipo_proyecto"`
			MLOnly      bool   `json:"incluye_ml"`
			Limit       int    `json:"limit"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return map[string]string{"error": fmt.Sprintf("argumentos inválidos: %v", err)}
		}
		result, err := cat.Search(catalog.Filters{
			Domain:      in.Domain,
			Technology:  in.Technology,
			ProjectType: in.ProjectType,
			MLOnly:      in.MLOnly,
			Limit:       in.Limit,
		})
		if err != nil {
			return map[string]string{"error": err.Error()}
		}
		return result
	})

	r.add(llm.ToolDef{
		Name:        ToolGetExpertise,
		Description: "Muestra expertise técnico y estadísticas del portfolio. Úsala para '¿Cuál es tu stack?' o '¿Cuántos proyectos de ML has hecho?'",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"categoria": {
					"type": "string",
					"description": "Categoría: general, backend, frontend, ml, ia",
					"enum": ["general", "backend", "frontend", "ml", "ia"]
				}
			},
			"required": []
		}`),
	}, func(_ context.Context, args json.RawMessage) any {
		var in struct {
			Category string `json:"categoria"`
		}
		if err := json.Unmarshal(args, &in); err != nil {
			return map[string]string{"error": fmt.Sprintf("argumentos inválidos: %v", err)}
		}
		if in.Category == "" {
			in.Category = "general"
		}
		result, err := cat.Expertise(in.Category)
		if err != nil {
			return map[string]string{"error": err.Error()}
		}
		return result
	})

	return r
}

func (r *ToolRegistry) add(def llm.ToolDef, handler toolHandler) {
	r.tools[def.Name] = tool{def: def, handler: handler}
	r.order = append(r.order, def.Name)
}

// Defs returns the tool schemas in registration order, ready to pass to the
// model on every completion.
func (r *ToolRegistry) Defs() []llm.ToolDef {
	defs := make([]llm.ToolDef, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].def)
	}
	return defs
}

// Dispatch runs the named tool and returns its result serialized as JSON, the
// form the model expects in a tool message. Unknown tools and handler-level
// failures come back as an {"error": ...} payload rather than a Go error so
// the model can react to them.
func (r *ToolRegistry) Dispatch(ctx context.Context, name string, args json.RawMessage) string {
	t, ok := r.tools[name]
	if !ok {
		return mustJSON(map[string]string{"error": fmt.Sprintf("Herramienta '%s' no encontrada", name)})
	}
	return mustJSON(t.handler(ctx, args))
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Tool results are maps and structs of plain data; this only fires
		// on a programming error.
		return `{"error":"resultado no serializable"}`
	}
	return string(data)
}
