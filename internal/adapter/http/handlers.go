package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cquispe/portfolio-agent/internal/domain/catalog"
	"github.com/cquispe/portfolio-agent/internal/domain/conversation"
)

// ChatService answers one user message given the prior conversation.
type ChatService interface {
	Chat(ctx context.Context, message string, history []conversation.Message) (string, error)
}

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	Chat    ChatService
	Catalog *catalog.Catalog
}

// HandleRoot describes the API surface.
func (h *Handlers) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Portfolio Chat API",
		"endpoints": map[string]string{
			"chat":      "/api/chat",
			"projects":  "/api/projects",
			"expertise": "/api/expertise",
		},
	})
}

type chatRequest struct {
	Message string                 `json:"message"`
	History []conversation.Message `json:"history"`
}

type chatResponse struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// HandleChat runs one conversation turn through the agent.
func (h *Handlers) HandleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[chatRequest](w, r)
	if !ok {
		return
	}

	answer, err := h.Chat.Chat(r.Context(), req.Message, req.History)
	if err != nil {
		slog.Error("chat failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: answer, Status: "success"})
}

// HandleProjects searches the catalog with the query-string filters. An
// empty catalog answers 200 with an error payload, matching the tool-level
// contract the model sees.
func (h *Handlers) HandleProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}
	includeML := false
	if raw := q.Get("incluye_ml"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "incluye_ml must be a boolean")
			return
		}
		includeML = parsed
	}

	result, err := h.Catalog.Search(catalog.Filters{
		Domain:      q.Get("dominio"),
		Technology:  q.Get("tecnologia"),
		ProjectType: q.Get("tipo_proyecto"),
		MLOnly:      includeML,
		Limit:       limit,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNoCatalog) {
			writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
			return
		}
		slog.Error("project search failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleExpertise serves the aggregated expertise view for a category.
func (h *Handlers) HandleExpertise(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("categoria")
	if category == "" {
		category = "general"
	}

	result, err := h.Catalog.Expertise(category)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrUnknownCategory):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNoMetadata):
			writeJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
		default:
			slog.Error("expertise lookup failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleHealth reports service health and catalog readiness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"projects":     h.Catalog.Size(),
		"has_metadata": h.Catalog.HasMetadata(),
	})
}
