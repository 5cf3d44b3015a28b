package http_handlers

import (
	"net/http"

	"github.com/baechuer/eventflow/internal/application/assist"
	"github.com/baechuer/eventflow/internal/transport/http/dto"
	"github.com/baechuer/eventflow/internal/transport/http/middleware"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

type AssistHandler struct {
	svc *assist.Service
}

func NewAssistHandler(svc *assist.Service) *AssistHandler {
	return &AssistHandler{svc: svc}
}

// GenerateDescription drafts an event description. Always succeeds: an
// unconfigured or failing upstream degrades to a canned reply.
func (h *AssistHandler) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateDescriptionRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.AssistRequestsTotal.WithLabelValues("generate").Inc()
	out := h.svc.GenerateDescription(r.Context(), req.Title, req.Location, req.Keywords)
	response.OK(w, dto.GenerateDescriptionData{Description: out})
}

func (h *AssistHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	history := make([]assist.Message, 0, len(req.History))
	for _, t := range req.History {
		history = append(history, assist.Message{Role: t.Role, Content: t.Content})
	}

	middleware.AssistRequestsTotal.WithLabelValues("chat").Inc()
	out := h.svc.Chat(r.Context(), req.Message, history)
	response.OK(w, dto.ChatData{Reply: out})
}
