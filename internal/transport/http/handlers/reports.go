package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/eventflow/internal/application/reports"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

type ReportsHandler struct {
	svc *reports.Service
}

func NewReportsHandler(svc *reports.Service) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Get serves a canned report by type. Admin only (enforced by the router).
// GET /api/reports/{type}
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Get(chi.URLParam(r, "type"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, report)
}
