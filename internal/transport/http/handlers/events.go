package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/eventflow/internal/application/events"
	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/logger"
	"github.com/baechuer/eventflow/internal/transport/http/dto"
	"github.com/baechuer/eventflow/internal/transport/http/middleware"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

type EventsHandler struct {
	svc    *events.Service
	images events.ImageStorage
}

func NewEventsHandler(svc *events.Service, images events.ImageStorage) *EventsHandler {
	return &EventsHandler{svc: svc, images: images}
}

// List is public: the catalogue is browsable without a session.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	evts, err := h.svc.List(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewEventViews(evts))
}

func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.NewEventView(e))
}

// Create accepts multipart form data with an optional image file.
// Requires a session (enforced by the router).
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.WriteError(w, r, domain.ErrInvalidForm(err))
		return
	}

	req, err := dto.CreateEventRequestFromForm(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	image := ""
	if file, header, err := r.FormFile("image"); err == nil {
		defer file.Close()
		stored, err := h.images.Save(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			response.WriteError(w, r, err)
			return
		}
		image = stored
	}

	created, err := h.svc.Create(r.Context(), events.CreateInput{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Price:       req.Price,
		Description: req.Description,
		Image:       image,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	middleware.EventsCreatedTotal.Inc()
	logger.WithCtx(r.Context()).Info().
		Str("event_id", created.ID).
		Str("title", created.Title).
		Msg("event_created")

	response.Created(w, dto.NewEventView(created))
}

// Delete is idempotent. Requires a session (enforced by the router).
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.NoContent(w)
}
