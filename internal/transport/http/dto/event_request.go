package dto

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/baechuer/eventflow/internal/domain"
)

// CreateEventRequest arrives as multipart form data (optional image file
// alongside the fields).
type CreateEventRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Date        string  `json:"date" validate:"required"`
	Location    string  `json:"location" validate:"required,max=200"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"max=5000"`
}

// CreateEventRequestFromForm pulls fields out of an already-parsed form.
// A malformed price is a validation error, not a silent zero.
func CreateEventRequestFromForm(r *http.Request) (CreateEventRequest, error) {
	req := CreateEventRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Date:        strings.TrimSpace(r.FormValue("date")),
		Location:    strings.TrimSpace(r.FormValue("location")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}

	if raw := strings.TrimSpace(r.FormValue("price")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return CreateEventRequest{}, domain.ErrInvalidField("price", "must be a number")
		}
		req.Price = price
	}
	return req, nil
}

func (r *CreateEventRequest) Validate() error { return check(r) }

// EventView is the event payload. Shapes match the stored event.
type EventView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Attendees   int     `json:"attendees"`
}

func NewEventView(e domain.Event) EventView {
	return EventView{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date,
		Location:    e.Location,
		Price:       e.Price,
		Description: e.Description,
		Image:       e.Image,
		Attendees:   e.Attendees,
	}
}

func NewEventViews(events []domain.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventView(e))
	}
	return out
}
