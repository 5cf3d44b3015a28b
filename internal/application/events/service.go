package events

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/eventflow/internal/application/reports"
	"github.com/baechuer/eventflow/internal/domain"
)

// DefaultImage is served when an event is created without any image.
const DefaultImage = "https://www.hpe.com/us/en/events.html"

type Service struct {
	repo     EventRepo
	baseURL  string // public origin, e.g. http://localhost:5000
	activity reports.Recorder
}

func NewService(repo EventRepo, baseURL string, activity reports.Recorder) *Service {
	return &Service{
		repo:     repo,
		baseURL:  strings.TrimRight(baseURL, "/"),
		activity: activity,
	}
}

// List returns all events with locally stored image names rewritten to
// fully-qualified URLs.
func (s *Service) List(ctx context.Context) ([]domain.Event, error) {
	evts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Event, 0, len(evts))
	for _, e := range evts {
		e.Image = s.publicImage(e.Image)
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Event, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}
	e.Image = s.publicImage(e.Image)
	return e, nil
}

type CreateInput struct {
	Title       string
	Date        string
	Location    string
	Price       float64
	Description string
	Image       string // stored object name or external URL; empty for default
}

// Create assigns a collision-resistant id, defaults the attendee count to
// zero and echoes back a display-ready record.
func (s *Service) Create(ctx context.Context, in CreateInput) (domain.Event, error) {
	image := in.Image
	if image == "" {
		image = DefaultImage
	}

	e := domain.Event{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Date:        in.Date,
		Location:    in.Location,
		Price:       in.Price,
		Description: in.Description,
		Image:       image,
		Attendees:   0,
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		return domain.Event{}, err
	}

	if s.activity != nil {
		s.activity.Record("Event Created", created.Title, "info")
	}

	created.Image = s.publicImage(created.Image)
	return created, nil
}

// Delete is idempotent: deleting an id that never existed succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.activity != nil {
		s.activity.Record("Event Deleted", id, "warning")
	}
	return nil
}

// publicImage rewrites stored object names to retrievable URLs. External
// URLs and data URIs pass through untouched.
func (s *Service) publicImage(image string) string {
	if image == "" {
		return DefaultImage
	}
	if strings.HasPrefix(image, "http") || strings.HasPrefix(image, "data:") {
		return image
	}
	return s.baseURL + "/uploads/" + image
}
