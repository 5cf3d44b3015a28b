package events

import (
	"context"
	"io"

	"github.com/baechuer/eventflow/internal/domain"
)

/*
EventRepo
---------
Persistence port for event records. The demo backend is in-memory;
anything honoring this contract can be substituted without touching
the service.
*/
type EventRepo interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id string) (domain.Event, error)
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

/*
ImageStorage
------------
Stores uploaded image files and returns the stored object name.
Implementations: local disk (default), S3.
*/
type ImageStorage interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) (string, error)
}
