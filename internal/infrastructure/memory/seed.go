package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/logger"
)

// PasswordHasher is the subset of the security hasher seeding needs.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// SeedUsers inserts the demo admin account so the dashboard is reachable
// on a fresh start. Skipped silently when the email is already taken.
func SeedUsers(ctx context.Context, repo *UserRepo, hasher PasswordHasher, adminPassword string) error {
	if adminPassword == "" {
		adminPassword = "admin1234"
	}

	if _, err := repo.GetByEmail(ctx, "admin@example.com"); err == nil {
		return nil
	}

	hash, err := hasher.Hash(adminPassword)
	if err != nil {
		return err
	}

	_, err = repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        "admin@example.com",
		FirstName:    "Admin",
		LastName:     "User",
		Phone:        "0000000000",
		PasswordHash: hash,
		Role:         string(domain.RoleAdmin),
		Verified:     true,
	})
	if err != nil {
		return err
	}
	logger.WithCtx(ctx).Info().Str("email", "admin@example.com").Msg("seeded admin user")
	return nil
}

// SeedEvents loads the demo catalogue a fresh instance starts with.
func SeedEvents(ctx context.Context, repo *EventRepo) error {
	demo := []domain.Event{
		{
			Title:       "Tech Summit 2025",
			Date:        "2025-03-15",
			Location:    "San Francisco, CA",
			Price:       299,
			Description: "Join industry leaders for three days of talks, workshops and networking across AI, cloud and security tracks.",
			Attendees:   120,
		},
		{
			Title:       "Music Festival",
			Date:        "2025-07-20",
			Location:    "Austin, TX",
			Price:       150,
			Description: "An open-air weekend with headline acts across four stages, food trucks and camping on site.",
			Attendees:   5000,
		},
		{
			Title:       "Art Gallery Opening",
			Date:        "2025-05-10",
			Location:    "New York, NY",
			Price:       50,
			Description: "An evening preview of contemporary works with the artists in attendance. Includes a guided tour.",
			Attendees:   80,
		},
	}

	for _, e := range demo {
		e.ID = uuid.NewString()
		if _, err := repo.Create(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
