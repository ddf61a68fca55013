package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type stores struct {
	users domain.UserRepository
	jobs  domain.JobRepository
	apps  domain.ApplicationRepository
}

func newStores() stores {
	return stores{
		users: memory.NewUserRepository(),
		jobs:  memory.NewJobRepository(),
		apps:  memory.NewApplicationRepository(),
	}
}

func (s stores) user(t *testing.T, id string, role domain.Role) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:        id,
		Email:     id + "@example.com",
		Username:  id,
		Password:  "hash",
		FirstName: "First-" + id,
		LastName:  "Last",
		Role:      role,
		IsActive:  true,
		CreatedAt: t0,
		UpdatedAt: t0,
	}
	require.NoError(t, s.users.Create(context.Background(), u))
	return u
}

func (s stores) job(t *testing.T, j domain.Job) *domain.Job {
	t.Helper()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = t0
		j.UpdatedAt = t0
	}
	require.NoError(t, s.jobs.Create(context.Background(), &j))
	return &j
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func firstPage() domain.PageRequest {
	return domain.PageRequest{Page: 0, Size: 10}
}
