package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go-jobportal-backend/internal/domain"
)

type pairKey struct {
	candidateID string
	jobID       string
}

type applicationRepo struct {
	mu     sync.RWMutex
	apps   map[string]domain.Application
	byPair map[pairKey]string
}

func NewApplicationRepository() domain.ApplicationRepository {
	return &applicationRepo{
		apps:   make(map[string]domain.Application),
		byPair: make(map[pairKey]string),
	}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey{app.CandidateID, app.JobID}
	if _, exists := r.byPair[key]; exists {
		return fmt.Errorf("application (%s, %s): %w", app.CandidateID, app.JobID, domain.ErrDuplicate)
	}
	if app.ID == "" {
		app.ID = newID()
	} else if _, exists := r.apps[app.ID]; exists {
		return fmt.Errorf("application id %q: %w", app.ID, domain.ErrDuplicate)
	}
	r.apps[app.ID] = *app
	r.byPair[key] = app.ID
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.apps[id]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (r *applicationRepo) ExistsByCandidateAndJob(ctx context.Context, candidateID, jobID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byPair[pairKey{candidateID, jobID}]
	return ok, nil
}

func (r *applicationRepo) List(ctx context.Context, q domain.ApplicationQuery, p domain.PageRequest) ([]domain.Application, int64, error) {
	matched := r.filter(q)
	sortBy(matched, p.SortDir, applicationComparator(p.SortBy), func(a domain.Application) string { return a.ID })
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *applicationRepo) Count(ctx context.Context, q domain.ApplicationQuery) (int64, error) {
	return int64(len(r.filter(q))), nil
}

func (r *applicationRepo) UpdateReview(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.apps[app.ID]
	if !ok {
		return fmt.Errorf("application %s: %w", app.ID, domain.ErrNotFound)
	}
	stored.Status = app.Status
	stored.Notes = app.Notes
	stored.ReviewedAt = app.ReviewedAt
	r.apps[app.ID] = stored
	return nil
}

func (r *applicationRepo) filter(q domain.ApplicationQuery) []domain.Application {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Application, 0)
	for _, a := range r.apps {
		if q.CandidateID != "" && a.CandidateID != q.CandidateID {
			continue
		}
		if q.JobID != "" && a.JobID != q.JobID {
			continue
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		out = append(out, a)
	}
	return out
}

func applicationComparator(field string) func(a, b domain.Application) int {
	switch domain.ApplicationSortFields[field] {
	case "reviewedAt":
		return func(a, b domain.Application) int { return cmpTimePtr(a.ReviewedAt, b.ReviewedAt) }
	case "status":
		return func(a, b domain.Application) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return func(a, b domain.Application) int { return a.AppliedAt.Compare(b.AppliedAt) }
	}
}
