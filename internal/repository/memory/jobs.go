package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go-jobportal-backend/internal/domain"
)

type jobRepo struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewJobRepository() domain.JobRepository {
	return &jobRepo{jobs: make(map[string]domain.Job)}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if job.ID == "" {
		job.ID = newID()
	} else if _, exists := r.jobs[job.ID]; exists {
		return fmt.Errorf("job id %q: %w", job.ID, domain.ErrDuplicate)
	}
	r.jobs[job.ID] = copyJob(*job)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	j = copyJob(j)
	return &j, nil
}

func (r *jobRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*domain.Job, len(ids))
	for _, id := range ids {
		if j, ok := r.jobs[id]; ok {
			j = copyJob(j)
			out[id] = &j
		}
	}
	return out, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.jobs[job.ID]
	if !ok {
		return fmt.Errorf("job %s: %w", job.ID, domain.ErrNotFound)
	}
	updated := copyJob(*job)
	updated.PostedBy = stored.PostedBy
	updated.CreatedAt = stored.CreatedAt
	r.jobs[job.ID] = updated
	return nil
}

func (r *jobRepo) List(ctx context.Context, q domain.JobQuery, p domain.PageRequest) ([]domain.Job, int64, error) {
	r.mu.RLock()
	matched := make([]domain.Job, 0)
	for _, j := range r.jobs {
		if MatchJob(&j, q) {
			matched = append(matched, copyJob(j))
		}
	}
	r.mu.RUnlock()

	sortBy(matched, p.SortDir, jobComparator(p.SortBy), func(j domain.Job) string { return j.ID })
	return paginate(matched, p), int64(len(matched)), nil
}

// MatchJob evaluates q against a single job.
func MatchJob(j *domain.Job, q domain.JobQuery) bool {
	if q.ActiveOnly && !j.IsActive {
		return false
	}
	if q.PostedBy != "" && j.PostedBy != q.PostedBy {
		return false
	}
	if q.Term != "" {
		hit := containsFold(j.Title, q.Term) ||
			containsFold(j.Description, q.Term) ||
			containsFold(j.Location, q.Term) ||
			containsExact(j.Skills, q.Term)
		if !hit {
			return false
		}
	}
	if q.Title != "" && !containsFold(j.Title, q.Title) {
		return false
	}
	if q.Location != "" && !containsFold(j.Location, q.Location) {
		return false
	}
	if len(q.Skills) > 0 && !overlaps(j.Skills, q.Skills) {
		return false
	}
	if q.MaxExperience != nil {
		if j.ExperienceRequired == nil || *j.ExperienceRequired > *q.MaxExperience {
			return false
		}
	}
	return true
}

func containsExact(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(stored, wanted []string) bool {
	for _, w := range wanted {
		if containsExact(stored, w) {
			return true
		}
	}
	return false
}

func copyJob(j domain.Job) domain.Job {
	j.Skills = cloneStrings(j.Skills)
	if j.ExperienceRequired != nil {
		v := *j.ExperienceRequired
		j.ExperienceRequired = &v
	}
	if j.SalaryMin != nil {
		v := *j.SalaryMin
		j.SalaryMin = &v
	}
	if j.SalaryMax != nil {
		v := *j.SalaryMax
		j.SalaryMax = &v
	}
	return j
}

func jobComparator(field string) func(a, b domain.Job) int {
	switch domain.JobSortFields[field] {
	case "updatedAt":
		return func(a, b domain.Job) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case "title":
		return func(a, b domain.Job) int { return strings.Compare(a.Title, b.Title) }
	case "location":
		return func(a, b domain.Job) int { return strings.Compare(a.Location, b.Location) }
	case "employmentType":
		return func(a, b domain.Job) int { return strings.Compare(a.EmploymentType, b.EmploymentType) }
	case "experienceRequired":
		return func(a, b domain.Job) int { return cmpIntPtr(a.ExperienceRequired, b.ExperienceRequired) }
	case "salaryMin":
		return func(a, b domain.Job) int { return cmpDecimalPtr(a.SalaryMin, b.SalaryMin) }
	case "salaryMax":
		return func(a, b domain.Job) int { return cmpDecimalPtr(a.SalaryMax, b.SalaryMax) }
	default:
		return func(a, b domain.Job) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}
