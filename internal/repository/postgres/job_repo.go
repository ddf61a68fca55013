package postgres

import (
	"context"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobColumnList = `id, title, description, location, skills, experience_required, salary_min, salary_max, employment_type, posted_by, is_active, created_at, updated_at`

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func scanJob(row pgx.Row, extra ...interface{}) (*domain.Job, error) {
	var j domain.Job
	dest := []interface{}{
		&j.ID, &j.Title, &j.Description, &j.Location, &j.Skills, &j.ExperienceRequired,
		&j.SalaryMin, &j.SalaryMax, &j.EmploymentType, &j.PostedBy, &j.IsActive,
		&j.CreatedAt, &j.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	skills := job.Skills
	if skills == nil {
		skills = []string{}
	}
	query := `INSERT INTO jobs (` + jobColumnList + `)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, skills, job.ExperienceRequired,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.PostedBy, job.IsActive,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	j, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumnList+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "job "+id)
	}
	return j, nil
}

func (r *jobRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error) {
	out := make(map[string]*domain.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+jobColumnList+` FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out[j.ID] = j
	}
	return out, rows.Err()
}

// Update leaves posted_by and created_at untouched.
func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	skills := job.Skills
	if skills == nil {
		skills = []string{}
	}
	query := `UPDATE jobs SET title = $2, description = $3, location = $4, skills = $5, experience_required = $6,
              salary_min = $7, salary_max = $8, employment_type = $9, is_active = $10, updated_at = $11
              WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Description, job.Location, skills, job.ExperienceRequired,
		job.SalaryMin, job.SalaryMax, job.EmploymentType, job.IsActive, job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job %s: %w", job.ID, domain.ErrNotFound)
	}
	return nil
}

// List returns one page and the filtered total using a window count.
func (r *jobRepo) List(ctx context.Context, q domain.JobQuery, p domain.PageRequest) ([]domain.Job, int64, error) {
	where, args := BuildJobWhere(q)
	window, pageArgs := LimitOffset(p, args)
	query := `SELECT ` + jobColumnList + `, COUNT(*) OVER() FROM jobs` + where + OrderBy(p, jobColumns, "created_at") + window

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.Job
	var total int64
	for rows.Next() {
		j, err := scanJob(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// A page past the end has no rows to carry the window count.
	if len(jobs) == 0 && p.Page > 0 {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`+where, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count jobs: %w", err)
		}
	}
	return jobs, total, nil
}
