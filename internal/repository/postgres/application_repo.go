package postgres

import (
	"context"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const applicationColumnList = `id, candidate_id, job_id, status, resume, cover_letter, applied_at, reviewed_at, notes`

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

func scanApplication(row pgx.Row, extra ...interface{}) (*domain.Application, error) {
	var a domain.Application
	dest := []interface{}{
		&a.ID, &a.CandidateID, &a.JobID, &a.Status, &a.Resume, &a.CoverLetter,
		&a.AppliedAt, &a.ReviewedAt, &a.Notes,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create relies on the unique (candidate_id, job_id) constraint for concurrent submissions.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	query := `INSERT INTO applications (` + applicationColumnList + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		app.ID, app.CandidateID, app.JobID, string(app.Status), app.Resume, app.CoverLetter,
		app.AppliedAt, app.ReviewedAt, app.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert application: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, `SELECT `+applicationColumnList+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return nil, notFoundOr(err, "application "+id)
	}
	return a, nil
}

func (r *applicationRepo) ExistsByCandidateAndJob(ctx context.Context, candidateID, jobID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE candidate_id = $1 AND job_id = $2)`
	err := r.db.QueryRow(ctx, query, candidateID, jobID).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) List(ctx context.Context, q domain.ApplicationQuery, p domain.PageRequest) ([]domain.Application, int64, error) {
	where, args := BuildApplicationWhere(q)
	window, pageArgs := LimitOffset(p, args)
	query := `SELECT ` + applicationColumnList + `, COUNT(*) OVER() FROM applications` +
		where + OrderBy(p, applicationColumns, "applied_at") + window

	rows, err := r.db.Query(ctx, query, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var apps []domain.Application
	var total int64
	for rows.Next() {
		a, err := scanApplication(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(apps) == 0 && p.Page > 0 {
		if total, err = r.Count(ctx, q); err != nil {
			return nil, 0, err
		}
	}
	return apps, total, nil
}

func (r *applicationRepo) Count(ctx context.Context, q domain.ApplicationQuery) (int64, error) {
	where, args := BuildApplicationWhere(q)
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return total, nil
}

// UpdateReview writes status, notes and reviewed_at; last write wins.
func (r *applicationRepo) UpdateReview(ctx context.Context, app *domain.Application) error {
	query := `UPDATE applications SET status = $2, notes = $3, reviewed_at = $4 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, app.ID, string(app.Status), app.Notes, app.ReviewedAt)
	if err != nil {
		return fmt.Errorf("update application %s: %w", app.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application %s: %w", app.ID, domain.ErrNotFound)
	}
	return nil
}
