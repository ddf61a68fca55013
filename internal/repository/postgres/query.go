package postgres

import (
	"errors"
	"fmt"
	"strings"

	"go-jobportal-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

var jobColumns = map[string]string{
	"createdAt":          "created_at",
	"updatedAt":          "updated_at",
	"title":              "title",
	"location":           "location",
	"experienceRequired": "experience_required",
	"salaryMin":          "salary_min",
	"salaryMax":          "salary_max",
	"employmentType":     "employment_type",
}

var userColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"email":     "email",
	"username":  "username",
	"firstName": "first_name",
	"lastName":  "last_name",
	"role":      "role",
	"isActive":  "is_active",
}

var applicationColumns = map[string]string{
	"appliedAt":  "applied_at",
	"reviewedAt": "reviewed_at",
	"status":     "status",
}

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conditions []string
	args       []interface{}
}

// arg appends v and returns its placeholder.
func (w *whereBuilder) arg(v interface{}) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) add(cond string) {
	w.conditions = append(w.conditions, cond)
}

func (w *whereBuilder) clause() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// likeContains builds an ILIKE pattern that matches s literally.
func likeContains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// BuildJobWhere translates a JobQuery into a WHERE clause and its arguments.
func BuildJobWhere(q domain.JobQuery) (string, []interface{}) {
	w := &whereBuilder{}
	if q.ActiveOnly {
		w.add("is_active = TRUE")
	}
	if q.PostedBy != "" {
		w.add("posted_by = " + w.arg(q.PostedBy))
	}
	if q.Term != "" {
		pattern := w.arg(likeContains(q.Term))
		term := w.arg(q.Term)
		w.add(fmt.Sprintf("(title ILIKE %[1]s OR description ILIKE %[1]s OR location ILIKE %[1]s OR %[2]s = ANY(skills))", pattern, term))
	}
	if q.Title != "" {
		w.add("title ILIKE " + w.arg(likeContains(q.Title)))
	}
	if q.Location != "" {
		w.add("location ILIKE " + w.arg(likeContains(q.Location)))
	}
	if len(q.Skills) > 0 {
		w.add("skills && " + w.arg(q.Skills) + "::text[]")
	}
	if q.MaxExperience != nil {
		w.add("experience_required <= " + w.arg(*q.MaxExperience))
	}
	return w.clause(), w.args
}

func BuildApplicationWhere(q domain.ApplicationQuery) (string, []interface{}) {
	w := &whereBuilder{}
	if q.CandidateID != "" {
		w.add("candidate_id = " + w.arg(q.CandidateID))
	}
	if q.JobID != "" {
		w.add("job_id = " + w.arg(q.JobID))
	}
	if q.Status != "" {
		w.add("status = " + w.arg(string(q.Status)))
	}
	return w.clause(), w.args
}

func BuildUserWhere(q domain.UserQuery) (string, []interface{}) {
	w := &whereBuilder{}
	if q.Role != "" {
		w.add("role = " + w.arg(string(q.Role)))
	}
	return w.clause(), w.args
}

// OrderBy resolves p.SortBy through columns (falling back to def) and adds id as a
// tie-breaker. NULLs sort first ascending and last descending.
func OrderBy(p domain.PageRequest, columns map[string]string, def string) string {
	col, ok := columns[p.SortBy]
	if !ok {
		col = def
	}
	if p.SortDir == domain.SortDesc {
		return fmt.Sprintf(" ORDER BY %s DESC NULLS LAST, id DESC", col)
	}
	return fmt.Sprintf(" ORDER BY %s ASC NULLS FIRST, id ASC", col)
}

// LimitOffset appends the page window to args.
func LimitOffset(p domain.PageRequest, args []interface{}) (string, []interface{}) {
	args = append(args, p.Size, p.Offset())
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)), args
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}
