package postgres_test

import (
	"testing"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestBuildJobWhere_Filter(t *testing.T) {
	where, args := postgres.BuildJobWhere(domain.JobQuery{
		ActiveOnly:    true,
		Title:         "senior",
		Location:      "berlin",
		Skills:        []string{"go"},
		MaxExperience: intPtr(5),
	})

	assert.Equal(t,
		" WHERE is_active = TRUE AND title ILIKE $1 AND location ILIKE $2 AND skills && $3::text[] AND experience_required <= $4",
		where)
	assert.Equal(t, []interface{}{"%senior%", "%berlin%", []string{"go"}, 5}, args)
}

func TestBuildJobWhere_SearchEscapesWildcards(t *testing.T) {
	where, args := postgres.BuildJobWhere(domain.JobQuery{ActiveOnly: true, Term: `50%_off\`})

	assert.Equal(t,
		" WHERE is_active = TRUE AND (title ILIKE $1 OR description ILIKE $1 OR location ILIKE $1 OR $2 = ANY(skills))",
		where)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`, `50%_off\`}, args)
}

func TestBuildJobWhere_Empty(t *testing.T) {
	where, args := postgres.BuildJobWhere(domain.JobQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildJobWhere_Recruiter(t *testing.T) {
	where, args := postgres.BuildJobWhere(domain.JobQuery{ActiveOnly: true, PostedBy: "r1"})
	assert.Equal(t, " WHERE is_active = TRUE AND posted_by = $1", where)
	assert.Equal(t, []interface{}{"r1"}, args)
}

func TestBuildApplicationWhere(t *testing.T) {
	where, args := postgres.BuildApplicationWhere(domain.ApplicationQuery{JobID: "j1", Status: domain.StatusShortlisted})
	assert.Equal(t, " WHERE job_id = $1 AND status = $2", where)
	assert.Equal(t, []interface{}{"j1", "SHORTLISTED"}, args)
}

func TestBuildUserWhere(t *testing.T) {
	where, args := postgres.BuildUserWhere(domain.UserQuery{Role: domain.RoleRecruiter})
	assert.Equal(t, " WHERE role = $1", where)
	assert.Equal(t, []interface{}{"RECRUITER"}, args)
}

func TestOrderBy(t *testing.T) {
	cols := map[string]string{"createdAt": "created_at", "salaryMin": "salary_min"}

	assert.Equal(t, " ORDER BY salary_min ASC NULLS FIRST, id ASC",
		postgres.OrderBy(domain.PageRequest{SortBy: "salaryMin", SortDir: domain.SortAsc}, cols, "created_at"))
	assert.Equal(t, " ORDER BY created_at DESC NULLS LAST, id DESC",
		postgres.OrderBy(domain.PageRequest{SortBy: "title; DROP TABLE jobs", SortDir: domain.SortDesc}, cols, "created_at"))
}

func TestLimitOffset(t *testing.T) {
	clause, args := postgres.LimitOffset(domain.PageRequest{Page: 2, Size: 10}, []interface{}{"x"})
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []interface{}{"x", 10, int64(20)}, args)
}
