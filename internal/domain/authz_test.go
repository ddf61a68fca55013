package domain_test

import (
	"context"
	"testing"

	"go-jobportal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	admin := &domain.Caller{ID: "a1", Role: domain.RoleAdmin}
	recruiter := &domain.Caller{ID: "r1", Role: domain.RoleRecruiter}
	candidate := &domain.Caller{ID: "c1", Role: domain.RoleCandidate}

	assert.True(t, domain.IsAdmin(admin))
	assert.False(t, domain.IsAdmin(recruiter))
	assert.False(t, domain.IsAdmin(nil))

	assert.True(t, domain.IsCandidate(candidate))
	assert.False(t, domain.IsCandidate(admin))

	assert.True(t, domain.IsRecruiterOrAdmin(admin))
	assert.True(t, domain.IsRecruiterOrAdmin(recruiter))
	assert.False(t, domain.IsRecruiterOrAdmin(candidate))
	assert.False(t, domain.IsRecruiterOrAdmin(nil))
}

func TestOwnershipPredicates(t *testing.T) {
	job := &domain.Job{ID: "j1", PostedBy: "r1"}
	owner := &domain.Caller{ID: "r1", Role: domain.RoleRecruiter}
	other := &domain.Caller{ID: "r2", Role: domain.RoleRecruiter}
	admin := &domain.Caller{ID: "a1", Role: domain.RoleAdmin}

	assert.True(t, domain.OwnsJob(owner, job))
	assert.False(t, domain.OwnsJob(other, job))
	assert.False(t, domain.OwnsJob(&domain.Caller{}, &domain.Job{}))

	assert.True(t, domain.CanReviewApplication(owner, job))
	assert.True(t, domain.CanReviewApplication(admin, job))
	assert.False(t, domain.CanReviewApplication(other, job))

	assert.True(t, domain.CanManageJob(admin, job))
	assert.False(t, domain.CanManageJob(other, job))
}

func TestEnums(t *testing.T) {
	assert.True(t, domain.RoleRecruiter.Valid())
	assert.False(t, domain.Role("SUPERUSER").Valid())
	assert.False(t, domain.Role("candidate").Valid())

	for _, s := range domain.ApplicationStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, domain.ApplicationStatus("ARCHIVED").Valid())
}

func TestCallerContext(t *testing.T) {
	_, ok := domain.CallerFromContext(context.Background())
	assert.False(t, ok)

	ctx := domain.ContextWithCaller(context.Background(), &domain.Caller{ID: "u1"})
	caller, ok := domain.CallerFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "u1", caller.ID)
}
