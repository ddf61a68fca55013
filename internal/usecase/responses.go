package usecase

import (
	"context"

	"go-jobportal-backend/internal/domain"
)

func toJobResponse(j *domain.Job, postedByName string) domain.JobResponse {
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return domain.JobResponse{
		ID:                 j.ID,
		Title:              j.Title,
		Description:        j.Description,
		Location:           j.Location,
		Skills:             skills,
		ExperienceRequired: j.ExperienceRequired,
		SalaryMin:          j.SalaryMin,
		SalaryMax:          j.SalaryMax,
		EmploymentType:     j.EmploymentType,
		PostedBy:           j.PostedBy,
		PostedByName:       postedByName,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}
}

func toApplicationResponse(a *domain.Application, candidateName, jobTitle string) domain.ApplicationResponse {
	return domain.ApplicationResponse{
		ID:            a.ID,
		CandidateID:   a.CandidateID,
		CandidateName: candidateName,
		JobID:         a.JobID,
		JobTitle:      jobTitle,
		Status:        a.Status,
		Resume:        a.Resume,
		CoverLetter:   a.CoverLetter,
		AppliedAt:     a.AppliedAt,
		ReviewedAt:    a.ReviewedAt,
		Notes:         a.Notes,
	}
}

// userNames resolves display names for a set of user ids. Unknown ids map to "".
func userNames(ctx context.Context, repo domain.UserRepository, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	users, err := repo.GetByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	for id, u := range users {
		names[id] = u.FullName()
	}
	return names, nil
}

func jobTitles(ctx context.Context, repo domain.JobRepository, ids []string) (map[string]string, error) {
	titles := make(map[string]string, len(ids))
	jobs, err := repo.GetByIDs(ctx, uniq(ids))
	if err != nil {
		return nil, err
	}
	for id, j := range jobs {
		titles[id] = j.Title
	}
	return titles, nil
}

func uniq(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
