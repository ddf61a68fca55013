package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

// Application status constants. Any status may follow any other; APPLIED is only
// ever set at creation.
const (
	StatusApplied     ApplicationStatus = "APPLIED"
	StatusReviewed    ApplicationStatus = "REVIEWED"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusRejected    ApplicationStatus = "REJECTED"
	StatusAccepted    ApplicationStatus = "ACCEPTED"
	StatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// ApplicationStatuses lists every status in declaration order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusReviewed,
	StatusShortlisted,
	StatusRejected,
	StatusAccepted,
	StatusWithdrawn,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Application is a candidate's application to one job. (CandidateID, JobID) is unique.
type Application struct {
	ID          string            `json:"id"`
	CandidateID string            `json:"candidateId"`
	JobID       string            `json:"jobId"`
	Status      ApplicationStatus `json:"status"`
	Resume      string            `json:"resume"`
	CoverLetter *string           `json:"coverLetter"`
	AppliedAt   time.Time         `json:"appliedAt"`
	ReviewedAt  *time.Time        `json:"reviewedAt"`
	Notes       *string           `json:"notes"`
}

// ApplicationQuery selects applications; empty fields are not constrained.
type ApplicationQuery struct {
	CandidateID string
	JobID       string
	Status      ApplicationStatus
}

type ApplicationRequest struct {
	JobID       string  `json:"jobId" binding:"required"`
	Resume      string  `json:"resume" binding:"required"`
	CoverLetter *string `json:"coverLetter"`
}

type ApplicationStatusUpdateRequest struct {
	Status ApplicationStatus `json:"status" binding:"required,appstatus"`
	Notes  *string           `json:"notes"`
}

type ApplicationResponse struct {
	ID            string            `json:"id"`
	CandidateID   string            `json:"candidateId"`
	CandidateName string            `json:"candidateName"`
	JobID         string            `json:"jobId"`
	JobTitle      string            `json:"jobTitle"`
	Status        ApplicationStatus `json:"status"`
	Resume        string            `json:"resume"`
	CoverLetter   *string           `json:"coverLetter"`
	AppliedAt     time.Time         `json:"appliedAt"`
	ReviewedAt    *time.Time        `json:"reviewedAt"`
	Notes         *string           `json:"notes"`
}

// ApplicationStats counts applications of one job, in total and per status.
type ApplicationStats struct {
	JobID    string                      `json:"jobId"`
	Total    int64                       `json:"total"`
	ByStatus map[ApplicationStatus]int64 `json:"byStatus"`
}

type ApplicationRepository interface {
	// Create returns ErrDuplicate when the candidate already applied to the job.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ExistsByCandidateAndJob(ctx context.Context, candidateID, jobID string) (bool, error)
	List(ctx context.Context, q ApplicationQuery, p PageRequest) ([]Application, int64, error)
	Count(ctx context.Context, q ApplicationQuery) (int64, error)
	// UpdateReview persists Status, Notes and ReviewedAt (last write wins).
	UpdateReview(ctx context.Context, app *Application) error
}

type ApplicationUsecase interface {
	ApplyForJob(ctx context.Context, req ApplicationRequest, candidateID string) (*ApplicationResponse, error)
	GetApplicationByID(ctx context.Context, id string) (*ApplicationResponse, error)
	GetApplicationsByCandidate(ctx context.Context, candidateID string, p PageRequest) (*Page[ApplicationResponse], error)
	GetApplicationsByJob(ctx context.Context, jobID string, p PageRequest) (*Page[ApplicationResponse], error)
	GetApplicationsByJobAndStatus(ctx context.Context, jobID string, status ApplicationStatus, p PageRequest) (*Page[ApplicationResponse], error)
	GetApplicationStats(ctx context.Context, jobID string) (*ApplicationStats, error)
	UpdateApplicationStatus(ctx context.Context, id string, req ApplicationStatusUpdateRequest, callerID string) (*ApplicationResponse, error)
}

// ApplicationSortFields maps accepted sort keys to stored field names. Listings
// default to appliedAt descending.
var ApplicationSortFields = map[string]string{
	"appliedAt":  "appliedAt",
	"reviewedAt": "reviewedAt",
	"status":     "status",
}
