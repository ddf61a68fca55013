package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Employment type tags. Stored as free strings; requests only require presence.
const (
	EmploymentFullTime = "FULL_TIME"
	EmploymentPartTime = "PART_TIME"
	EmploymentContract = "CONTRACT"
	EmploymentRemote   = "REMOTE"
)

type Job struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Location           string           `json:"location"`
	Skills             []string         `json:"skills"`
	ExperienceRequired *int             `json:"experienceRequired"`
	SalaryMin          *decimal.Decimal `json:"salaryMin"`
	SalaryMax          *decimal.Decimal `json:"salaryMax"`
	EmploymentType     string           `json:"employmentType"`
	PostedBy           string           `json:"postedBy"`
	IsActive           bool             `json:"isActive"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// JobQuery is the composite predicate behind every job listing.
// Zero values are ignored, so JobQuery{ActiveOnly: true} lists all active jobs.
type JobQuery struct {
	ActiveOnly bool
	PostedBy   string

	// Term matches title, description or location as a case-insensitive literal
	// substring, or a skill exactly (case-sensitive).
	Term string

	Title         string
	Location      string
	Skills        []string
	MaxExperience *int
}

// JobFilter carries the optional arguments of the filter endpoint.
type JobFilter struct {
	Title              string
	Location           string
	Skills             []string
	ExperienceRequired *int
}

type JobRequest struct {
	Title              string           `json:"title" binding:"required"`
	Description        string           `json:"description" binding:"required"`
	Location           string           `json:"location" binding:"required"`
	Skills             []string         `json:"skills"`
	ExperienceRequired *int             `json:"experienceRequired" binding:"omitempty,min=0"`
	SalaryMin          *decimal.Decimal `json:"salaryMin"`
	SalaryMax          *decimal.Decimal `json:"salaryMax"`
	EmploymentType     string           `json:"employmentType" binding:"required"`
}

type JobResponse struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Location           string           `json:"location"`
	Skills             []string         `json:"skills"`
	ExperienceRequired *int             `json:"experienceRequired"`
	SalaryMin          *decimal.Decimal `json:"salaryMin"`
	SalaryMax          *decimal.Decimal `json:"salaryMax"`
	EmploymentType     string           `json:"employmentType"`
	PostedBy           string           `json:"postedBy"`
	PostedByName       string           `json:"postedByName"`
	IsActive           bool             `json:"isActive"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// JobSortFields maps accepted sortBy values to the stored field names.
var JobSortFields = map[string]string{
	"createdAt":          "createdAt",
	"updatedAt":          "updatedAt",
	"title":              "title",
	"location":           "location",
	"experienceRequired": "experienceRequired",
	"salaryMin":          "salaryMin",
	"salaryMax":          "salaryMax",
	"employmentType":     "employmentType",
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*Job, error)
	// Update rewrites every mutable field plus IsActive and UpdatedAt.
	Update(ctx context.Context, job *Job) error
	List(ctx context.Context, q JobQuery, p PageRequest) ([]Job, int64, error)
}

type JobUsecase interface {
	CreateJob(ctx context.Context, req JobRequest, callerID string) (*JobResponse, error)
	GetJobByID(ctx context.Context, id string) (*JobResponse, error)
	ListActiveJobs(ctx context.Context, p PageRequest) (*Page[JobResponse], error)
	SearchJobs(ctx context.Context, term string, p PageRequest) (*Page[JobResponse], error)
	FilterJobs(ctx context.Context, f JobFilter, p PageRequest) (*Page[JobResponse], error)
	GetJobsByRecruiter(ctx context.Context, recruiterID string, p PageRequest) (*Page[JobResponse], error)
	UpdateJob(ctx context.Context, id string, req JobRequest, callerID string) (*JobResponse, error)
	DeleteJob(ctx context.Context, id string, callerID string) error
}
