// Package mongo stores users, jobs and applications in MongoDB collections.
package mongo

import (
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	usersCollection        = "users"
	jobsCollection         = "jobs"
	applicationsCollection = "applications"
)

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Role      string             `bson:"role"`
	IsActive  bool               `bson:"isActive"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *userDoc) toDomain() domain.User {
	return domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Username:  d.Username,
		Password:  d.Password,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Role:      domain.Role(d.Role),
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func newUserDoc(u *domain.User) userDoc {
	return userDoc{
		Email:     u.Email,
		Username:  u.Username,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type jobDoc struct {
	ID                 primitive.ObjectID    `bson:"_id,omitempty"`
	Title              string                `bson:"title"`
	Description        string                `bson:"description"`
	Location           string                `bson:"location"`
	Skills             []string              `bson:"skills"`
	ExperienceRequired *int                  `bson:"experienceRequired"`
	SalaryMin          *primitive.Decimal128 `bson:"salaryMin"`
	SalaryMax          *primitive.Decimal128 `bson:"salaryMax"`
	EmploymentType     string                `bson:"employmentType"`
	PostedBy           string                `bson:"postedBy"`
	IsActive           bool                  `bson:"isActive"`
	CreatedAt          time.Time             `bson:"createdAt"`
	UpdatedAt          time.Time             `bson:"updatedAt"`
}

func newJobDoc(j *domain.Job) (jobDoc, error) {
	salaryMin, err := toDecimal128(j.SalaryMin)
	if err != nil {
		return jobDoc{}, err
	}
	salaryMax, err := toDecimal128(j.SalaryMax)
	if err != nil {
		return jobDoc{}, err
	}
	skills := j.Skills
	if skills == nil {
		skills = []string{}
	}
	return jobDoc{
		Title:              j.Title,
		Description:        j.Description,
		Location:           j.Location,
		Skills:             skills,
		ExperienceRequired: j.ExperienceRequired,
		SalaryMin:          salaryMin,
		SalaryMax:          salaryMax,
		EmploymentType:     j.EmploymentType,
		PostedBy:           j.PostedBy,
		IsActive:           j.IsActive,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}, nil
}

func (d *jobDoc) toDomain() (domain.Job, error) {
	salaryMin, err := fromDecimal128(d.SalaryMin)
	if err != nil {
		return domain.Job{}, err
	}
	salaryMax, err := fromDecimal128(d.SalaryMax)
	if err != nil {
		return domain.Job{}, err
	}
	return domain.Job{
		ID:                 d.ID.Hex(),
		Title:              d.Title,
		Description:        d.Description,
		Location:           d.Location,
		Skills:             d.Skills,
		ExperienceRequired: d.ExperienceRequired,
		SalaryMin:          salaryMin,
		SalaryMax:          salaryMax,
		EmploymentType:     d.EmploymentType,
		PostedBy:           d.PostedBy,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

type applicationDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CandidateID string             `bson:"candidateId"`
	JobID       string             `bson:"jobId"`
	Status      string             `bson:"status"`
	Resume      string             `bson:"resume"`
	CoverLetter *string            `bson:"coverLetter"`
	AppliedAt   time.Time          `bson:"appliedAt"`
	ReviewedAt  *time.Time         `bson:"reviewedAt"`
	Notes       *string            `bson:"notes"`
}

func newApplicationDoc(a *domain.Application) applicationDoc {
	return applicationDoc{
		CandidateID: a.CandidateID,
		JobID:       a.JobID,
		Status:      string(a.Status),
		Resume:      a.Resume,
		CoverLetter: a.CoverLetter,
		AppliedAt:   a.AppliedAt,
		ReviewedAt:  a.ReviewedAt,
		Notes:       a.Notes,
	}
}

func (d *applicationDoc) toDomain() domain.Application {
	return domain.Application{
		ID:          d.ID.Hex(),
		CandidateID: d.CandidateID,
		JobID:       d.JobID,
		Status:      domain.ApplicationStatus(d.Status),
		Resume:      d.Resume,
		CoverLetter: d.CoverLetter,
		AppliedAt:   d.AppliedAt,
		ReviewedAt:  d.ReviewedAt,
		Notes:       d.Notes,
	}
}

func toDecimal128(d *decimal.Decimal) (*primitive.Decimal128, error) {
	if d == nil {
		return nil, nil
	}
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func fromDecimal128(v *primitive.Decimal128) (*decimal.Decimal, error) {
	if v == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// parseID converts a hex id. ok is false for anything that cannot name a document.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func parseIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := parseID(id); ok {
			out = append(out, oid)
		}
	}
	return out
}
