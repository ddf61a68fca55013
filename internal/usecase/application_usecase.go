package usecase

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgApplicationNotFound = "Application not found"
	msgAlreadyApplied      = "You have already applied for this job"
)

type applicationUsecase struct {
	appRepo  domain.ApplicationRepository
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	validate *validator.Validate
	opts     options
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	userRepo domain.UserRepository,
	validate *validator.Validate,
	opts ...Option,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo:  appRepo,
		jobRepo:  jobRepo,
		userRepo: userRepo,
		validate: validate,
		opts:     buildOptions(opts),
	}
}

// ApplyForJob submits a candidate's application. The pre-check only short-circuits
// the common case; the store's unique index decides concurrent submissions.
func (u *applicationUsecase) ApplyForJob(ctx context.Context, req domain.ApplicationRequest, candidateID string) (*domain.ApplicationResponse, error) {
	candidate, err := loadCaller(ctx, u.userRepo, candidateID)
	if err != nil {
		return nil, err
	}
	if !domain.IsCandidate(domain.CallerOf(candidate)) {
		return nil, apperror.Forbidden("Only candidates can apply for jobs")
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	job, err := u.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	if !job.IsActive {
		return nil, apperror.BadRequest("Cannot apply to inactive job")
	}

	exists, err := u.appRepo.ExistsByCandidateAndJob(ctx, candidate.ID, job.ID)
	if err != nil {
		return nil, storeError(err, "")
	}
	if exists {
		return nil, apperror.Conflict(msgAlreadyApplied)
	}

	app := &domain.Application{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Status:      domain.StatusApplied,
		Resume:      req.Resume,
		CoverLetter: req.CoverLetter,
		AppliedAt:   u.opts.now(),
	}
	if err := u.appRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict(msgAlreadyApplied)
		}
		return nil, storeError(err, "")
	}
	u.opts.metrics.RecordApplicationSubmitted()

	logger.Log.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", job.ID),
		zap.String("candidate_id", candidate.ID),
	)
	resp := toApplicationResponse(app, candidate.FullName(), job.Title)
	return &resp, nil
}

func (u *applicationUsecase) GetApplicationByID(ctx context.Context, id string) (*domain.ApplicationResponse, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	return u.single(ctx, app)
}

func (u *applicationUsecase) GetApplicationsByCandidate(ctx context.Context, candidateID string, p domain.PageRequest) (*domain.Page[domain.ApplicationResponse], error) {
	return u.list(ctx, domain.ApplicationQuery{CandidateID: candidateID}, p)
}

func (u *applicationUsecase) GetApplicationsByJob(ctx context.Context, jobID string, p domain.PageRequest) (*domain.Page[domain.ApplicationResponse], error) {
	return u.list(ctx, domain.ApplicationQuery{JobID: jobID}, p)
}

func (u *applicationUsecase) GetApplicationsByJobAndStatus(ctx context.Context, jobID string, status domain.ApplicationStatus, p domain.PageRequest) (*domain.Page[domain.ApplicationResponse], error) {
	if !status.Valid() {
		return nil, apperror.BadRequest("Invalid application status: " + string(status))
	}
	return u.list(ctx, domain.ApplicationQuery{JobID: jobID, Status: status}, p)
}

// GetApplicationStats counts a job's applications in total and per status.
func (u *applicationUsecase) GetApplicationStats(ctx context.Context, jobID string) (*domain.ApplicationStats, error) {
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, storeError(err, msgJobNotFound)
	}

	stats := &domain.ApplicationStats{
		JobID:    jobID,
		ByStatus: make(map[domain.ApplicationStatus]int64, len(domain.ApplicationStatuses)),
	}
	for _, s := range domain.ApplicationStatuses {
		n, err := u.appRepo.Count(ctx, domain.ApplicationQuery{JobID: jobID, Status: s})
		if err != nil {
			return nil, storeError(err, "")
		}
		stats.ByStatus[s] = n
		stats.Total += n
	}
	return stats, nil
}

// UpdateApplicationStatus lets the job's poster or an admin move the application
// to any status. reviewedAt is stamped on every update.
func (u *applicationUsecase) UpdateApplicationStatus(ctx context.Context, id string, req domain.ApplicationStatusUpdateRequest, callerID string) (*domain.ApplicationResponse, error) {
	app, err := u.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}

	caller, err := loadCaller(ctx, u.userRepo, callerID)
	if err != nil {
		return nil, err
	}

	// A job that no longer resolves can only be reviewed by an admin.
	job, err := u.jobRepo.GetByID(ctx, app.JobID)
	if err != nil && !isNotFound(err) {
		return nil, storeError(err, "")
	}
	if !domain.CanReviewApplication(domain.CallerOf(caller), job) {
		return nil, apperror.Forbidden("You are not allowed to review this application")
	}

	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	now := u.opts.now()
	app.Status = req.Status
	app.Notes = req.Notes
	app.ReviewedAt = &now

	if err := u.appRepo.UpdateReview(ctx, app); err != nil {
		return nil, storeError(err, msgApplicationNotFound)
	}
	u.opts.metrics.RecordStatusChange(string(app.Status))

	logger.Log.Info("application status updated",
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)),
		zap.String("by", caller.ID),
	)

	jobTitle := ""
	if job != nil {
		jobTitle = job.Title
	}
	names, err := userNames(ctx, u.userRepo, []string{app.CandidateID})
	if err != nil {
		return nil, storeError(err, "")
	}
	resp := toApplicationResponse(app, names[app.CandidateID], jobTitle)
	return &resp, nil
}

func (u *applicationUsecase) single(ctx context.Context, app *domain.Application) (*domain.ApplicationResponse, error) {
	names, err := userNames(ctx, u.userRepo, []string{app.CandidateID})
	if err != nil {
		return nil, storeError(err, "")
	}
	titles, err := jobTitles(ctx, u.jobRepo, []string{app.JobID})
	if err != nil {
		return nil, storeError(err, "")
	}
	resp := toApplicationResponse(app, names[app.CandidateID], titles[app.JobID])
	return &resp, nil
}

func (u *applicationUsecase) list(ctx context.Context, q domain.ApplicationQuery, p domain.PageRequest) (*domain.Page[domain.ApplicationResponse], error) {
	p, err := fixedSort(p, "appliedAt")
	if err != nil {
		return nil, err
	}

	apps, total, err := u.appRepo.List(ctx, q, p)
	if err != nil {
		return nil, storeError(err, "")
	}

	candidateIDs := make([]string, len(apps))
	jobIDs := make([]string, len(apps))
	for i := range apps {
		candidateIDs[i] = apps[i].CandidateID
		jobIDs[i] = apps[i].JobID
	}
	names, err := userNames(ctx, u.userRepo, candidateIDs)
	if err != nil {
		return nil, storeError(err, "")
	}
	titles, err := jobTitles(ctx, u.jobRepo, jobIDs)
	if err != nil {
		return nil, storeError(err, "")
	}

	content := make([]domain.ApplicationResponse, len(apps))
	for i := range apps {
		content[i] = toApplicationResponse(&apps[i], names[apps[i].CandidateID], titles[apps[i].JobID])
	}
	return domain.NewPage(content, p, total), nil
}
