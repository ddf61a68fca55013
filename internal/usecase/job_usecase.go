package usecase

import (
	"context"
	"strings"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const msgJobNotFound = "Job not found"

type jobUsecase struct {
	jobRepo  domain.JobRepository
	userRepo domain.UserRepository
	validate *validator.Validate
	opts     options
}

func NewJobUsecase(jobRepo domain.JobRepository, userRepo domain.UserRepository, validate *validator.Validate, opts ...Option) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		validate: validate,
		opts:     buildOptions(opts),
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, req domain.JobRequest, callerID string) (*domain.JobResponse, error) {
	caller, err := loadCaller(ctx, u.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if !domain.IsRecruiterOrAdmin(domain.CallerOf(caller)) {
		return nil, apperror.Forbidden("Only recruiters and admins can post jobs")
	}
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	now := u.opts.now()
	job := &domain.Job{
		PostedBy:  caller.ID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyJobRequest(job, req)

	if err := u.jobRepo.Create(ctx, job); err != nil {
		return nil, storeError(err, msgJobNotFound)
	}

	logger.Log.Info("job created", zap.String("job_id", job.ID), zap.String("posted_by", job.PostedBy))
	resp := toJobResponse(job, caller.FullName())
	return &resp, nil
}

func (u *jobUsecase) GetJobByID(ctx context.Context, id string) (*domain.JobResponse, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return u.single(ctx, job)
}

func (u *jobUsecase) ListActiveJobs(ctx context.Context, p domain.PageRequest) (*domain.Page[domain.JobResponse], error) {
	p, err := preparePage(p, domain.JobSortFields, "createdAt")
	if err != nil {
		return nil, err
	}
	return u.list(ctx, domain.JobQuery{ActiveOnly: true}, p)
}

func (u *jobUsecase) SearchJobs(ctx context.Context, term string, p domain.PageRequest) (*domain.Page[domain.JobResponse], error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperror.BadRequest("Search query is required")
	}
	p, err := fixedSort(p, "createdAt")
	if err != nil {
		return nil, err
	}
	return u.list(ctx, domain.JobQuery{ActiveOnly: true, Term: term}, p)
}

func (u *jobUsecase) FilterJobs(ctx context.Context, f domain.JobFilter, p domain.PageRequest) (*domain.Page[domain.JobResponse], error) {
	if f.ExperienceRequired != nil && *f.ExperienceRequired < 0 {
		return nil, apperror.BadRequest("experienceRequired must not be negative")
	}
	p, err := fixedSort(p, "createdAt")
	if err != nil {
		return nil, err
	}

	q := domain.JobQuery{
		ActiveOnly:    true,
		Title:         strings.TrimSpace(f.Title),
		Location:      strings.TrimSpace(f.Location),
		MaxExperience: f.ExperienceRequired,
	}
	for _, s := range f.Skills {
		if s = strings.TrimSpace(s); s != "" {
			q.Skills = append(q.Skills, s)
		}
	}
	return u.list(ctx, q, p)
}

func (u *jobUsecase) GetJobsByRecruiter(ctx context.Context, recruiterID string, p domain.PageRequest) (*domain.Page[domain.JobResponse], error) {
	p, err := fixedSort(p, "createdAt")
	if err != nil {
		return nil, err
	}
	return u.list(ctx, domain.JobQuery{ActiveOnly: true, PostedBy: recruiterID}, p)
}

func (u *jobUsecase) UpdateJob(ctx context.Context, id string, req domain.JobRequest, callerID string) (*domain.JobResponse, error) {
	job, err := u.authorizedJob(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if err := u.validateRequest(req); err != nil {
		return nil, err
	}

	applyJobRequest(job, req)
	job.UpdatedAt = u.opts.now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	return u.single(ctx, job)
}

func (u *jobUsecase) DeleteJob(ctx context.Context, id string, callerID string) error {
	job, err := u.authorizedJob(ctx, id, callerID)
	if err != nil {
		return err
	}

	job.IsActive = false
	job.UpdatedAt = u.opts.now()
	if err := u.jobRepo.Update(ctx, job); err != nil {
		return storeError(err, msgJobNotFound)
	}

	logger.Log.Info("job deactivated", zap.String("job_id", job.ID), zap.String("by", callerID))
	return nil
}

// authorizedJob loads the job and checks the caller may manage it.
func (u *jobUsecase) authorizedJob(ctx context.Context, id, callerID string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgJobNotFound)
	}
	caller, err := loadCaller(ctx, u.userRepo, callerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanManageJob(domain.CallerOf(caller), job) {
		return nil, apperror.Forbidden("You are not allowed to modify this job")
	}
	return job, nil
}

func (u *jobUsecase) validateRequest(req domain.JobRequest) error {
	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}
	if (req.SalaryMin != nil && req.SalaryMin.IsNegative()) || (req.SalaryMax != nil && req.SalaryMax.IsNegative()) {
		return apperror.BadRequest("Salary must not be negative")
	}
	return nil
}

func (u *jobUsecase) single(ctx context.Context, job *domain.Job) (*domain.JobResponse, error) {
	names, err := userNames(ctx, u.userRepo, []string{job.PostedBy})
	if err != nil {
		return nil, storeError(err, "")
	}
	resp := toJobResponse(job, names[job.PostedBy])
	return &resp, nil
}

func (u *jobUsecase) list(ctx context.Context, q domain.JobQuery, p domain.PageRequest) (*domain.Page[domain.JobResponse], error) {
	jobs, total, err := u.jobRepo.List(ctx, q, p)
	if err != nil {
		return nil, storeError(err, "")
	}

	posters := make([]string, len(jobs))
	for i := range jobs {
		posters[i] = jobs[i].PostedBy
	}
	names, err := userNames(ctx, u.userRepo, posters)
	if err != nil {
		return nil, storeError(err, "")
	}

	content := make([]domain.JobResponse, len(jobs))
	for i := range jobs {
		content[i] = toJobResponse(&jobs[i], names[jobs[i].PostedBy])
	}
	return domain.NewPage(content, p, total), nil
}

func applyJobRequest(job *domain.Job, req domain.JobRequest) {
	job.Title = req.Title
	job.Description = req.Description
	job.Location = req.Location
	job.Skills = req.Skills
	if job.Skills == nil {
		job.Skills = []string{}
	}
	job.ExperienceRequired = req.ExperienceRequired
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.EmploymentType = req.EmploymentType
}

// loadCaller reads the acting user fresh from the store.
func loadCaller(ctx context.Context, repo domain.UserRepository, callerID string) (*domain.User, error) {
	if callerID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := repo.GetByID(ctx, callerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, storeError(err, "")
	}
	return user, nil
}
