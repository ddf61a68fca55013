package v1

import (
	"net/http"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - only active jobs are listed
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.List)
		publicJobs.GET("/search", handler.Search)
		publicJobs.GET("/filter", handler.Filter)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - role and ownership are checked by the usecase
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.DELETE("/:id", handler.Delete)
		protectedJobs.GET("/recruiter/my-jobs", handler.ListMine)
	}
}

// List godoc
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Param        page     query     int     false  "Page index (0-based)"  default(0)
// @Param        size     query     int     false  "Page size (max 100)"   default(10)
// @Param        sortBy   query     string  false  "Sort field"            default(createdAt)
// @Param        sortDir  query     string  false  "asc or desc"           default(desc)
// @Success      200      {object}  response.Response{data=domain.Page[domain.JobResponse]}
// @Failure      400      {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.jobUC.ListActiveJobs(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, jobs)
}

// GetDetails godoc
// @Summary      Get a job
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.JobResponse}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, job)
}

// Search godoc
// @Summary      Search active jobs
// @Description  Case-insensitive substring match on title, description and location, or exact skill match
// @Tags         jobs
// @Produce      json
// @Param        q     query     string  true   "Search term"
// @Param        page  query     int     false  "Page index (0-based)"
// @Param        size  query     int     false  "Page size"
// @Success      200   {object}  response.Response{data=domain.Page[domain.JobResponse]}
// @Failure      400   {object}  response.Response
// @Router       /jobs/search [get]
func (h *JobHandler) Search(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.jobUC.SearchJobs(c.Request.Context(), c.Query("q"), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, jobs)
}

// Filter godoc
// @Summary      Filter active jobs
// @Description  All given filters must hold. skills matches on any overlap; experienceRequired is an upper bound
// @Tags         jobs
// @Produce      json
// @Param        title               query     string    false  "Title substring"
// @Param        location            query     string    false  "Location substring"
// @Param        skills              query     []string  false  "Skills"  collectionFormat(multi)
// @Param        experienceRequired  query     int       false  "Maximum years of experience"
// @Param        page                query     int       false  "Page index (0-based)"
// @Param        size                query     int       false  "Page size"
// @Success      200                 {object}  response.Response{data=domain.Page[domain.JobResponse]}
// @Failure      400                 {object}  response.Response
// @Router       /jobs/filter [get]
func (h *JobHandler) Filter(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}
	experience, err := optionalIntQuery(c, "experienceRequired")
	if err != nil {
		c.Error(err)
		return
	}

	filter := domain.JobFilter{
		Title:              c.Query("title"),
		Location:           c.Query("location"),
		Skills:             listQuery(c, "skills"),
		ExperienceRequired: experience,
	}
	jobs, err := h.jobUC.FilterJobs(c.Request.Context(), filter, p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, jobs)
}

// Create godoc
// @Summary      Create a new job
// @Description  Create a new job posting (RECRUITER or ADMIN)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      domain.JobRequest  true  "Job JSON"
// @Success      201  {object}  response.Response{data=domain.JobResponse}
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	var req domain.JobRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.CreateJob(c.Request.Context(), req, callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job created successfully", job)
}

// Update godoc
// @Summary      Update a job
// @Description  Only the recruiter who posted the job or an admin may update it
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string             true  "Job ID"
// @Param        job  body      domain.JobRequest  true  "Job JSON"
// @Success      200  {object}  response.Response{data=domain.JobResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req domain.JobRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.UpdateJob(c.Request.Context(), c.Param("id"), req, callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job updated successfully", job)
}

// Delete godoc
// @Summary      Deactivate a job
// @Description  Soft delete: the job stays readable by id but leaves every listing
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [delete]
// @Security     BearerAuth
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobUC.DeleteJob(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job deleted successfully", nil)
}

// ListMine godoc
// @Summary      List the caller's active jobs
// @Tags         jobs
// @Produce      json
// @Param        page  query     int  false  "Page index (0-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  response.Response{data=domain.Page[domain.JobResponse]}
// @Router       /jobs/recruiter/my-jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	jobs, err := h.jobUC.GetJobsByRecruiter(c.Request.Context(), callerID(c), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, jobs)
}
