package v1

import (
	"net/http"
	"strings"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	appUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, appUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{appUC: appUC}

	applications := protected.Group("/applications")
	{
		// Role is checked before the body is bound.
		applications.POST("", middleware.RequireRole(domain.RoleCandidate), handler.Apply)
		applications.GET("/my-applications", handler.ListMine)
		applications.GET("/job/:jobId", handler.ListByJob)
		applications.GET("/job/:jobId/status/:status", handler.ListByJobAndStatus)
		applications.GET("/job/:jobId/stats", handler.Stats)
		applications.GET("/:id", handler.GetDetails)
		applications.PUT("/:id/status", handler.UpdateStatus)
	}
}

// Apply godoc
// @Summary      Apply for a job
// @Description  CANDIDATE only. One application per candidate and job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ApplicationRequest  true  "Application"
// @Success      201      {object}  response.Response{data=domain.ApplicationResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req domain.ApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.ApplyForJob(c.Request.Context(), req, callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// GetDetails godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.ApplicationResponse}
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetDetails(c *gin.Context) {
	app, err := h.appUC.GetApplicationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, app)
}

// ListMine godoc
// @Summary      List the caller's applications
// @Tags         applications
// @Produce      json
// @Param        page  query     int  false  "Page index (0-based)"
// @Param        size  query     int  false  "Page size"
// @Success      200   {object}  response.Response{data=domain.Page[domain.ApplicationResponse]}
// @Router       /applications/my-applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.GetApplicationsByCandidate(c.Request.Context(), callerID(c), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, apps)
}

// ListByJob godoc
// @Summary      List applications of a job
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true   "Job ID"
// @Param        page   query     int     false  "Page index (0-based)"
// @Param        size   query     int     false  "Page size"
// @Success      200    {object}  response.Response{data=domain.Page[domain.ApplicationResponse]}
// @Router       /applications/job/{jobId} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.appUC.GetApplicationsByJob(c.Request.Context(), c.Param("jobId"), p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, apps)
}

// ListByJobAndStatus godoc
// @Summary      List applications of a job in one status
// @Tags         applications
// @Produce      json
// @Param        jobId   path      string  true   "Job ID"
// @Param        status  path      string  true   "APPLIED, REVIEWED, SHORTLISTED, REJECTED, ACCEPTED or WITHDRAWN"
// @Param        page    query     int     false  "Page index (0-based)"
// @Param        size    query     int     false  "Page size"
// @Success      200     {object}  response.Response{data=domain.Page[domain.ApplicationResponse]}
// @Failure      400     {object}  response.Response
// @Router       /applications/job/{jobId}/status/{status} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJobAndStatus(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	status := domain.ApplicationStatus(strings.ToUpper(c.Param("status")))
	apps, err := h.appUC.GetApplicationsByJobAndStatus(c.Request.Context(), c.Param("jobId"), status, p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, apps)
}

// Stats godoc
// @Summary      Count applications of a job per status
// @Tags         applications
// @Produce      json
// @Param        jobId  path      string  true  "Job ID"
// @Success      200    {object}  response.Response{data=domain.ApplicationStats}
// @Failure      404    {object}  response.Response
// @Router       /applications/job/{jobId}/stats [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Stats(c *gin.Context) {
	stats, err := h.appUC.GetApplicationStats(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, stats)
}

// UpdateStatus godoc
// @Summary      Review an application
// @Description  The recruiter who posted the job or an admin sets the status; reviewedAt is stamped on every update
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id       path      string                                 true  "Application ID"
// @Param        request  body      domain.ApplicationStatusUpdateRequest  true  "New status"
// @Success      200      {object}  response.Response{data=domain.ApplicationResponse}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /applications/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req domain.ApplicationStatusUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.appUC.UpdateApplicationStatus(c.Request.Context(), c.Param("id"), req, callerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application status updated successfully", app)
}
