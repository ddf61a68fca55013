package v1

import (
	"net/http"
	"strings"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userUC domain.UserUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &AdminHandler{userUC: userUC}

	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", handler.ListUsers)
		admin.GET("/users/:id", handler.GetUser)
		admin.PUT("/users/:id/deactivate", handler.DeactivateUser)
		admin.PUT("/users/:id/activate", handler.ActivateUser)
	}
}

// ListUsers godoc
// @Summary      List all users
// @Description  Returns paginated list of users with optional role filter
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role     query     string  false  "Filter by role (CANDIDATE, RECRUITER, ADMIN)"
// @Param        page     query     int     false  "Page index (0-based)"
// @Param        size     query     int     false  "Page size"
// @Param        sortBy   query     string  false  "Sort field"
// @Param        sortDir  query     string  false  "asc or desc"
// @Success      200      {object}  response.Response{data=domain.Page[domain.UserResponse]}
// @Failure      403      {object}  response.Response
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	p, err := pageParams(c)
	if err != nil {
		c.Error(err)
		return
	}

	q := domain.UserQuery{Role: domain.Role(strings.ToUpper(strings.TrimSpace(c.Query("role"))))}
	users, err := h.userUC.ListUsers(c.Request.Context(), q, p)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, users)
}

// GetUser godoc
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id} [get]
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.userUC.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, msgSuccess, user)
}

// DeactivateUser godoc
// @Summary      Deactivate a user
// @Description  The user's tokens stop working on their next request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/deactivate [put]
func (h *AdminHandler) DeactivateUser(c *gin.Context) {
	user, err := h.userUC.DeactivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deactivated successfully", user)
}

// ActivateUser godoc
// @Summary      Activate a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  response.Response{data=domain.UserResponse}
// @Failure      404  {object}  response.Response
// @Router       /admin/users/{id}/activate [put]
func (h *AdminHandler) ActivateUser(c *gin.Context) {
	user, err := h.userUC.ActivateUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User activated successfully", user)
}
