package v1

import (
	"strconv"
	"strings"

	"go-jobportal-backend/internal/delivery/http/middleware"
	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

const msgSuccess = "Success"

// pageParams reads page, size, sortBy and sortDir. Range checks on the numbers
// happen in the usecases; only non-numeric input is rejected here.
func pageParams(c *gin.Context) (domain.PageRequest, error) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := intQuery(c, "size", domain.DefaultPageSize)
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{
		Page:    page,
		Size:    size,
		SortBy:  c.DefaultQuery("sortBy", "createdAt"),
		SortDir: domain.ParseSortDirection(c.DefaultQuery("sortDir", "desc")),
	}, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperror.BadRequest("Query parameter '" + key + "' must be an integer")
	}
	return v, nil
}

// optionalIntQuery returns nil when key is absent or blank.
func optionalIntQuery(c *gin.Context, key string) (*int, error) {
	if raw, ok := c.GetQuery(key); !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := intQuery(c, key, 0)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// listQuery accepts both repeated keys and comma-separated values.
func listQuery(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func bindJSON(c *gin.Context, dst interface{}) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}
	return nil
}

// callerID returns the id attached by the auth middleware, or "" for anonymous requests.
func callerID(c *gin.Context) string {
	if caller, ok := middleware.CallerFrom(c); ok {
		return caller.ID
	}
	return ""
}
