package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/metrics"

	"go.uber.org/zap"
)

type options struct {
	now     func() time.Time
	metrics metrics.Recorder
}

// Option customizes a usecase at construction.
type Option func(*options)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithMetrics(r metrics.Recorder) Option {
	return func(o *options) { o.metrics = r }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, metrics: metrics.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// storeError turns a repository error into an AppError. notFound is the client
// message used for ErrNotFound.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Conflict("Resource already exists")
	default:
		logger.Log.Error("store failure", zap.Error(err))
		return apperror.Internal(err)
	}
}

// preparePage validates paging input, clamps the size and resolves the sort field.
// A nil fields map accepts only def.
func preparePage(p domain.PageRequest, fields map[string]string, def string) (domain.PageRequest, error) {
	if p.Page < 0 {
		return p, apperror.BadRequest("Page index must not be less than zero")
	}
	if p.Size < 1 {
		return p, apperror.BadRequest("Page size must not be less than one")
	}
	if p.Size > domain.MaxPageSize {
		p.Size = domain.MaxPageSize
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return p, apperror.BadRequest("Page index is too large")
	}
	if p.SortBy == "" {
		p.SortBy = def
	}
	if p.SortBy != def {
		if _, ok := fields[p.SortBy]; !ok {
			return p, apperror.BadRequest(fmt.Sprintf("Invalid sort field: %s", p.SortBy))
		}
	}
	if p.SortDir != domain.SortDesc {
		p.SortDir = domain.SortAsc
	}
	return p, nil
}

// fixedSort validates paging input and pins the order to field descending.
func fixedSort(p domain.PageRequest, field string) (domain.PageRequest, error) {
	p.SortBy = field
	p.SortDir = domain.SortDesc
	return preparePage(p, nil, field)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
