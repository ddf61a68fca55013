// Package memory keeps users, jobs and applications in process memory with the
// same uniqueness and query semantics as the database-backed stores.
package memory

import (
	"sort"
	"strings"
	"time"

	"go-jobportal-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newID() string {
	return uuid.NewString()
}

// paginate slices an already sorted result set.
func paginate[T any](items []T, p domain.PageRequest) []T {
	start := p.Offset()
	if start < 0 || start >= int64(len(items)) {
		return []T{}
	}
	end := start + int64(p.Size)
	if end > int64(len(items)) {
		end = int64(len(items))
	}
	return items[start:end]
}

// sortBy orders items by cmp, breaking ties on id, in the requested direction.
// Missing values sort before present ones in ascending order.
func sortBy[T any](items []T, dir domain.SortDirection, cmp func(a, b T) int, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(items[i], items[j])
		if c == 0 {
			c = strings.Compare(id(items[i]), id(items[j]))
		}
		if dir == domain.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func cmpTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

func cmpIntPtr(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

func cmpDecimalPtr(a, b *decimal.Decimal) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Cmp(*b)
	}
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
