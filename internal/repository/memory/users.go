package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-jobportal-backend/internal/domain"
)

type userRepo struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() domain.UserRepository {
	return &userRepo{users: make(map[string]domain.User)}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user email %q: %w", user.Email, domain.ErrDuplicate)
		}
		if u.Username == user.Username {
			return fmt.Errorf("user username %q: %w", user.Username, domain.ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = newID()
	} else if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user id %q: %w", user.ID, domain.ErrDuplicate)
	}
	r.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

func (r *userRepo) GetByEmailOrUsername(ctx context.Context, value string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == value || u.Username == value {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", value, domain.ErrNotFound)
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = &u
		}
	}
	return out, nil
}

func (r *userRepo) List(ctx context.Context, q domain.UserQuery, p domain.PageRequest) ([]domain.User, int64, error) {
	r.mu.RLock()
	matched := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		matched = append(matched, u)
	}
	r.mu.RUnlock()

	sortBy(matched, p.SortDir, userComparator(p.SortBy), func(u domain.User) string { return u.ID })
	return paginate(matched, p), int64(len(matched)), nil
}

func (r *userRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	u.IsActive = active
	u.UpdatedAt = at
	r.users[id] = u
	return nil
}

func userComparator(field string) func(a, b domain.User) int {
	switch domain.UserSortFields[field] {
	case "updatedAt":
		return func(a, b domain.User) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case "email":
		return func(a, b domain.User) int { return strings.Compare(a.Email, b.Email) }
	case "username":
		return func(a, b domain.User) int { return strings.Compare(a.Username, b.Username) }
	case "firstName":
		return func(a, b domain.User) int { return strings.Compare(a.FirstName, b.FirstName) }
	case "lastName":
		return func(a, b domain.User) int { return strings.Compare(a.LastName, b.LastName) }
	case "role":
		return func(a, b domain.User) int { return strings.Compare(string(a.Role), string(b.Role)) }
	case "isActive":
		return func(a, b domain.User) int { return cmpBool(a.IsActive, b.IsActive) }
	default:
		return func(a, b domain.User) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}
