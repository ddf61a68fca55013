package usecase

import (
	"context"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/logger"

	"go.uber.org/zap"
)

const msgUserNotFound = "User not found"

// userUsecase backs the admin user endpoints; the HTTP layer restricts it to admins.
type userUsecase struct {
	userRepo domain.UserRepository
	opts     options
}

func NewUserUsecase(userRepo domain.UserRepository, opts ...Option) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, opts: buildOptions(opts)}
}

func (u *userUsecase) ListUsers(ctx context.Context, q domain.UserQuery, p domain.PageRequest) (*domain.Page[domain.UserResponse], error) {
	if q.Role != "" && !q.Role.Valid() {
		return nil, apperror.BadRequest("Invalid role: " + string(q.Role))
	}
	p, err := preparePage(p, domain.UserSortFields, "createdAt")
	if err != nil {
		return nil, err
	}

	users, total, err := u.userRepo.List(ctx, q, p)
	if err != nil {
		return nil, storeError(err, "")
	}
	content := make([]domain.UserResponse, len(users))
	for i := range users {
		content[i] = *domain.NewUserResponse(&users[i])
	}
	return domain.NewPage(content, p, total), nil
}

func (u *userUsecase) GetUserByID(ctx context.Context, id string) (*domain.UserResponse, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	return domain.NewUserResponse(user), nil
}

func (u *userUsecase) ActivateUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	return u.setActive(ctx, id, true)
}

func (u *userUsecase) DeactivateUser(ctx context.Context, id string) (*domain.UserResponse, error) {
	return u.setActive(ctx, id, false)
}

func (u *userUsecase) setActive(ctx context.Context, id string, active bool) (*domain.UserResponse, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, msgUserNotFound)
	}

	now := u.opts.now()
	if err := u.userRepo.SetActive(ctx, id, active, now); err != nil {
		return nil, storeError(err, msgUserNotFound)
	}
	user.IsActive = active
	user.UpdatedAt = now

	logger.Log.Info("user active flag changed", zap.String("user_id", id), zap.Bool("active", active))
	return domain.NewUserResponse(user), nil
}
