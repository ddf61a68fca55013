package usecase

import (
	"context"
	"errors"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/auth"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	tokenType             = "Bearer"
	msgInvalidCredentials = "Invalid credentials"
)

type authUsecase struct {
	userRepo domain.UserRepository
	tokens   *auth.TokenService
	hasher   auth.PasswordHasher
	validate *validator.Validate
	opts     options
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens *auth.TokenService, hasher auth.PasswordHasher, validate *validator.Validate, opts ...Option) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
		validate: validate,
		opts:     buildOptions(opts),
	}
}

func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	exists, err := u.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, storeError(err, "")
	}
	if exists {
		return nil, apperror.Conflict("Email is already registered")
	}
	exists, err = u.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, storeError(err, "")
	}
	if exists {
		return nil, apperror.Conflict("Username is already taken")
	}

	hash, err := u.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := u.opts.now()
	user := &domain.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent registration.
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("Email or username already exists")
		}
		return nil, storeError(err, "")
	}

	logger.Log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return u.authResponse(user)
}

// Login answers every failure with the same message; the reason is only logged.
func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	user, err := u.userRepo.GetByEmailOrUsername(ctx, req.UsernameOrEmail)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			logger.Log.Info("login rejected", zap.String("reason", "unknown user"))
			return nil, apperror.Unauthorized(msgInvalidCredentials)
		}
		return nil, storeError(err, "")
	}

	if !u.hasher.Compare(user.Password, req.Password) {
		logger.Log.Info("login rejected", zap.String("reason", "bad password"), zap.String("user_id", user.ID))
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		logger.Log.Info("login rejected", zap.String("reason", "account deactivated"), zap.String("user_id", user.ID))
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	return u.authResponse(user)
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*domain.Caller, error) {
	claims, err := u.tokens.Parse(token)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, storeError(err, "")
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}
	return domain.CallerOf(user), nil
}

func (u *authUsecase) authResponse(user *domain.User) (*domain.AuthResponse, error) {
	token, err := u.tokens.Generate(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResponse{
		Token:     token,
		TokenType: tokenType,
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
	}, nil
}
