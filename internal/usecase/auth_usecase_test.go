package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go-jobportal-backend/internal/domain"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/apperror"
	"go-jobportal-backend/pkg/auth"
	"go-jobportal-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     "test-secret",
		Issuer:     "jobportal",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return tokens
}

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     "ada@example.com",
		Username:  "ada",
		Password:  "secret1",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Role:      domain.RoleCandidate,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	repo := new(MockUserRepo)
	tokens := newTokens(t)
	uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(4), validation.New())
	ctx := context.Background()

	var stored *domain.User
	repo.On("ExistsByEmail", ctx, "ada@example.com").Return(false, nil)
	repo.On("ExistsByUsername", ctx, "ada").Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domain.User)
		u.ID = "u1"
		stored = u
	}).Return(nil)

	reg, err := uc.Register(ctx, registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "u1", reg.ID)
	assert.Equal(t, "Bearer", reg.TokenType)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, stored.IsActive)

	repo.On("GetByEmailOrUsername", ctx, "ada").Return(stored, nil)
	login, err := uc.Login(ctx, domain.LoginRequest{UsernameOrEmail: "ada", Password: "secret1"})
	require.NoError(t, err)

	claims, err := tokens.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, string(domain.RoleCandidate), claims.Role)
}

func TestRegisterRejects(t *testing.T) {
	ctx := context.Background()

	t.Run("Should fail on missing fields", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, newTokens(t), auth.NewBcryptHasher(4), validation.New())
		_, err := uc.Register(ctx, domain.RegisterRequest{Email: "x@example.com"})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should fail on unknown role", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, newTokens(t), auth.NewBcryptHasher(4), validation.New())
		req := registerRequest()
		req.Role = "SUPERUSER"
		_, err := uc.Register(ctx, req)
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})

	t.Run("Should conflict on taken email", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, newTokens(t), auth.NewBcryptHasher(4), validation.New())
		repo.On("ExistsByEmail", ctx, "ada@example.com").Return(true, nil)
		_, err := uc.Register(ctx, registerRequest())
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
		assert.Contains(t, err.Error(), "Email")
	})

	t.Run("Should conflict when the insert loses a race", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, newTokens(t), auth.NewBcryptHasher(4), validation.New())
		repo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)
		repo.On("ExistsByUsername", ctx, mock.Anything).Return(false, nil)
		repo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("insert: %w", domain.ErrDuplicate))
		_, err := uc.Register(ctx, registerRequest())
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})

	t.Run("Should hide store failures", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, newTokens(t), auth.NewBcryptHasher(4), validation.New())
		repo.On("ExistsByEmail", ctx, mock.Anything).Return(false, errors.New("connection refused"))
		_, err := uc.Register(ctx, registerRequest())
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(err))
		assert.Equal(t, "Internal Server Error", err.Error())
	})
}

func TestLoginUniformFailure(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	active := &domain.User{ID: "u1", Username: "ada", Password: hash, Role: domain.RoleCandidate, IsActive: true}
	inactive := &domain.User{ID: "u2", Username: "bob", Password: hash, Role: domain.RoleCandidate, IsActive: false}

	repo := new(MockUserRepo)
	repo.On("GetByEmailOrUsername", ctx, "ada").Return(active, nil)
	repo.On("GetByEmailOrUsername", ctx, "bob").Return(inactive, nil)
	repo.On("GetByEmailOrUsername", ctx, "nobody").Return(nil, fmt.Errorf("user: %w", domain.ErrNotFound))
	uc := usecase.NewAuthUsecase(repo, newTokens(t), hasher, validation.New())

	cases := map[string]domain.LoginRequest{
		"unknown user":        {UsernameOrEmail: "nobody", Password: "secret1"},
		"bad password":        {UsernameOrEmail: "ada", Password: "wrong"},
		"deactivated account": {UsernameOrEmail: "bob", Password: "secret1"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Login(ctx, req)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
			assert.Equal(t, "Invalid credentials", err.Error())
		})
	}
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens(t)
	token, err := tokens.Generate("u1", "ada", string(domain.RoleRecruiter))
	require.NoError(t, err)

	t.Run("Should resolve the caller of an active user", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", Username: "ada", Role: domain.RoleRecruiter, IsActive: true}, nil)
		uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(4), validation.New())

		caller, err := uc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, &domain.Caller{ID: "u1", Username: "ada", Role: domain.RoleRecruiter}, caller)
	})

	t.Run("Should reject a deactivated user holding a valid token", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(&domain.User{ID: "u1", IsActive: false}, nil)
		uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(4), validation.New())

		_, err := uc.Authenticate(ctx, token)
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	})

	t.Run("Should reject a token for a removed user", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByID", ctx, "u1").Return(nil, domain.ErrNotFound)
		uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(4), validation.New())

		_, err := uc.Authenticate(ctx, token)
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	})

	t.Run("Should reject garbage before touching the store", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, tokens, auth.NewBcryptHasher(4), validation.New())

		_, err := uc.Authenticate(ctx, "not-a-token")
		assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
		repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}
