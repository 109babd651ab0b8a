package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
	"github.com/avolkonsky/taskboard-api/internal/repo"
)

func testIssuer() *auth.TokenIssuer {
	return auth.NewTokenIssuer("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	valid := RegisterInput{
		Email:     "Ann@Example.com",
		Password:  "password1",
		FirstName: "Ann",
		LastName:  "Lee",
	}

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"valid", valid, nil},
		{"bad email", RegisterInput{Email: "not-an-email", Password: "password1", FirstName: "A", LastName: "B"}, ErrValidation},
		{"short password", RegisterInput{Email: "a@b.com", Password: "short", FirstName: "A", LastName: "B"}, ErrValidation},
		{"missing first name", RegisterInput{Email: "a@b.com", Password: "password1", FirstName: "  ", LastName: "B"}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			if tt.wantErr == nil {
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
					// Email is normalized and only a hash is stored.
					return u.Email == "ann@example.com" &&
						u.PasswordHash != "" &&
						u.PasswordHash != tt.input.Password
				})).Return(model.User{Email: "ann@example.com", Roles: []string{"user"}}, nil)
			}

			svc := NewAuthService(userRepo, testIssuer())
			result, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			userRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(model.User{}, repo.ErrorConflict)

	svc := NewAuthService(userRepo, testIssuer())
	_, err := svc.Register(context.Background(), RegisterInput{
		Email: "dup@example.com", Password: "password1", FirstName: "A", LastName: "B",
	})

	assert.ErrorIs(t, err, repo.ErrorConflict)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	require.NoError(t, err)
	stored := model.User{Email: "ann@example.com", PasswordHash: string(hash), Roles: []string{"user"}}

	tests := []struct {
		name     string
		email    string
		password string
		repoUser model.User
		repoErr  error
		wantErr  error
	}{
		{"valid credentials", "ann@example.com", "password1", stored, nil, nil},
		{"wrong password", "ann@example.com", "wrong", stored, nil, ErrUnauthenticated},
		{"unknown account reads like wrong password", "ghost@example.com", "password1", model.User{}, repo.ErrorNotFound, ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(MockUserRepository)
			userRepo.On("GetByEmail", mock.Anything, tt.email).Return(tt.repoUser, tt.repoErr)

			svc := NewAuthService(userRepo, testIssuer())
			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, result.Token)
			assert.Empty(t, result.User.PasswordHash, "hash is not serialized")

			principal, err := testIssuer().Verify(result.Token)
			require.NoError(t, err)
			assert.True(t, principal.Roles.Has(auth.RoleUser))
		})
	}
}
