package service

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkonsky/taskboard-api/internal/auth"
	"github.com/avolkonsky/taskboard-api/internal/model"
	"github.com/avolkonsky/taskboard-api/internal/repo"
)

type AuthService struct {
	users  repo.UserRepository
	issuer *auth.TokenIssuer
}

func NewAuthService(users repo.UserRepository, issuer *auth.TokenIssuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	if err := validateRegister(in); err != nil {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		PasswordHash: string(hash),
	})
	if err != nil {
		return AuthResult{}, err
	}

	token, err := s.issuer.Issue(user.ID, user.Roles)
	if err != nil {
		return AuthResult{}, err
	}
	user.PasswordHash = ""
	return AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// A missing account reads the same as a wrong password.
		if err == repo.ErrorNotFound {
			return AuthResult{}, ErrUnauthenticated
		}
		return AuthResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrUnauthenticated
	}

	token, err := s.issuer.Issue(user.ID, user.Roles)
	if err != nil {
		return AuthResult{}, err
	}
	user.PasswordHash = ""
	return AuthResult{Token: token, User: user}, nil
}

func validateRegister(in RegisterInput) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(in.Email)); err != nil {
		return ErrValidation
	}
	if len(in.Password) < 8 || len(in.Password) > 128 {
		return ErrValidation
	}
	first := strings.TrimSpace(in.FirstName)
	last := strings.TrimSpace(in.LastName)
	if first == "" || len(first) > 50 || last == "" || len(last) > 50 {
		return ErrValidation
	}
	return nil
}
