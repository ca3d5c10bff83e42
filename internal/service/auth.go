package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/auth"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Username string `json:"username" validate:"notblank,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"notblank,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput accepts either a username or an email in Login.
type LoginInput struct {
	Login    string `json:"login" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	User  *models.User `json:"user"`
	Token string       `json:"accessToken"`
}

// AuthService registers users and issues access tokens.
type AuthService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	cost      int
}

func NewAuthService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, cost: bcrypt.DefaultCost}
}

// Signup creates the user and returns a session for it. A taken username
// or email is a Conflict, including one lost to a concurrent signup.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	username := strings.ToLower(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, apperr.Persistence("signup failed", err)
	}
	if exists {
		return nil, apperr.Conflict("username or email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, apperr.Persistence("signup failed", err)
	}

	u, err := s.users.Create(ctx, username, email, in.FullName, string(hash))
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperr.Conflict("username or email already registered")
	}
	if err != nil {
		return nil, apperr.Persistence("signup failed", err)
	}
	return s.session(u)
}

// Login reports the same error for an unknown user and a wrong password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	u, err := s.users.GetByUsernameOrEmail(ctx, in.Login)
	if err != nil {
		return nil, apperr.Persistence("login failed", err)
	}
	if u == nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	return s.session(u)
}

// Me loads the requester's own profile.
func (s *AuthService) Me(ctx context.Context, requester uuid.UUID) (*models.User, error) {
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, requester)
	if err != nil {
		return nil, apperr.Persistence("failed to load user", err)
	}
	if u == nil {
		return nil, apperr.NotFound("user")
	}
	return u, nil
}

func (s *AuthService) session(u *models.User) (*Session, error) {
	token, err := auth.GenerateToken(u.ID, u.Username, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return nil, apperr.Persistence("failed to issue token", err)
	}
	return &Session{User: u, Token: token}, nil
}
