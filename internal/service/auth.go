package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"notehub/internal/auth"
	"notehub/internal/model"
	"notehub/internal/repository"
)

const minPasswordLength = 6

// TokenIssuer mints access tokens for authenticated users. *auth.TokenManager satisfies it.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// SignupInput is a registration request.
type SignupInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	University string `json:"university"`
}

// Validate checks the registration contract.
func (in SignupInput) Validate() error {
	if _, err := mail.ParseAddress(in.Email); err != nil || strings.ContainsAny(in.Email, "<> ") {
		return ErrEmailInvalid
	}
	switch {
	case len(in.Password) < minPasswordLength:
		return ErrPasswordTooShort
	case strings.TrimSpace(in.FirstName) == "":
		return ErrFirstNameRequired
	case strings.TrimSpace(in.LastName) == "":
		return ErrLastNameRequired
	case strings.TrimSpace(in.University) == "":
		return ErrUniversityRequired
	}
	return nil
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// AuthService defines account use cases.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
	// UpdateProfile changes the caller's university and keeps every other field.
	UpdateProfile(ctx context.Context, userID, university string) (*model.User, error)
}

type authService struct {
	repo       repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(repo repository.UserRepository, tokens TokenIssuer, bcryptCost int) AuthService {
	return &authService{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

func (s *authService) Signup(ctx context.Context, in SignupInput) (_ *AuthResult, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Signup")
	defer func() { endSpan(span, err) }()

	in.Email = strings.TrimSpace(in.Email)
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	existing, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %w", repository.ErrConflict, ErrEmailTaken)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, invalid(err)
	}
	if err != nil {
		return nil, err
	}

	user, err := s.repo.CreateUser(ctx, model.NewUser{
		ID:         uuid.NewString(),
		Email:      in.Email,
		Password:   hash,
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		University: strings.TrimSpace(in.University),
	})
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, email, password string) (_ *AuthResult, err error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer func() { endSpan(span, err) }()

	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalid(ErrEmailInvalid)
	}
	if password == "" {
		return nil, invalid(ErrPasswordRequired)
	}

	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetUser(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID, university string) (*model.User, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	university = strings.TrimSpace(university)
	if university == "" {
		return nil, invalid(ErrUniversityRequired)
	}
	return s.repo.UpsertUser(ctx, model.UserUpsert{ID: userID, University: &university})
}
