package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notehub/internal/auth"
	"notehub/internal/model"
	"notehub/internal/repository"
	repoMocks "notehub/internal/repository/mocks"
)

type stubIssuer struct {
	err error
}

func (s stubIssuer) Issue(userID string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-for-" + userID, time.Unix(1700000000, 0), nil
}

func validSignup() SignupInput {
	return SignupInput{
		Email:      "ada@example.com",
		Password:   "secret1",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		University: "Cambridge",
	}
}

func TestSignupInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupInput)
		want   error
	}{
		{name: "valid", mutate: func(*SignupInput) {}},
		{name: "bad email", mutate: func(in *SignupInput) { in.Email = "not-an-email" }, want: ErrEmailInvalid},
		{name: "display name email", mutate: func(in *SignupInput) { in.Email = "Ada <ada@example.com>" }, want: ErrEmailInvalid},
		{name: "short password", mutate: func(in *SignupInput) { in.Password = "12345" }, want: ErrPasswordTooShort},
		{name: "missing first name", mutate: func(in *SignupInput) { in.FirstName = " " }, want: ErrFirstNameRequired},
		{name: "missing last name", mutate: func(in *SignupInput) { in.LastName = "" }, want: ErrLastNameRequired},
		{name: "missing university", mutate: func(in *SignupInput) { in.University = "" }, want: ErrUniversityRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)
			err := in.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestAuthService_Signup(t *testing.T) {
	ctx := mock.Anything

	tests := []struct {
		name       string
		input      SignupInput
		issuer     stubIssuer
		setupMocks func(mRepo *repoMocks.MockRepository)
		wantErr    error
	}{
		{
			name:  "creates user with hashed password",
			input: validSignup(),
			setupMocks: func(mRepo *repoMocks.MockRepository) {
				mRepo.On("GetUserByEmail", ctx, "ada@example.com").Return(nil, nil)
				mRepo.On("CreateUser", ctx, mock.MatchedBy(func(in model.NewUser) bool {
					return in.ID != "" &&
						in.Email == "ada@example.com" &&
						in.University == "Cambridge" &&
						bcrypt.CompareHashAndPassword([]byte(in.Password), []byte("secret1")) == nil
				})).Return(&model.User{ID: "new-id", Email: "ada@example.com"}, nil)
			},
		},
		{
			name:       "invalid input",
			input:      SignupInput{Email: "ada@example.com"},
			setupMocks: func(*repoMocks.MockRepository) {},
			wantErr:    repository.ErrInvalidInput,
		},
		{
			name:  "email taken",
			input: validSignup(),
			setupMocks: func(mRepo *repoMocks.MockRepository) {
				mRepo.On("GetUserByEmail", ctx, "ada@example.com").Return(&model.User{ID: "old"}, nil)
			},
			wantErr: repository.ErrConflict,
		},
		{
			name:  "lost race on create",
			input: validSignup(),
			setupMocks: func(mRepo *repoMocks.MockRepository) {
				mRepo.On("GetUserByEmail", ctx, "ada@example.com").Return(nil, nil)
				mRepo.On("CreateUser", ctx, mock.Anything).Return(nil, repository.ErrConflict)
			},
			wantErr: repository.ErrConflict,
		},
		{
			name:   "token failure",
			input:  validSignup(),
			issuer: stubIssuer{err: errors.New("sign failed")},
			setupMocks: func(mRepo *repoMocks.MockRepository) {
				mRepo.On("GetUserByEmail", ctx, "ada@example.com").Return(nil, nil)
				mRepo.On("CreateUser", ctx, mock.Anything).Return(&model.User{ID: "new-id"}, nil)
			},
			wantErr: errors.New("issue token: sign failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRepository)
			tt.setupMocks(mRepo)
			svc := NewAuthService(mRepo, tt.issuer, bcrypt.MinCost)

			got, err := svc.Signup(context.Background(), tt.input)
			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, "new-id", got.User.ID)
				assert.Equal(t, "token-for-new-id", got.Token)
			case errors.Is(tt.wantErr, repository.ErrInvalidInput), errors.Is(tt.wantErr, repository.ErrConflict):
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.EqualError(t, err, tt.wantErr.Error())
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{ID: "u1", Email: "ada@example.com", Password: hash}

	tests := []struct {
		name     string
		email    string
		password string
		found    *model.User
		wantErr  error
	}{
		{name: "valid credentials", email: "ada@example.com", password: "secret1", found: user},
		{name: "wrong password", email: "ada@example.com", password: "nope", found: user, wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "who@example.com", password: "secret1", wantErr: ErrInvalidCredentials},
		{name: "malformed email", email: "who", password: "secret1", wantErr: repository.ErrInvalidInput},
		{name: "empty password", email: "ada@example.com", wantErr: repository.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockRepository)
			if tt.found != nil {
				mRepo.On("GetUserByEmail", mock.Anything, tt.email).Return(tt.found, nil)
			} else {
				mRepo.On("GetUserByEmail", mock.Anything, tt.email).Return(nil, nil)
			}
			svc := NewAuthService(mRepo, stubIssuer{}, bcrypt.MinCost)

			got, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "token-for-u1", got.Token)
		})
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("sets university only", func(t *testing.T) {
		mRepo := new(repoMocks.MockRepository)
		mRepo.On("GetUser", mock.Anything, "u1").Return(&model.User{ID: "u1"}, nil)
		mRepo.On("UpsertUser", mock.Anything, mock.MatchedBy(func(in model.UserUpsert) bool {
			return in.ID == "u1" && in.University != nil && *in.University == "MIT" &&
				in.Email == nil && in.FirstName == nil && in.LastName == nil && in.ProfileImageURL == nil
		})).Return(&model.User{ID: "u1"}, nil)

		_, err := NewAuthService(mRepo, stubIssuer{}, bcrypt.MinCost).UpdateProfile(context.Background(), "u1", " MIT ")
		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		mRepo := new(repoMocks.MockRepository)
		mRepo.On("GetUser", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		_, err := NewAuthService(mRepo, stubIssuer{}, bcrypt.MinCost).UpdateProfile(context.Background(), "ghost", "MIT")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("empty university", func(t *testing.T) {
		mRepo := new(repoMocks.MockRepository)
		mRepo.On("GetUser", mock.Anything, "u1").Return(&model.User{ID: "u1"}, nil)

		_, err := NewAuthService(mRepo, stubIssuer{}, bcrypt.MinCost).UpdateProfile(context.Background(), "u1", "  ")
		assert.ErrorIs(t, err, repository.ErrInvalidInput)
	})
}
