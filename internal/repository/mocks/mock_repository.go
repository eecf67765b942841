package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notehub/internal/model"
	"notehub/internal/repository"
)

type MockRepository struct {
	mock.Mock
}

var _ repository.Repository = (*MockRepository)(nil)

func (m *MockRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) UpsertUser(ctx context.Context, in model.UserUpsert) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockRepository) CreateNote(ctx context.Context, in model.NewNote) (*model.Note, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockRepository) GetNotes(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NoteWithUploader), args.Error(1)
}

func (m *MockRepository) GetNoteByID(ctx context.Context, id, userID string) (*model.NoteWithUploader, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NoteWithUploader), args.Error(1)
}

func (m *MockRepository) UpdateNoteDownloads(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) GetUserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NoteWithUploader), args.Error(1)
}

func (m *MockRepository) DeleteNote(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) ToggleNoteLike(ctx context.Context, noteID, userID string) (bool, error) {
	args := m.Called(ctx, noteID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RateNote(ctx context.Context, noteID, userID string, rating int) error {
	args := m.Called(ctx, noteID, userID, rating)
	return args.Error(0)
}

func (m *MockRepository) GetUserStats(ctx context.Context, userID string) (model.UserStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserStats), args.Error(1)
}

func (m *MockRepository) GetTopContributors(ctx context.Context, limit int) ([]model.Contributor, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contributor), args.Error(1)
}

func (m *MockRepository) GetPlatformStats(ctx context.Context) (model.PlatformStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PlatformStats), args.Error(1)
}

func (m *MockRepository) GetSubjects(ctx context.Context) ([]model.SubjectSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubjectSummary), args.Error(1)
}
