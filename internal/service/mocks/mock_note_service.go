package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"notehub/internal/model"
	"notehub/internal/service"
)

type MockNoteService struct {
	mock.Mock
}

var _ service.NoteService = (*MockNoteService)(nil)

func (m *MockNoteService) Upload(ctx context.Context, in service.UploadInput) (*model.Note, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) List(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NoteWithUploader), args.Error(1)
}

func (m *MockNoteService) Get(ctx context.Context, id, userID string) (*model.NoteWithUploader, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NoteWithUploader), args.Error(1)
}

func (m *MockNoteService) Download(ctx context.Context, id string) (*service.Download, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Download), args.Error(1)
}

func (m *MockNoteService) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNoteService) ToggleLike(ctx context.Context, id, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNoteService) Rate(ctx context.Context, id, userID string, rating int) error {
	args := m.Called(ctx, id, userID, rating)
	return args.Error(0)
}

func (m *MockNoteService) UserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.NoteWithUploader), args.Error(1)
}

func (m *MockNoteService) UserStats(ctx context.Context, userID string) (model.UserStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.UserStats), args.Error(1)
}

func (m *MockNoteService) TopContributors(ctx context.Context) ([]model.Contributor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contributor), args.Error(1)
}

func (m *MockNoteService) PlatformStats(ctx context.Context) (model.PlatformStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.PlatformStats), args.Error(1)
}

func (m *MockNoteService) Subjects(ctx context.Context) ([]model.SubjectSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubjectSummary), args.Error(1)
}
