// Package repository defines the storage contract for users, notes and engagement data.
// Implementations live in subpackages (postgres, memory) and must behave identically.
package repository

import (
	"context"

	"notehub/internal/model"
)

// UserRepository stores platform accounts.
type UserRepository interface {
	// GetUser returns the user with the given id or ErrNotFound.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// GetUserByEmail returns the user with the given email, or nil and no error when none exists.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// CreateUser inserts a new user. A taken email or id yields ErrConflict.
	CreateUser(ctx context.Context, u model.NewUser) (*model.User, error)

	// UpsertUser creates the user or updates only the supplied fields, always refreshing UpdatedAt.
	// Creating a user requires an email (ErrInvalidInput otherwise).
	UpsertUser(ctx context.Context, u model.UserUpsert) (*model.User, error)
}

// NoteRepository stores note metadata.
type NoteRepository interface {
	// CreateNote stores a validated note with zeroed counters.
	CreateNote(ctx context.Context, n model.NewNote) (*model.Note, error)

	// GetNotes lists public notes matching the filter, newest first.
	GetNotes(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error)

	// GetNoteByID returns a note joined with its uploader. When userID is not empty the result carries
	// that user's like state and rating.
	GetNoteByID(ctx context.Context, id, userID string) (*model.NoteWithUploader, error)

	// UpdateNoteDownloads increments the download counter.
	UpdateNoteDownloads(ctx context.Context, id string) error

	// GetUserNotes lists every note uploaded by the user, newest first, public or not.
	GetUserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error)

	// DeleteNote removes the note together with its likes and ratings.
	DeleteNote(ctx context.Context, id string) error
}

// EngagementRepository records likes and ratings and keeps the note counters in step.
type EngagementRepository interface {
	// ToggleNoteLike flips the user's like on the note and returns the new state.
	ToggleNoteLike(ctx context.Context, noteID, userID string) (bool, error)

	// RateNote records or replaces the user's rating and recomputes the note rating.
	RateNote(ctx context.Context, noteID, userID string, rating int) error
}

// StatsRepository derives statistics from stored engagement data.
type StatsRepository interface {
	GetUserStats(ctx context.Context, userID string) (model.UserStats, error)
	GetTopContributors(ctx context.Context, limit int) ([]model.Contributor, error)
	GetPlatformStats(ctx context.Context) (model.PlatformStats, error)
	GetSubjects(ctx context.Context) ([]model.SubjectSummary, error)
}

// Repository is the full capability set every backing store provides.
type Repository interface {
	UserRepository
	NoteRepository
	EngagementRepository
	StatsRepository
}
