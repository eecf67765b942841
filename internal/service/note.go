package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/stats"
	"notehub/internal/storage"
)

// DefaultMaxUploadBytes is the upload size limit when none is configured.
const DefaultMaxUploadBytes = 10 << 20

// AllowedFileType reports whether files of the given MIME type may be uploaded.
func AllowedFileType(contentType string) bool {
	switch contentType {
	case "application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"image/jpeg",
		"image/png",
		"image/gif":
		return true
	}
	return false
}

// UploadInput is a note upload as received from the client.
type UploadInput struct {
	File        io.Reader
	FileName    string
	ContentType string
	Size        int64

	Title       string
	Description string
	Subject     string
	Course      string
	University  string
	Tags        []string
	IsPublic    bool
	UploaderID  string
}

// Download is an open note file. The caller must close Body.
type Download struct {
	Note *model.NoteWithUploader
	Body io.ReadCloser
	Info storage.ObjectInfo
}

// NoteService defines the note use cases.
type NoteService interface {
	// Upload stores the file, then the note record. The file is removed again if the record cannot be saved.
	Upload(ctx context.Context, in UploadInput) (*model.Note, error)
	List(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error)
	// Get returns a note; a non-empty userID adds the caller's like and rating.
	Get(ctx context.Context, id, userID string) (*model.NoteWithUploader, error)
	// Download opens the note file and counts the download.
	Download(ctx context.Context, id string) (*Download, error)
	// Delete removes a note and releases its file. Only the uploader may delete unless any-user deletes are enabled.
	Delete(ctx context.Context, id, userID string) error
	ToggleLike(ctx context.Context, id, userID string) (bool, error)
	Rate(ctx context.Context, id, userID string, rating int) error
	UserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error)
	UserStats(ctx context.Context, userID string) (model.UserStats, error)
	TopContributors(ctx context.Context) ([]model.Contributor, error)
	PlatformStats(ctx context.Context) (model.PlatformStats, error)
	Subjects(ctx context.Context) ([]model.SubjectSummary, error)
}

// NoteOption customizes the note service.
type NoteOption func(*noteService)

// WithMaxUploadBytes sets the upload size limit.
func WithMaxUploadBytes(n int64) NoteOption {
	return func(s *noteService) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithAnyUserDeletes lets every authenticated user delete any note. Development only.
func WithAnyUserDeletes(enabled bool) NoteOption {
	return func(s *noteService) { s.anyUserDeletes = enabled }
}

type noteService struct {
	store          storage.Storage
	repo           repository.Repository
	maxUploadBytes int64
	anyUserDeletes bool
}

// NewNoteService constructs a new NoteService.
func NewNoteService(store storage.Storage, repo repository.Repository, opts ...NoteOption) NoteService {
	s := &noteService{store: store, repo: repo, maxUploadBytes: DefaultMaxUploadBytes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseTags splits a comma separated tag list, trimming blanks and dropping empty entries.
func ParseTags(raw string) []string {
	tags := make([]string, 0)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *noteService) Upload(ctx context.Context, in UploadInput) (_ *model.Note, err error) {
	ctx, span := tracer.Start(ctx, "NoteService.Upload")
	defer func() { endSpan(span, err) }()

	if in.File == nil {
		return nil, ErrReaderNil
	}
	if in.Size > s.maxUploadBytes {
		return nil, ErrFileTooLarge
	}
	if !AllowedFileType(in.ContentType) {
		return nil, ErrUnsupportedFileType
	}

	key := path.Join("notes", uuid.NewString()+path.Ext(in.FileName))
	note := model.NewNote{
		Title:       strings.TrimSpace(in.Title),
		Description: optional(in.Description),
		Subject:     strings.TrimSpace(in.Subject),
		Course:      optional(in.Course),
		University:  optional(in.University),
		Tags:        in.Tags,
		FileName:    in.FileName,
		FilePath:    key,
		FileType:    in.ContentType,
		FileSize:    in.Size,
		UploaderID:  in.UploaderID,
		IsPublic:    in.IsPublic,
	}
	if err := note.Validate(); err != nil {
		return nil, invalid(err)
	}

	if _, err := s.store.Put(ctx, key, in.File, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.FileName,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	stored, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %w; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	span.SetAttributes(attribute.String("note.id", stored.ID))
	return stored, nil
}

func (s *noteService) List(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error) {
	return s.repo.GetNotes(ctx, f.Normalize())
}

func (s *noteService) Get(ctx context.Context, id, userID string) (*model.NoteWithUploader, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.repo.GetNoteByID(ctx, id, userID)
}

func (s *noteService) Download(ctx context.Context, id string) (_ *Download, err error) {
	ctx, span := tracer.Start(ctx, "NoteService.Download")
	defer func() { endSpan(span, err) }()

	if id == "" {
		return nil, ErrIDRequired
	}
	note, err := s.repo.GetNoteByID(ctx, id, "")
	if err != nil {
		return nil, err
	}
	ok, err := s.store.Exists(ctx, note.FilePath)
	if err != nil {
		return nil, fmt.Errorf("check file: %w", err)
	}
	if !ok {
		return nil, ErrFileMissing
	}
	if err := s.repo.UpdateNoteDownloads(ctx, id); err != nil {
		return nil, err
	}
	body, info, err := s.store.Get(ctx, note.FilePath)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrFileMissing
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return &Download{Note: note, Body: body, Info: info}, nil
}

func (s *noteService) Delete(ctx context.Context, id, userID string) (err error) {
	ctx, span := tracer.Start(ctx, "NoteService.Delete")
	defer func() { endSpan(span, err) }()

	if id == "" {
		return ErrIDRequired
	}
	note, err := s.repo.GetNoteByID(ctx, id, "")
	if err != nil {
		return err
	}
	if note.UploaderID != userID && !s.anyUserDeletes {
		return ErrForbidden
	}
	if err := s.repo.DeleteNote(ctx, id); err != nil {
		return err
	}

	ok, err := s.store.Exists(ctx, note.FilePath)
	if err != nil {
		return fmt.Errorf("check file: %w", err)
	}
	if !ok {
		return nil
	}
	if err := s.store.Delete(ctx, note.FilePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}

func (s *noteService) ToggleLike(ctx context.Context, id, userID string) (_ bool, err error) {
	ctx, span := tracer.Start(ctx, "NoteService.ToggleLike")
	defer func() { endSpan(span, err) }()

	liked, err := s.repo.ToggleNoteLike(ctx, id, userID)
	if err != nil {
		return false, err
	}
	span.SetAttributes(attribute.Bool("note.liked", liked))
	return liked, nil
}

func (s *noteService) Rate(ctx context.Context, id, userID string, rating int) (err error) {
	ctx, span := tracer.Start(ctx, "NoteService.Rate")
	defer func() { endSpan(span, err) }()

	if !model.ValidRating(rating) {
		return invalid(model.ErrRatingOutOfRange)
	}
	return s.repo.RateNote(ctx, id, userID, rating)
}

func (s *noteService) UserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error) {
	return s.repo.GetUserNotes(ctx, userID)
}

func (s *noteService) UserStats(ctx context.Context, userID string) (model.UserStats, error) {
	return s.repo.GetUserStats(ctx, userID)
}

func (s *noteService) TopContributors(ctx context.Context) ([]model.Contributor, error) {
	return s.repo.GetTopContributors(ctx, stats.DefaultContributorLimit)
}

func (s *noteService) PlatformStats(ctx context.Context) (model.PlatformStats, error) {
	return s.repo.GetPlatformStats(ctx)
}

func (s *noteService) Subjects(ctx context.Context) ([]model.SubjectSummary, error) {
	return s.repo.GetSubjects(ctx)
}
