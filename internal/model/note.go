package model

import (
	"errors"
	"strings"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Note is the metadata of an uploaded document. The file bytes live in object storage under FilePath.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Subject     string    `json:"subject"`
	Course      *string   `json:"course"`
	University  *string   `json:"university"`
	Tags        []string  `json:"tags"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"filePath"`
	FileType    string    `json:"fileType"`
	FileSize    int64     `json:"fileSize"`
	UploaderID  string    `json:"uploaderId"`
	IsPublic    bool      `json:"isPublic"`
	Downloads   int       `json:"downloads"`
	Likes       int       `json:"likes"`
	Rating      int       `json:"rating"`
	RatingCount int       `json:"ratingCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Uploader is the denormalized uploader summary embedded in read results.
type Uploader struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl"`
	University      *string `json:"university"`
}

// NoteWithUploader is the read model for notes. IsLiked and UserRating are set only when a requesting
// user is known, and UserRating stays nil when that user has not rated the note.
type NoteWithUploader struct {
	Note
	Uploader   Uploader `json:"uploader"`
	IsLiked    *bool    `json:"isLiked,omitempty"`
	UserRating *int     `json:"userRating,omitempty"`
}

// UploaderOf builds the uploader summary for u. A nil user yields an all-nil summary.
func UploaderOf(u *User) Uploader {
	if u == nil {
		return Uploader{}
	}
	return Uploader{
		FirstName:       nonEmpty(u.FirstName),
		LastName:        nonEmpty(u.LastName),
		ProfileImageURL: u.ProfileImageURL,
		University:      u.University,
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewNote is a validated upload ready to be stored. Counters always start at zero.
type NewNote struct {
	Title       string
	Description *string
	Subject     string
	Course      *string
	University  *string
	Tags        []string
	FileName    string
	FilePath    string
	FileType    string
	FileSize    int64
	UploaderID  string
	IsPublic    bool
}

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrSubjectRequired  = errors.New("subject is required")
	ErrFileNameRequired = errors.New("file name is required")
	ErrFilePathRequired = errors.New("file path is required")
	ErrFileTypeRequired = errors.New("file type is required")
	ErrFileSizeInvalid  = errors.New("file size must be greater than 0")
	ErrUploaderRequired = errors.New("uploader id is required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

// Validate checks the input contract a note must satisfy before it reaches a repository.
func (n NewNote) Validate() error {
	switch {
	case strings.TrimSpace(n.Title) == "":
		return ErrTitleRequired
	case strings.TrimSpace(n.Subject) == "":
		return ErrSubjectRequired
	case n.FileName == "":
		return ErrFileNameRequired
	case n.FilePath == "":
		return ErrFilePathRequired
	case n.FileType == "":
		return ErrFileTypeRequired
	case n.FileSize <= 0:
		return ErrFileSizeInvalid
	case n.UploaderID == "":
		return ErrUploaderRequired
	}
	return nil
}

// Build turns the input into a stored Note with the given id and creation time.
func (n NewNote) Build(id string, now time.Time) Note {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return Note{
		ID:          id,
		Title:       n.Title,
		Description: n.Description,
		Subject:     n.Subject,
		Course:      n.Course,
		University:  n.University,
		Tags:        tags,
		FileName:    n.FileName,
		FilePath:    n.FilePath,
		FileType:    n.FileType,
		FileSize:    n.FileSize,
		UploaderID:  n.UploaderID,
		IsPublic:    n.IsPublic,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidRating reports whether r is an acceptable rating value.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// NoteFilter selects public notes for the catalog.
type NoteFilter struct {
	Subject string
	Search  string
	Limit   int
	Offset  int
}

const DefaultNoteLimit = 50

// Normalize applies the default limit and clamps a negative offset.
func (f NoteFilter) Normalize() NoteFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultNoteLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// Matches reports whether a note passes the catalog filter: public, exact subject when set, and a
// case-insensitive substring match of Search against the title, description, course or any tag.
func (f NoteFilter) Matches(n Note) bool {
	if !n.IsPublic {
		return false
	}
	if f.Subject != "" && n.Subject != f.Subject {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	if containsFold(n.Title, q) || containsFoldPtr(n.Description, q) || containsFoldPtr(n.Course, q) {
		return true
	}
	for _, t := range n.Tags {
		if containsFold(t, q) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}

func containsFoldPtr(s *string, lowerQ string) bool {
	return s != nil && containsFold(*s, lowerQ)
}

// Like records that a user currently likes a note.
type Like struct {
	NoteID    string    `json:"noteId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating is a user's score for a note.
type Rating struct {
	NoteID    string    `json:"noteId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}
