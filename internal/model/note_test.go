package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validNote() NewNote {
	return NewNote{
		Title:      "Linear Algebra",
		Subject:    "Mathematics",
		FileName:   "la.pdf",
		FilePath:   "notes/la.pdf",
		FileType:   "application/pdf",
		FileSize:   1024,
		UploaderID: "u1",
		IsPublic:   true,
	}
}

func TestNewNote_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(n *NewNote)
		wantErr error
	}{
		{name: "valid", mutate: func(n *NewNote) {}},
		{name: "blank title", mutate: func(n *NewNote) { n.Title = "  " }, wantErr: ErrTitleRequired},
		{name: "missing subject", mutate: func(n *NewNote) { n.Subject = "" }, wantErr: ErrSubjectRequired},
		{name: "missing file name", mutate: func(n *NewNote) { n.FileName = "" }, wantErr: ErrFileNameRequired},
		{name: "missing file path", mutate: func(n *NewNote) { n.FilePath = "" }, wantErr: ErrFilePathRequired},
		{name: "missing file type", mutate: func(n *NewNote) { n.FileType = "" }, wantErr: ErrFileTypeRequired},
		{name: "zero size", mutate: func(n *NewNote) { n.FileSize = 0 }, wantErr: ErrFileSizeInvalid},
		{name: "missing uploader", mutate: func(n *NewNote) { n.UploaderID = "" }, wantErr: ErrUploaderRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := validNote()
			tt.mutate(&n)
			err := n.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNewNote_Build(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := validNote().Build("n1", now)

	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, []string{}, n.Tags)
	assert.Zero(t, n.Downloads)
	assert.Zero(t, n.Likes)
	assert.Zero(t, n.Rating)
	assert.Zero(t, n.RatingCount)
	assert.Equal(t, now, n.CreatedAt)
	assert.Equal(t, now, n.UpdatedAt)
}

func TestNoteFilter_Matches(t *testing.T) {
	desc := "Eigenvalues and friends"
	course := "MATH-201"
	n := Note{
		Title:       "Week 3",
		Description: &desc,
		Course:      &course,
		Subject:     "Mathematics",
		Tags:        []string{"algebra", "exam"},
		IsPublic:    true,
	}

	assert.True(t, NoteFilter{}.Matches(n))
	assert.True(t, NoteFilter{Search: "ALGEBRA"}.Matches(n), "tag match")
	assert.True(t, NoteFilter{Search: "eigen"}.Matches(n), "description match")
	assert.True(t, NoteFilter{Search: "math-2"}.Matches(n), "course match")
	assert.True(t, NoteFilter{Search: "week"}.Matches(n), "title match")
	assert.False(t, NoteFilter{Search: "physics"}.Matches(n))
	assert.True(t, NoteFilter{Subject: "Mathematics"}.Matches(n))
	assert.False(t, NoteFilter{Subject: "mathematics"}.Matches(n), "subject is exact")

	n.IsPublic = false
	assert.False(t, NoteFilter{}.Matches(n))
}

func TestNoteFilter_Normalize(t *testing.T) {
	assert.Equal(t, NoteFilter{Limit: DefaultNoteLimit}, NoteFilter{Offset: -3}.Normalize())
	assert.Equal(t, NoteFilter{Limit: 5, Offset: 2}, NoteFilter{Limit: 5, Offset: 2}.Normalize())
}

func TestUserUpsert_Apply(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	uni := "Old U"
	existing := &User{ID: "u1", Email: "a@b.c", FirstName: "Ada", LastName: "L", University: &uni, CreatedAt: created, UpdatedAt: created}

	newUni := "New U"
	got := UserUpsert{ID: "u1", University: &newUni}.Apply(existing, now)

	assert.Equal(t, "a@b.c", got.Email)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "New U", *got.University)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, now, got.UpdatedAt)
	assert.Equal(t, "Old U", *existing.University, "existing record is not mutated")

	email := "new@b.c"
	fresh := UserUpsert{ID: "u2", Email: &email}.Apply(nil, now)
	assert.Equal(t, "u2", fresh.ID)
	assert.Equal(t, now, fresh.CreatedAt)
	assert.False(t, fresh.IsVerified)
}
