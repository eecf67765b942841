package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/repository/repotest"
)

func TestStore_Conformance(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository {
		return New(WithoutDevUser())
	})
}

func TestStore_DevUserSeeded(t *testing.T) {
	s := New()

	u, err := s.GetUser(context.Background(), DevUserID)
	require.NoError(t, err)
	assert.Equal(t, DevUserEmail, u.Email)
	assert.True(t, u.IsVerified)
	require.NotNil(t, u.University)
	assert.Equal(t, "Development University", *u.University)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("password")))

	byEmail, err := s.GetUserByEmail(context.Background(), DevUserEmail)
	require.NoError(t, err)
	assert.Equal(t, DevUserID, byEmail.ID)
}

func TestStore_NoteIDsAreSequential(t *testing.T) {
	s := New()
	in := model.NewNote{
		Title: "t", Subject: "s", FileName: "f", FilePath: "p", FileType: "application/pdf", FileSize: 1, UploaderID: DevUserID,
	}

	first, err := s.CreateNote(context.Background(), in)
	require.NoError(t, err)
	second, err := s.CreateNote(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, []string{}, first.Tags)
}

func TestStore_SameInstantOrdersByID(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return at }))
	in := model.NewNote{
		Title: "t", Subject: "s", FileName: "f", FilePath: "p", FileType: "application/pdf", FileSize: 1,
		UploaderID: DevUserID, IsPublic: true,
	}
	for i := 0; i < 11; i++ {
		_, err := s.CreateNote(context.Background(), in)
		require.NoError(t, err)
	}

	notes, err := s.GetNotes(context.Background(), model.NoteFilter{Limit: 3})
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, "11", notes[0].ID)
	assert.Equal(t, "10", notes[1].ID)
	assert.Equal(t, "9", notes[2].ID)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	s := New()
	n, err := s.CreateNote(context.Background(), model.NewNote{
		Title: "t", Subject: "s", FileName: "f", FilePath: "p", FileType: "application/pdf", FileSize: 1,
		UploaderID: DevUserID, Tags: []string{"a"},
	})
	require.NoError(t, err)

	got, err := s.GetNoteByID(context.Background(), n.ID, "")
	require.NoError(t, err)
	got.Tags[0] = "mutated"
	got.Likes = 99

	again, err := s.GetNoteByID(context.Background(), n.ID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
	assert.Zero(t, again.Likes)
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := New()
	n, err := s.CreateNote(context.Background(), model.NewNote{
		Title: "t", Subject: "s", FileName: "f", FilePath: "p", FileType: "application/pdf", FileSize: 1, UploaderID: DevUserID,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.ToggleNoteLike(context.Background(), n.ID, DevUserID)
		}()
	}
	wg.Wait()

	got, err := s.GetNoteByID(context.Background(), n.ID, DevUserID)
	require.NoError(t, err)
	// an even number of toggles by one user leaves the note unliked
	assert.Zero(t, got.Likes)
	assert.False(t, *got.IsLiked)
}
