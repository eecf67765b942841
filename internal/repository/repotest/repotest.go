// Package repotest is a behavioural test suite every repository.Repository implementation must pass.
// Both backends run it, which is what keeps their observable behaviour identical.
package repotest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notehub/internal/model"
	"notehub/internal/repository"
)

// Factory returns an empty repository for one test. Implementations register their own cleanup on t.
type Factory func(t *testing.T) repository.Repository

// Run executes the whole suite against repositories built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	tests := []struct {
		name string
		fn   func(t *testing.T, r repository.Repository)
	}{
		{"Users", testUsers},
		{"UpsertUser", testUpsertUser},
		{"CreateAndGetNote", testCreateAndGetNote},
		{"GetNotesFilters", testGetNotesFilters},
		{"GetNotesPagination", testGetNotesPagination},
		{"UpdateNoteDownloads", testUpdateNoteDownloads},
		{"GetUserNotes", testGetUserNotes},
		{"DeleteNote", testDeleteNote},
		{"ToggleNoteLike", testToggleNoteLike},
		{"RateNote", testRateNote},
		{"UserStats", testUserStats},
		{"TopContributors", testTopContributors},
		{"PlatformStatsAndSubjects", testPlatformStatsAndSubjects},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, newRepo(t))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func createUser(t *testing.T, r repository.Repository, id string) *model.User {
	t.Helper()
	u, err := r.CreateUser(context.Background(), model.NewUser{
		ID:        id,
		Email:     id + "@example.com",
		Password:  "hash",
		FirstName: "First " + id,
		LastName:  "Last " + id,
	})
	require.NoError(t, err)
	return u
}

type noteOpt func(*model.NewNote)

func withSubject(s string) noteOpt { return func(n *model.NewNote) { n.Subject = s } }
func withTags(tags ...string) noteOpt { return func(n *model.NewNote) { n.Tags = tags } }
func private() noteOpt { return func(n *model.NewNote) { n.IsPublic = false } }
func withUniversity(u string) noteOpt { return func(n *model.NewNote) { n.University = &u } }
func withDescription(d string) noteOpt { return func(n *model.NewNote) { n.Description = &d } }
func withCourse(c string) noteOpt { return func(n *model.NewNote) { n.Course = &c } }

func createNote(t *testing.T, r repository.Repository, uploader, title string, opts ...noteOpt) *model.Note {
	t.Helper()
	in := model.NewNote{
		Title:      title,
		Subject:    "Mathematics",
		FileName:   title + ".pdf",
		FilePath:   "notes/" + uuid.NewString() + ".pdf",
		FileType:   "application/pdf",
		FileSize:   2048,
		UploaderID: uploader,
		IsPublic:   true,
	}
	for _, opt := range opts {
		opt(&in)
	}
	n, err := r.CreateNote(context.Background(), in)
	require.NoError(t, err)
	return n
}

func ids(notes []model.NoteWithUploader) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func testUsers(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	created, err := r.CreateUser(ctx, model.NewUser{
		ID: "alice", Email: "alice@example.com", Password: "hash", FirstName: "Alice", LastName: "A", University: "MIT",
	})
	require.NoError(t, err)
	assert.False(t, created.IsVerified)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := r.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash", got.Password)
	require.NotNil(t, got.University)
	assert.Equal(t, "MIT", *got.University)

	byEmail, err := r.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "alice", byEmail.ID)

	absent, err := r.GetUserByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, absent)

	_, err = r.GetUser(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.CreateUser(ctx, model.NewUser{ID: "alice2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = r.CreateUser(ctx, model.NewUser{ID: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func testUpsertUser(t *testing.T, r repository.Repository) {
	ctx := context.Background()

	_, err := r.UpsertUser(ctx, model.UserUpsert{ID: "ghost", FirstName: ptr("G")})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	created, err := r.UpsertUser(ctx, model.UserUpsert{ID: "bob", Email: ptr("bob@example.com"), FirstName: ptr("Bob")})
	require.NoError(t, err)
	assert.Equal(t, "Bob", created.FirstName)
	assert.Equal(t, "", created.LastName)

	updated, err := r.UpsertUser(ctx, model.UserUpsert{ID: "bob", University: ptr("Stanford")})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, "Bob", updated.FirstName)
	require.NotNil(t, updated.University)
	assert.Equal(t, "Stanford", *updated.University)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	createUser(t, r, "carol")
	_, err = r.UpsertUser(ctx, model.UserUpsert{ID: "bob", Email: ptr("carol@example.com")})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func testCreateAndGetNote(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createUser(t, r, "up")
	n := createNote(t, r, "up", "Linear Algebra", withTags("matrices", "exam"), withUniversity("MIT"))

	assert.NotEmpty(t, n.ID)
	assert.Zero(t, n.Downloads)
	assert.Zero(t, n.Likes)
	assert.Zero(t, n.Rating)
	assert.Zero(t, n.RatingCount)

	got, err := r.GetNoteByID(ctx, n.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", got.Title)
	assert.Equal(t, []string{"matrices", "exam"}, got.Tags)
	require.NotNil(t, got.Uploader.FirstName)
	assert.Equal(t, "First up", *got.Uploader.FirstName)
	assert.Nil(t, got.IsLiked)
	assert.Nil(t, got.UserRating)

	withUser, err := r.GetNoteByID(ctx, n.ID, "reader")
	require.NoError(t, err)
	require.NotNil(t, withUser.IsLiked)
	assert.False(t, *withUser.IsLiked)
	assert.Nil(t, withUser.UserRating)

	orphan := createNote(t, r, "no-such-user", "Orphan")
	got, err = r.GetNoteByID(ctx, orphan.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.Uploader{}, got.Uploader)

	_, err = r.GetNoteByID(ctx, "missing", "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testGetNotesFilters(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createUser(t, r, "up")
	byTitle := createNote(t, r, "up", "Quantum Mechanics", withSubject("Physics"))
	byDesc := createNote(t, r, "up", "Waves", withSubject("Physics"), withDescription("intro to QUANTUM fields"))
	byCourse := createNote(t, r, "up", "Optics", withSubject("Physics"), withCourse("PHYS-quantum-101"))
	byTag := createNote(t, r, "up", "Calculus", withTags("Quantumish"))
	createNote(t, r, "up", "Hidden Quantum", private())
	plain := createNote(t, r, "up", "Statistics")

	all, err := r.GetNotes(ctx, model.NoteFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{plain.ID, byTag.ID, byCourse.ID, byDesc.ID, byTitle.ID}, ids(all))

	search, err := r.GetNotes(ctx, model.NoteFilter{Search: "quantum"})
	require.NoError(t, err)
	assert.Equal(t, []string{byTag.ID, byCourse.ID, byDesc.ID, byTitle.ID}, ids(search))

	physics, err := r.GetNotes(ctx, model.NoteFilter{Subject: "Physics", Search: "QUANTUM"})
	require.NoError(t, err)
	assert.Equal(t, []string{byCourse.ID, byDesc.ID, byTitle.ID}, ids(physics))

	none, err := r.GetNotes(ctx, model.NoteFilter{Subject: "physics"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testGetNotesPagination(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	var created []string
	for _, title := range []string{"n1", "n2", "n3", "n4", "n5"} {
		created = append([]string{createNote(t, r, "up", title).ID}, created...)
	}

	page, err := r.GetNotes(ctx, model.NoteFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, created[1:3], ids(page))

	tail, err := r.GetNotes(ctx, model.NoteFilter{Limit: 10, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, created[4:], ids(tail))

	past, err := r.GetNotes(ctx, model.NoteFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func testUpdateNoteDownloads(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	n := createNote(t, r, "up", "Downloads")

	require.NoError(t, r.UpdateNoteDownloads(ctx, n.ID))
	require.NoError(t, r.UpdateNoteDownloads(ctx, n.ID))

	got, err := r.GetNoteByID(ctx, n.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Downloads)

	assert.ErrorIs(t, r.UpdateNoteDownloads(ctx, "missing"), repository.ErrNotFound)
}

func testGetUserNotes(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createUser(t, r, "owner")
	createUser(t, r, "other")
	first := createNote(t, r, "owner", "Public")
	second := createNote(t, r, "owner", "Private", private())
	createNote(t, r, "other", "Not mine")

	notes, err := r.GetUserNotes(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, ids(notes))

	_, err = r.GetUserNotes(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testDeleteNote(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createUser(t, r, "owner")
	createUser(t, r, "fan")
	n := createNote(t, r, "owner", "Doomed")
	_, err := r.ToggleNoteLike(ctx, n.ID, "fan")
	require.NoError(t, err)
	require.NoError(t, r.RateNote(ctx, n.ID, "fan", 5))

	require.NoError(t, r.DeleteNote(ctx, n.ID))

	_, err = r.GetNoteByID(ctx, n.ID, "fan")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, r.DeleteNote(ctx, n.ID), repository.ErrNotFound)
	_, err = r.ToggleNoteLike(ctx, n.ID, "fan")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	stats, err := r.GetUserStats(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{}, stats)
}

func testToggleNoteLike(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createUser(t, r, "u1")
	createUser(t, r, "u2")
	n := createNote(t, r, "up", "Likeable")

	likes := func() int {
		t.Helper()
		got, err := r.GetNoteByID(ctx, n.ID, "")
		require.NoError(t, err)
		return got.Likes
	}

	liked, err := r.ToggleNoteLike(ctx, n.ID, "u1")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, likes())

	liked, err = r.ToggleNoteLike(ctx, n.ID, "u2")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 2, likes())

	liked, err = r.ToggleNoteLike(ctx, n.ID, "u1")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 1, likes())

	got, err := r.GetNoteByID(ctx, n.ID, "u2")
	require.NoError(t, err)
	require.NotNil(t, got.IsLiked)
	assert.True(t, *got.IsLiked)

	got, err = r.GetNoteByID(ctx, n.ID, "u1")
	require.NoError(t, err)
	require.NotNil(t, got.IsLiked)
	assert.False(t, *got.IsLiked)

	_, err = r.ToggleNoteLike(ctx, "missing", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.ToggleNoteLike(ctx, n.ID, "ghost")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 1, likes())
}

func testRateNote(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		createUser(t, r, id)
	}
	n := createNote(t, r, "up", "Rateable")

	require.NoError(t, r.RateNote(ctx, n.ID, "a", 5))
	require.NoError(t, r.RateNote(ctx, n.ID, "b", 4))
	require.NoError(t, r.RateNote(ctx, n.ID, "c", 3))

	got, err := r.GetNoteByID(ctx, n.ID, "b")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, 3, got.RatingCount)
	require.NotNil(t, got.UserRating)
	assert.Equal(t, 4, *got.UserRating)

	// {5, 4, 3, 2} averages to 3.5, which rounds up
	require.NoError(t, r.RateNote(ctx, n.ID, "d", 2))
	got, err = r.GetNoteByID(ctx, n.ID, "d")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, 4, got.RatingCount)
	assert.Equal(t, 2, *got.UserRating)

	// resubmission replaces the value and leaves the count alone
	require.NoError(t, r.RateNote(ctx, n.ID, "c", 1))
	got, err = r.GetNoteByID(ctx, n.ID, "c")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Rating)
	assert.Equal(t, 4, got.RatingCount)
	assert.Equal(t, 1, *got.UserRating)

	assert.ErrorIs(t, r.RateNote(ctx, n.ID, "ghost", 3), repository.ErrNotFound)
	got, err = r.GetNoteByID(ctx, n.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, got.RatingCount)

	// {3, 4} averages to 3.5, which rounds up
	m := createNote(t, r, "up", "Half")
	require.NoError(t, r.RateNote(ctx, m.ID, "a", 3))
	require.NoError(t, r.RateNote(ctx, m.ID, "b", 4))
	got, err = r.GetNoteByID(ctx, m.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)

	assert.ErrorIs(t, r.RateNote(ctx, n.ID, "a", 0), repository.ErrInvalidInput)
	assert.ErrorIs(t, r.RateNote(ctx, n.ID, "a", 6), repository.ErrInvalidInput)
	assert.ErrorIs(t, r.RateNote(ctx, "missing", "a", 3), repository.ErrNotFound)
}

func testUserStats(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	for _, id := range []string{"writer", "lurker", "x", "y"} {
		createUser(t, r, id)
	}

	a := createNote(t, r, "writer", "A")
	b := createNote(t, r, "writer", "B", private())
	createNote(t, r, "writer", "C")
	require.NoError(t, r.RateNote(ctx, a.ID, "x", 5))
	require.NoError(t, r.RateNote(ctx, b.ID, "x", 4))
	for _, u := range []string{"x", "y"} {
		_, err := r.ToggleNoteLike(ctx, a.ID, u)
		require.NoError(t, err)
	}
	_, err := r.ToggleNoteLike(ctx, b.ID, "x")
	require.NoError(t, err)

	s, err := r.GetUserStats(ctx, "writer")
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{NotesShared: 3, TotalLikes: 3, AverageRating: 3}, s)

	empty, err := r.GetUserStats(ctx, "lurker")
	require.NoError(t, err)
	assert.Equal(t, model.UserStats{}, empty)

	_, err = r.GetUserStats(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testTopContributors(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	for _, id := range []string{"u-a", "u-b", "u-c", "u-d", "u-e", "u-none", "fan"} {
		createUser(t, r, id)
	}
	notesPerUser := map[string]int{"u-a": 2, "u-b": 2, "u-c": 3, "u-d": 1, "u-e": 1}
	var firstOfB string
	for _, id := range []string{"u-a", "u-b", "u-c", "u-d", "u-e"} {
		for i := 0; i < notesPerUser[id]; i++ {
			n := createNote(t, r, id, id+"-note")
			if id == "u-b" && firstOfB == "" {
				firstOfB = n.ID
			}
		}
	}
	_, err := r.ToggleNoteLike(ctx, firstOfB, "fan")
	require.NoError(t, err)

	top, err := r.GetTopContributors(ctx, 0)
	require.NoError(t, err)
	got := make([]string, 0, len(top))
	for _, c := range top {
		got = append(got, c.ID)
	}
	assert.Equal(t, []string{"u-c", "u-b", "u-a", "u-d"}, got)
	assert.Equal(t, 3, top[0].NotesShared)
	assert.Equal(t, 1, top[1].TotalLikes)

	two, err := r.GetTopContributors(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func testPlatformStatsAndSubjects(t *testing.T, r repository.Repository) {
	ctx := context.Background()
	createNote(t, r, "u1", "A", withSubject("Physics"), withUniversity("MIT"))
	createNote(t, r, "u1", "B", withSubject("Physics"), withUniversity(""))
	createNote(t, r, "u2", "C", withSubject("Computer Science"), withUniversity("Stanford"))
	createNote(t, r, "u3", "D", withSubject("Biology"), private())
	createNote(t, r, "u3", "E", withSubject("Basket Weaving"))

	p, err := r.GetPlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.PlatformStats{TotalNotes: 5, ActiveUsers: 3, Subjects: 4, Universities: 2}, p)

	subjects, err := r.GetSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.SubjectSummary{
		{Name: "Physics", NoteCount: 2, Icon: "Atom"},
		{Name: "Basket Weaving", NoteCount: 1, Icon: "BookOpen"},
		{Name: "Computer Science", NoteCount: 1, Icon: "Code"},
	}, subjects)
}
