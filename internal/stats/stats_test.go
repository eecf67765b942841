package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"notehub/internal/model"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{3.49, 3},
		{3.5, 4},
		{4.5, 5},
		{2.5, 3},
		{4.0, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundHalfUp(tt.in), "RoundHalfUp(%v)", tt.in)
	}
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 3.5, RoundTenth(7.0/2.0))
	assert.Equal(t, 3.3, RoundTenth(10.0/3.0))
	assert.Equal(t, 3.7, RoundTenth(11.0/3.0))
	assert.Equal(t, 0.0, RoundTenth(0))
}

func TestNoteRating(t *testing.T) {
	t.Run("no ratings", func(t *testing.T) {
		assert.Equal(t, 0, NoteRating(nil))
	})
	t.Run("exact mean", func(t *testing.T) {
		assert.Equal(t, 4, NoteRating([]int{5, 4, 3}))
	})
	t.Run("fourth rating keeps mean at 3.5 rounded up", func(t *testing.T) {
		assert.Equal(t, 4, NoteRating([]int{5, 4, 3, 2}))
	})
	t.Run("half boundary rounds up", func(t *testing.T) {
		assert.Equal(t, 4, NoteRating([]int{3, 4}))
	})
	t.Run("below half rounds down", func(t *testing.T) {
		assert.Equal(t, 3, NoteRating([]int{3, 3, 4}))
	})
}

func TestUserStatsOf(t *testing.T) {
	t.Run("no notes", func(t *testing.T) {
		assert.Equal(t, model.UserStats{}, UserStatsOf(nil))
	})

	t.Run("sums and one decimal average", func(t *testing.T) {
		notes := []model.Note{
			{Likes: 2, Rating: 4},
			{Likes: 3, Rating: 3},
			{Likes: 0, Rating: 3},
		}
		got := UserStatsOf(notes)
		assert.Equal(t, 3, got.NotesShared)
		assert.Equal(t, 5, got.TotalLikes)
		assert.Equal(t, 3.3, got.AverageRating)
	})
}

func TestRankContributors(t *testing.T) {
	cs := []model.Contributor{
		{User: model.User{ID: "idle"}},
		{User: model.User{ID: "b"}, UserStats: model.UserStats{NotesShared: 2, TotalLikes: 1}},
		{User: model.User{ID: "a"}, UserStats: model.UserStats{NotesShared: 2, TotalLikes: 7}},
		{User: model.User{ID: "c"}, UserStats: model.UserStats{NotesShared: 5}},
		{User: model.User{ID: "e"}, UserStats: model.UserStats{NotesShared: 1, TotalLikes: 1}},
		{User: model.User{ID: "d"}, UserStats: model.UserStats{NotesShared: 1, TotalLikes: 1}},
	}

	got := RankContributors(cs, 10)

	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c", "a", "b", "d", "e"}, ids)

	t.Run("truncates", func(t *testing.T) {
		assert.Len(t, RankContributors(cs, 2), 2)
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		assert.Len(t, RankContributors(cs, 0), DefaultContributorLimit)
	})
}

func TestPlatform(t *testing.T) {
	uni := "MIT"
	other := "ETH"
	empty := ""
	notes := []model.Note{
		{UploaderID: "u1", Subject: "Physics", University: &uni, IsPublic: true},
		{UploaderID: "u1", Subject: "Biology", University: &other, IsPublic: false},
		{UploaderID: "u2", Subject: "Physics", University: &empty, IsPublic: true},
		{UploaderID: "u3", Subject: "Physics", University: nil, IsPublic: true},
	}

	got := Platform(notes)

	assert.Equal(t, model.PlatformStats{TotalNotes: 4, ActiveUsers: 3, Subjects: 2, Universities: 2}, got)
}

func TestSubjects(t *testing.T) {
	notes := []model.Note{
		{Subject: "Physics", IsPublic: true},
		{Subject: "Physics", IsPublic: true},
		{Subject: "Biology", IsPublic: true},
		{Subject: "Astrology", IsPublic: true},
		{Subject: "Secret", IsPublic: false},
	}

	got := Subjects(notes)

	assert.Equal(t, []model.SubjectSummary{
		{Name: "Physics", NoteCount: 2, Icon: "Atom"},
		{Name: "Astrology", NoteCount: 1, Icon: DefaultIcon},
		{Name: "Biology", NoteCount: 1, Icon: "Dna"},
	}, got)
}
