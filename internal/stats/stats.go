// Package stats derives ratings and engagement statistics from raw notes and ratings.
// Every repository implementation aggregates through these functions so their results agree.
package stats

import (
	"math"
	"sort"

	"notehub/internal/model"
)

// DefaultContributorLimit is the number of contributors returned when the caller does not ask for more.
const DefaultContributorLimit = 4

// DefaultIcon is used for subjects without an entry in the icon table.
const DefaultIcon = "BookOpen"

var subjectIcons = map[string]string{
	"Mathematics":             "Calculator",
	"Chemistry":               "Flask",
	"Psychology":              "Brain",
	"History":                 "Landmark",
	"Computer Science":        "Code",
	"Literature":              "Book",
	"Physics":                 "Atom",
	"Biology":                 "Dna",
	"Economics":               "TrendingUp",
	"Engineering":             "Settings",
	"Data Structures":         "TreePine",
	"Algorithms":              "Zap",
	"Database Systems":        "Database",
	"Operating Systems":       "Monitor",
	"Computer Networks":       "Network",
	"Software Engineering":    "Code2",
	"Web Development":         "Globe",
	"Machine Learning":        "Brain",
	"Cybersecurity":           "Shield",
	"Programming Languages":   "Code",
	"Computer Graphics":       "Palette",
	"Artificial Intelligence": "Bot",
}

// SubjectIcon returns the display icon name for a subject.
func SubjectIcon(subject string) string {
	if icon, ok := subjectIcons[subject]; ok {
		return icon
	}
	return DefaultIcon
}

// RoundHalfUp rounds x to the nearest integer; exact halves go up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// RoundTenth rounds x to one decimal place; exact halves go up.
func RoundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// NoteRating is the stored rating of a note: the mean of all its ratings rounded half up, or 0 with no ratings.
func NoteRating(ratings []int) int {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RoundHalfUp(float64(sum) / float64(len(ratings)))
}

// UserStatsFromTotals builds user stats from pre-aggregated sums, as a store-side query returns them.
func UserStatsFromTotals(notesShared, totalLikes, totalRating int) model.UserStats {
	s := model.UserStats{NotesShared: notesShared, TotalLikes: totalLikes}
	if notesShared > 0 {
		s.AverageRating = RoundTenth(float64(totalRating) / float64(notesShared))
	}
	return s
}

// UserStatsOf aggregates the notes uploaded by one user.
func UserStatsOf(notes []model.Note) model.UserStats {
	likes, rating := 0, 0
	for _, n := range notes {
		likes += n.Likes
		rating += n.Rating
	}
	return UserStatsFromTotals(len(notes), likes, rating)
}

// RankContributors drops users without notes, orders by notes shared then total likes (both descending) and
// truncates to limit. Users equal on both keys are ordered by id so every backend returns the same ranking.
func RankContributors(cs []model.Contributor, limit int) []model.Contributor {
	if limit <= 0 {
		limit = DefaultContributorLimit
	}
	out := make([]model.Contributor, 0, len(cs))
	for _, c := range cs {
		if c.NotesShared > 0 {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.NotesShared != b.NotesShared {
			return a.NotesShared > b.NotesShared
		}
		if a.TotalLikes != b.TotalLikes {
			return a.TotalLikes > b.TotalLikes
		}
		return a.ID < b.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Platform computes the platform totals over every note regardless of visibility.
func Platform(notes []model.Note) model.PlatformStats {
	uploaders := make(map[string]struct{})
	subjects := make(map[string]struct{})
	universities := make(map[string]struct{})
	for _, n := range notes {
		uploaders[n.UploaderID] = struct{}{}
		subjects[n.Subject] = struct{}{}
		if n.University != nil && *n.University != "" {
			universities[*n.University] = struct{}{}
		}
	}
	return model.PlatformStats{
		TotalNotes:   len(notes),
		ActiveUsers:  len(uploaders),
		Subjects:     len(subjects),
		Universities: len(universities),
	}
}

// SubjectCatalog turns per-subject counts into the catalog, most notes first and by name on ties.
func SubjectCatalog(counts map[string]int) []model.SubjectSummary {
	out := make([]model.SubjectSummary, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.SubjectSummary{Name: name, NoteCount: n, Icon: SubjectIcon(name)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NoteCount != out[j].NoteCount {
			return out[i].NoteCount > out[j].NoteCount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Subjects counts public notes per subject and returns the catalog.
func Subjects(notes []model.Note) []model.SubjectSummary {
	counts := make(map[string]int)
	for _, n := range notes {
		if n.IsPublic {
			counts[n.Subject]++
		}
	}
	return SubjectCatalog(counts)
}
