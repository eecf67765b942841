// Package model contains the domain records shared by the repository, service and HTTP layers.
// The types carry JSON tags only; persistence details live with each repository implementation.
package model

// UserStats is the per-user engagement summary.
type UserStats struct {
	NotesShared   int     `json:"notesShared"`
	TotalLikes    int     `json:"totalLikes"`
	AverageRating float64 `json:"averageRating"`
}

// Contributor is a user joined with their stats, as returned by the top contributors ranking.
type Contributor struct {
	User
	UserStats
}

// PlatformStats are the platform-wide totals.
type PlatformStats struct {
	TotalNotes   int `json:"totalNotes"`
	ActiveUsers  int `json:"activeUsers"`
	Subjects     int `json:"subjects"`
	Universities int `json:"universities"`
}

// SubjectSummary is one entry of the public subject catalog.
type SubjectSummary struct {
	Name      string `json:"name"`
	NoteCount int    `json:"noteCount"`
	Icon      string `json:"icon"`
}
