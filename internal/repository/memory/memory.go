// Package memory is the in-process implementation of repository.Repository, used when no durable store
// is configured and in tests. All state lives in maps guarded by one mutex.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/stats"
)

// Development account seeded into every new store so authenticated flows work without signup.
const (
	DevUserID    = "dev-user-123"
	DevUserEmail = "dev@example.com"
	// bcrypt hash of "password"
	devUserPasswordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"
)

type pairKey struct {
	noteID string
	userID string
}

// Store is a repository.Repository backed by process memory.
type Store struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string]model.User
	notes   map[string]model.Note
	likes   map[pairKey]model.Like
	ratings map[pairKey]model.Rating
	nextID  int
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutDevUser skips seeding the development account.
func WithoutDevUser() Option {
	return func(s *Store) { delete(s.users, DevUserID) }
}

// New creates an empty store seeded with the development user.
func New(opts ...Option) *Store {
	s := &Store{
		now:     func() time.Time { return time.Now().UTC() },
		users:   make(map[string]model.User),
		notes:   make(map[string]model.Note),
		likes:   make(map[pairKey]model.Like),
		ratings: make(map[pairKey]model.Rating),
		nextID:  1,
	}
	now := s.now()
	uni := "Development University"
	s.users[DevUserID] = model.User{
		ID:         DevUserID,
		Email:      DevUserEmail,
		Password:   devUserPasswordHash,
		FirstName:  "Dev",
		LastName:   "User",
		University: &uni,
		IsVerified: true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ repository.Repository = (*Store)(nil)

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, repository.ErrNotFound)
}

// User operations

func (s *Store) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, notFound("user", id)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.userByEmail(email); ok {
		return &u, nil
	}
	return nil, nil
}

func (s *Store) userByEmail(email string) (model.User, bool) {
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *Store) CreateUser(_ context.Context, in model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[in.ID]; ok {
		return nil, fmt.Errorf("user id %q: %w", in.ID, repository.ErrConflict)
	}
	if _, ok := s.userByEmail(in.Email); ok {
		return nil, fmt.Errorf("email %q: %w", in.Email, repository.ErrConflict)
	}
	now := s.now()
	u := model.User{
		ID:        in.ID,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.University != "" {
		uni := in.University
		u.University = &uni
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *Store) UpsertUser(_ context.Context, in model.UserUpsert) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var existing *model.User
	if u, ok := s.users[in.ID]; ok {
		existing = &u
	} else if in.Email == nil {
		return nil, fmt.Errorf("creating user %q without email: %w", in.ID, repository.ErrInvalidInput)
	}
	u := in.Apply(existing, s.now())
	if other, ok := s.userByEmail(u.Email); ok && other.ID != u.ID {
		return nil, fmt.Errorf("email %q: %w", u.Email, repository.ErrConflict)
	}
	s.users[u.ID] = u
	return &u, nil
}

// Note operations

func (s *Store) CreateNote(_ context.Context, in model.NewNote) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	n := in.Build(id, s.now())
	n.Tags = append([]string{}, n.Tags...)
	s.notes[id] = n
	out := n
	out.Tags = append([]string{}, n.Tags...)
	return &out, nil
}

func (s *Store) GetNotes(_ context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error) {
	f = f.Normalize()
	s.mu.RLock()
	defer s.mu.RUnlock()
	matched := s.sortedNotes(f.Matches)
	if f.Offset >= len(matched) {
		return []model.NoteWithUploader{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return s.withUploaders(matched[f.Offset:end]), nil
}

func (s *Store) GetNoteByID(_ context.Context, id, userID string) (*model.NoteWithUploader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok {
		return nil, notFound("note", id)
	}
	out := s.withUploader(n)
	if userID != "" {
		key := pairKey{noteID: id, userID: userID}
		_, liked := s.likes[key]
		out.IsLiked = &liked
		if r, ok := s.ratings[key]; ok {
			v := r.Rating
			out.UserRating = &v
		}
	}
	return &out, nil
}

func (s *Store) UpdateNoteDownloads(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	if !ok {
		return notFound("note", id)
	}
	n.Downloads++
	s.notes[id] = n
	return nil
}

func (s *Store) GetUserNotes(_ context.Context, userID string) ([]model.NoteWithUploader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[userID]; !ok {
		return nil, notFound("user", userID)
	}
	notes := s.sortedNotes(func(n model.Note) bool { return n.UploaderID == userID })
	return s.withUploaders(notes), nil
}

func (s *Store) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return notFound("note", id)
	}
	delete(s.notes, id)
	for k := range s.likes {
		if k.noteID == id {
			delete(s.likes, k)
		}
	}
	for k := range s.ratings {
		if k.noteID == id {
			delete(s.ratings, k)
		}
	}
	return nil
}

// Engagement operations

func (s *Store) ToggleNoteLike(_ context.Context, noteID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[noteID]
	if !ok {
		return false, notFound("note", noteID)
	}
	if _, ok := s.users[userID]; !ok {
		return false, notFound("user", userID)
	}
	key := pairKey{noteID: noteID, userID: userID}
	if _, liked := s.likes[key]; liked {
		delete(s.likes, key)
		n.Likes--
		s.notes[noteID] = n
		return false, nil
	}
	s.likes[key] = model.Like{NoteID: noteID, UserID: userID, CreatedAt: s.now()}
	n.Likes++
	s.notes[noteID] = n
	return true, nil
}

func (s *Store) RateNote(_ context.Context, noteID, userID string, rating int) error {
	if !model.ValidRating(rating) {
		return fmt.Errorf("rating %d: %w", rating, repository.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[noteID]
	if !ok {
		return notFound("note", noteID)
	}
	if _, ok := s.users[userID]; !ok {
		return notFound("user", userID)
	}
	key := pairKey{noteID: noteID, userID: userID}
	if existing, ok := s.ratings[key]; ok {
		existing.Rating = rating
		s.ratings[key] = existing
	} else {
		s.ratings[key] = model.Rating{NoteID: noteID, UserID: userID, Rating: rating, CreatedAt: s.now()}
		n.RatingCount++
	}

	var values []int
	for k, r := range s.ratings {
		if k.noteID == noteID {
			values = append(values, r.Rating)
		}
	}
	n.Rating = stats.NoteRating(values)
	s.notes[noteID] = n
	return nil
}

// Statistics operations

func (s *Store) GetUserStats(_ context.Context, userID string) (model.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[userID]; !ok {
		return model.UserStats{}, notFound("user", userID)
	}
	return stats.UserStatsOf(s.notesOf(userID)), nil
}

func (s *Store) GetTopContributors(_ context.Context, limit int) ([]model.Contributor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cs := make([]model.Contributor, 0, len(s.users))
	for id, u := range s.users {
		cs = append(cs, model.Contributor{User: u, UserStats: stats.UserStatsOf(s.notesOf(id))})
	}
	return stats.RankContributors(cs, limit), nil
}

func (s *Store) GetPlatformStats(_ context.Context) (model.PlatformStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Platform(s.allNotes()), nil
}

func (s *Store) GetSubjects(_ context.Context) ([]model.SubjectSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.Subjects(s.allNotes()), nil
}

// helpers; callers hold s.mu

func (s *Store) allNotes() []model.Note {
	out := make([]model.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	return out
}

func (s *Store) notesOf(userID string) []model.Note {
	var out []model.Note
	for _, n := range s.notes {
		if n.UploaderID == userID {
			out = append(out, n)
		}
	}
	return out
}

// sortedNotes returns the notes accepted by keep, newest first. Notes created in the same instant are
// ordered by descending id, which follows creation order.
func (s *Store) sortedNotes(keep func(model.Note) bool) []model.Note {
	out := make([]model.Note, 0)
	for _, n := range s.notes {
		if keep(n) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return idAfter(out[i].ID, out[j].ID)
	})
	return out
}

func idAfter(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return ai > bi
	}
	return a > b
}

func (s *Store) withUploader(n model.Note) model.NoteWithUploader {
	var up *model.User
	if u, ok := s.users[n.UploaderID]; ok {
		up = &u
	}
	n.Tags = append([]string(nil), n.Tags...)
	return model.NoteWithUploader{Note: n, Uploader: model.UploaderOf(up)}
}

func (s *Store) withUploaders(notes []model.Note) []model.NoteWithUploader {
	out := make([]model.NoteWithUploader, 0, len(notes))
	for _, n := range notes {
		out = append(out, s.withUploader(n))
	}
	return out
}
