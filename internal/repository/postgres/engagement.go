package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notehub/internal/model"
	"notehub/internal/repository"
	"notehub/internal/stats"
)

// likeTable owns the SQL for note_likes. The (note_id, user_id) primary key is the source of truth.
type likeTable struct{}

func (likeTable) exists(ctx context.Context, q queryer, noteID, userID string) (bool, error) {
	var liked bool
	const query = `SELECT EXISTS (SELECT 1 FROM note_likes WHERE note_id = $1 AND user_id = $2)`
	if err := q.QueryRowContext(ctx, query, noteID, userID).Scan(&liked); err != nil {
		return false, classify("select like", err)
	}
	return liked, nil
}

func (likeTable) delete(ctx context.Context, q queryer, noteID, userID string) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM note_likes WHERE note_id = $1 AND user_id = $2`, noteID, userID)
	if err != nil {
		return false, classify("delete like", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// insert reports false when the pair already exists.
func (likeTable) insert(ctx context.Context, q queryer, noteID, userID string, at time.Time) (bool, error) {
	const query = `
		INSERT INTO note_likes (note_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (note_id, user_id) DO NOTHING
	`
	res, err := q.ExecContext(ctx, query, noteID, userID, at)
	if err != nil {
		return false, classify("insert like", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// ratingTable owns the SQL for note_ratings.
type ratingTable struct{}

// get returns nil when the user has not rated the note.
func (ratingTable) get(ctx context.Context, q queryer, noteID, userID string) (*int, error) {
	var rating int
	const query = `SELECT rating FROM note_ratings WHERE note_id = $1 AND user_id = $2`
	err := q.QueryRowContext(ctx, query, noteID, userID).Scan(&rating)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("select rating", err)
	}
	return &rating, nil
}

func (ratingTable) update(ctx context.Context, q queryer, noteID, userID string, rating int) (bool, error) {
	const query = `UPDATE note_ratings SET rating = $3 WHERE note_id = $1 AND user_id = $2`
	res, err := q.ExecContext(ctx, query, noteID, userID, rating)
	if err != nil {
		return false, classify("update rating", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// insert reports false when another request created the pair first.
func (ratingTable) insert(ctx context.Context, q queryer, noteID, userID string, rating int, at time.Time) (bool, error) {
	const query = `
		INSERT INTO note_ratings (note_id, user_id, rating, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (note_id, user_id) DO NOTHING
	`
	res, err := q.ExecContext(ctx, query, noteID, userID, rating, at)
	if err != nil {
		return false, classify("insert rating", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

func (ratingTable) values(ctx context.Context, q queryer, noteID string) ([]int, error) {
	rows, err := q.QueryContext(ctx, `SELECT rating FROM note_ratings WHERE note_id = $1`, noteID)
	if err != nil {
		return nil, classify("select ratings", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, classify("scan rating", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate ratings", err)
	}
	return out, nil
}

// ToggleNoteLike flips the caller's like and returns the new state. An insert that loses a race on the
// primary key reports liked without counting the like twice.
func (r *Repository) ToggleNoteLike(ctx context.Context, noteID, userID string) (bool, error) {
	db, err := r.db(ctx)
	if err != nil {
		return false, err
	}
	if err := r.checkPair(ctx, db, noteID, userID); err != nil {
		return false, err
	}

	removed, err := r.likes.delete(ctx, db, noteID, userID)
	if err != nil {
		return false, err
	}
	if removed {
		if _, err := r.notes.bump(ctx, db, noteID, "likes", -1); err != nil {
			return false, err
		}
		return false, nil
	}

	inserted, err := r.likes.insert(ctx, db, noteID, userID, r.timestamp())
	if err != nil {
		return false, err
	}
	if inserted {
		if _, err := r.notes.bump(ctx, db, noteID, "likes", 1); err != nil {
			return false, err
		}
	}
	return true, nil
}

// RateNote records or replaces the caller's rating, then recomputes the note rating from every rating row.
// If the recompute fails the rating stays written; calling again repairs the aggregate.
func (r *Repository) RateNote(ctx context.Context, noteID, userID string, rating int) error {
	if !model.ValidRating(rating) {
		return fmt.Errorf("rating %d: %w", rating, repository.ErrInvalidInput)
	}
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	if err := r.checkPair(ctx, db, noteID, userID); err != nil {
		return err
	}

	if err := r.writeRating(ctx, db, noteID, userID, rating); err != nil {
		return err
	}

	values, err := r.ratings.values(ctx, db, noteID)
	if err != nil {
		return err
	}
	return r.notes.setRating(ctx, db, noteID, stats.NoteRating(values))
}

// checkPair fails with ErrNotFound unless both the note and the user exist.
func (r *Repository) checkPair(ctx context.Context, q queryer, noteID, userID string) error {
	if err := r.notes.exists(ctx, q, noteID); err != nil {
		return err
	}
	return r.users.exists(ctx, q, userID)
}

func (r *Repository) writeRating(ctx context.Context, q queryer, noteID, userID string, rating int) error {
	updated, err := r.ratings.update(ctx, q, noteID, userID, rating)
	if err != nil || updated {
		return err
	}
	inserted, err := r.ratings.insert(ctx, q, noteID, userID, rating, r.timestamp())
	if err != nil {
		return err
	}
	if !inserted {
		// lost the insert race; the row exists now
		_, err = r.ratings.update(ctx, q, noteID, userID, rating)
		return err
	}
	_, err = r.notes.bump(ctx, q, noteID, "rating_count", 1)
	return err
}
