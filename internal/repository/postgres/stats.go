package postgres

import (
	"context"
	"database/sql"

	"golang.org/x/sync/errgroup"

	"notehub/internal/model"
	"notehub/internal/stats"
)

// GetUserStats aggregates the notes uploaded by userID in one query.
func (r *Repository) GetUserStats(ctx context.Context, userID string) (model.UserStats, error) {
	db, err := r.db(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	if _, err := r.users.byID(ctx, db, userID); err != nil {
		return model.UserStats{}, err
	}

	var notesShared, totalLikes, totalRating int
	const query = `
		SELECT COUNT(*), COALESCE(SUM(likes), 0), COALESCE(SUM(rating), 0)
		FROM notes
		WHERE uploader_id = $1
	`
	if err := db.QueryRowContext(ctx, query, userID).Scan(&notesShared, &totalLikes, &totalRating); err != nil {
		return model.UserStats{}, classify("user stats", err)
	}
	return stats.UserStatsFromTotals(notesShared, totalLikes, totalRating), nil
}

// GetTopContributors ranks users that uploaded at least one note. The id key is compared bytewise so the
// order matches stats.RankContributors.
func (r *Repository) GetTopContributors(ctx context.Context, limit int) ([]model.Contributor, error) {
	if limit <= 0 {
		limit = stats.DefaultContributorLimit
	}
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT u.id, u.email, u.password, u.first_name, u.last_name, u.profile_image_url, u.university,
			u.is_verified, u.created_at, u.updated_at,
			COUNT(n.id), COALESCE(SUM(n.likes), 0), COALESCE(SUM(n.rating), 0)
		FROM users u
		JOIN notes n ON n.uploader_id = u.id
		GROUP BY u.id
		ORDER BY COUNT(n.id) DESC, COALESCE(SUM(n.likes), 0) DESC, u.id COLLATE "C" ASC
		LIMIT $1
	`
	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, classify("top contributors", err)
	}
	defer rows.Close()

	out := make([]model.Contributor, 0, limit)
	for rows.Next() {
		var (
			c                         model.Contributor
			profileURL, university    sql.NullString
			notes, likes, ratingTotal int
		)
		if err := rows.Scan(
			&c.ID,
			&c.Email,
			&c.Password,
			&c.FirstName,
			&c.LastName,
			&profileURL,
			&university,
			&c.IsVerified,
			&c.CreatedAt,
			&c.UpdatedAt,
			&notes,
			&likes,
			&ratingTotal,
		); err != nil {
			return nil, classify("scan contributor", err)
		}
		c.ProfileImageURL = stringPtr(profileURL)
		c.University = stringPtr(university)
		c.UserStats = stats.UserStatsFromTotals(notes, likes, ratingTotal)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate contributors", err)
	}
	return stats.RankContributors(out, limit), nil
}

// GetPlatformStats runs the four platform counts concurrently.
func (r *Repository) GetPlatformStats(ctx context.Context) (model.PlatformStats, error) {
	db, err := r.db(ctx)
	if err != nil {
		return model.PlatformStats{}, err
	}

	var out model.PlatformStats
	counts := []struct {
		op    string
		query string
		dst   *int
	}{
		{"total notes", `SELECT COUNT(*) FROM notes`, &out.TotalNotes},
		{"active users", `SELECT COUNT(DISTINCT uploader_id) FROM notes`, &out.ActiveUsers},
		{"subjects", `SELECT COUNT(DISTINCT subject) FROM notes`, &out.Subjects},
		{"universities", `SELECT COUNT(DISTINCT university) FROM notes WHERE university IS NOT NULL AND university <> ''`, &out.Universities},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			if err := db.QueryRowContext(gctx, c.query).Scan(c.dst); err != nil {
				return classify(c.op, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return model.PlatformStats{}, err
	}
	return out, nil
}

// GetSubjects counts public notes per subject.
func (r *Repository) GetSubjects(ctx context.Context) ([]model.SubjectSummary, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT subject, COUNT(*) FROM notes WHERE is_public = true GROUP BY subject`)
	if err != nil {
		return nil, classify("subjects", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			name string
			n    int
		)
		if err := rows.Scan(&name, &n); err != nil {
			return nil, classify("scan subject", err)
		}
		counts[name] = n
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate subjects", err)
	}
	return stats.SubjectCatalog(counts), nil
}
