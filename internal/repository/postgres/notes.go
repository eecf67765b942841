package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"notehub/internal/model"
)

const noteColumns = `n.id, n.title, n.description, n.subject, n.course, n.university, n.tags, n.file_name, n.file_path,
	n.file_type, n.file_size, n.uploader_id, n.is_public, n.downloads, n.likes, n.rating, n.rating_count,
	n.created_at, n.updated_at`

const noteWithUploaderSelect = `SELECT ` + noteColumns + `,
	u.first_name, u.last_name, u.profile_image_url, u.university
FROM notes n
LEFT JOIN users u ON u.id = n.uploader_id`

const noteOrder = ` ORDER BY n.created_at DESC, n.id DESC`

// noteTable owns the SQL for the notes table.
type noteTable struct{}

func scanNoteWithUploader(row interface{ Scan(...any) error }) (*model.NoteWithUploader, error) {
	var (
		out                                        model.NoteWithUploader
		description, course, university            sql.NullString
		tags                                       []byte
		firstName, lastName, profileURL, uploaderU sql.NullString
	)
	n := &out.Note
	if err := row.Scan(
		&n.ID,
		&n.Title,
		&description,
		&n.Subject,
		&course,
		&university,
		&tags,
		&n.FileName,
		&n.FilePath,
		&n.FileType,
		&n.FileSize,
		&n.UploaderID,
		&n.IsPublic,
		&n.Downloads,
		&n.Likes,
		&n.Rating,
		&n.RatingCount,
		&n.CreatedAt,
		&n.UpdatedAt,
		&firstName,
		&lastName,
		&profileURL,
		&uploaderU,
	); err != nil {
		return nil, err
	}
	n.Description = stringPtr(description)
	n.Course = stringPtr(course)
	n.University = stringPtr(university)
	if err := decodeTags(tags, &n.Tags); err != nil {
		return nil, err
	}
	out.Uploader = model.Uploader{
		FirstName:       nonEmptyPtr(firstName),
		LastName:        nonEmptyPtr(lastName),
		ProfileImageURL: stringPtr(profileURL),
		University:      stringPtr(uploaderU),
	}
	return &out, nil
}

func decodeTags(raw []byte, dst *[]string) error {
	*dst = []string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}
	if *dst == nil {
		*dst = []string{}
	}
	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func (noteTable) insert(ctx context.Context, q queryer, n model.Note) error {
	tags, err := encodeTags(n.Tags)
	if err != nil {
		return err
	}
	const query = `
		INSERT INTO notes (id, title, description, subject, course, university, tags, file_name, file_path,
			file_type, file_size, uploader_id, is_public, downloads, likes, rating, rating_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12, $13, 0, 0, 0, 0, $14, $15)
	`
	_, err = q.ExecContext(ctx, query,
		n.ID,
		n.Title,
		nullString(n.Description),
		n.Subject,
		nullString(n.Course),
		nullString(n.University),
		tags,
		n.FileName,
		n.FilePath,
		n.FileType,
		n.FileSize,
		n.UploaderID,
		n.IsPublic,
		n.CreatedAt,
		n.UpdatedAt,
	)
	return classify("insert note", err)
}

func (noteTable) byID(ctx context.Context, q queryer, id string) (*model.NoteWithUploader, error) {
	query := noteWithUploaderSelect + ` WHERE n.id = $1`
	n, err := scanNoteWithUploader(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("note", id)
	}
	if err != nil {
		return nil, classify("select note", err)
	}
	return n, nil
}

func (noteTable) exists(ctx context.Context, q queryer, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM notes WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("note", id)
	}
	return classify("check note", err)
}

// listQuery renders the public catalog query for f, which must already be normalized.
func listQuery(f model.NoteFilter) (string, []any) {
	var (
		where = []string{"n.is_public = true"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if f.Subject != "" {
		where = append(where, "n.subject = "+arg(f.Subject))
	}
	if f.Search != "" {
		p := arg(strings.ToLower(f.Search))
		where = append(where, "(strpos(lower(n.title), "+p+") > 0"+
			" OR strpos(lower(coalesce(n.description, '')), "+p+") > 0"+
			" OR strpos(lower(coalesce(n.course, '')), "+p+") > 0"+
			" OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(n.tags) AS t(tag) WHERE strpos(lower(t.tag), "+p+") > 0))")
	}
	query := noteWithUploaderSelect +
		" WHERE " + strings.Join(where, " AND ") +
		noteOrder +
		" LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)
	return query, args
}

func (noteTable) list(ctx context.Context, q queryer, query string, args ...any) ([]model.NoteWithUploader, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("select notes", err)
	}
	defer rows.Close()

	items := make([]model.NoteWithUploader, 0)
	for rows.Next() {
		n, err := scanNoteWithUploader(rows)
		if err != nil {
			return nil, classify("scan note", err)
		}
		items = append(items, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterate notes", err)
	}
	return items, nil
}

// bump applies an atomic delta to one counter column. It reports whether the note exists.
func (noteTable) bump(ctx context.Context, q queryer, id, column string, delta int) (bool, error) {
	query := fmt.Sprintf(`UPDATE notes SET %[1]s = %[1]s + $2 WHERE id = $1`, column)
	res, err := q.ExecContext(ctx, query, id, delta)
	if err != nil {
		return false, classify("update "+column, err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

func (noteTable) setRating(ctx context.Context, q queryer, id string, rating int) error {
	_, err := q.ExecContext(ctx, `UPDATE notes SET rating = $2 WHERE id = $1`, id, rating)
	return classify("update rating", err)
}

func (noteTable) delete(ctx context.Context, q queryer, id string) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return false, classify("delete note", err)
	}
	n, err := rowsAffected(res)
	return n > 0, err
}

// CreateNote stores a new note with zeroed counters and returns it.
func (r *Repository) CreateNote(ctx context.Context, in model.NewNote) (*model.Note, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	n := in.Build(r.newID(), r.timestamp())
	if err := r.notes.insert(ctx, db, n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GetNotes returns one page of the public catalog, newest first.
func (r *Repository) GetNotes(ctx context.Context, f model.NoteFilter) ([]model.NoteWithUploader, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	query, args := listQuery(f.Normalize())
	return r.notes.list(ctx, db, query, args...)
}

// GetNoteByID returns the note with its uploader. A non-empty userID also resolves the caller's like and rating.
func (r *Repository) GetNoteByID(ctx context.Context, id, userID string) (*model.NoteWithUploader, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	n, err := r.notes.byID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return n, nil
	}
	liked, err := r.likes.exists(ctx, db, id, userID)
	if err != nil {
		return nil, err
	}
	n.IsLiked = &liked
	if n.UserRating, err = r.ratings.get(ctx, db, id, userID); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *Repository) UpdateNoteDownloads(ctx context.Context, id string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	ok, err := r.notes.bump(ctx, db, id, "downloads", 1)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("note", id)
	}
	return nil
}

// GetUserNotes lists every note uploaded by userID, public or not, newest first.
func (r *Repository) GetUserNotes(ctx context.Context, userID string) ([]model.NoteWithUploader, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := r.users.byID(ctx, db, userID); err != nil {
		return nil, err
	}
	query := noteWithUploaderSelect + ` WHERE n.uploader_id = $1` + noteOrder
	return r.notes.list(ctx, db, query, userID)
}

// DeleteNote removes the note; its likes and ratings go with it through ON DELETE CASCADE.
func (r *Repository) DeleteNote(ctx context.Context, id string) error {
	db, err := r.db(ctx)
	if err != nil {
		return err
	}
	ok, err := r.notes.delete(ctx, db, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("note", id)
	}
	return nil
}
