package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"notehub/internal/model"
	"notehub/internal/repository"
)

const userColumns = `id, email, password, first_name, last_name, profile_image_url, university, is_verified, created_at, updated_at`

// userTable owns the SQL for the users table.
type userTable struct{}

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var (
		u          model.User
		profileURL sql.NullString
		university sql.NullString
	)
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&profileURL,
		&university,
		&u.IsVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.ProfileImageURL = stringPtr(profileURL)
	u.University = stringPtr(university)
	return &u, nil
}

func (userTable) byID(ctx context.Context, q queryer, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, classify("select user", err)
	}
	return u, nil
}

func (userTable) exists(ctx context.Context, q queryer, id string) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound("user", id)
	}
	return classify("check user", err)
}

// byEmail returns (nil, nil) when no user has the address.
func (userTable) byEmail(ctx context.Context, q queryer, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(q.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify("select user by email", err)
	}
	return u, nil
}

func (userTable) insert(ctx context.Context, q queryer, u model.User) (*model.User, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + userColumns
	out, err := scanUser(q.QueryRowContext(ctx, query,
		u.ID,
		u.Email,
		u.Password,
		u.FirstName,
		u.LastName,
		nullString(u.ProfileImageURL),
		nullString(u.University),
		u.IsVerified,
		u.CreatedAt,
		u.UpdatedAt,
	))
	if err != nil {
		return nil, classify("insert user", err)
	}
	return out, nil
}

// upsert writes u in full, creating the row or replacing every mutable column.
func (userTable) upsert(ctx context.Context, q queryer, u model.User) (*model.User, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			university = EXCLUDED.university,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns
	out, err := scanUser(q.QueryRowContext(ctx, query,
		u.ID,
		u.Email,
		u.Password,
		u.FirstName,
		u.LastName,
		nullString(u.ProfileImageURL),
		nullString(u.University),
		u.IsVerified,
		u.CreatedAt,
		u.UpdatedAt,
	))
	if err != nil {
		return nil, classify("upsert user", err)
	}
	return out, nil
}

func (r *Repository) GetUser(ctx context.Context, id string) (*model.User, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	return r.users.byID(ctx, db, id)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	return r.users.byEmail(ctx, db, email)
}

// CreateUser inserts a new account. Duplicate ids or emails fail with repository.ErrConflict.
func (r *Repository) CreateUser(ctx context.Context, in model.NewUser) (*model.User, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	now := r.timestamp()
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
	return r.users.insert(ctx, db, u)
}

// UpsertUser merges the supplied fields onto the stored user, creating it when absent.
func (r *Repository) UpsertUser(ctx context.Context, in model.UserUpsert) (*model.User, error) {
	db, err := r.db(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := r.users.byID(ctx, db, in.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing == nil && in.Email == nil {
		return nil, fmt.Errorf("creating user %q without email: %w", in.ID, repository.ErrInvalidInput)
	}
	merged := in.Apply(existing, r.timestamp())
	return r.users.upsert(ctx, db, merged)
}
