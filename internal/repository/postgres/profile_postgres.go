package postgres

import (
	"context"
	"database/sql"

	"certshare/internal/model"
	"certshare/internal/repository"
)

// ProfilePostgres is a PostgreSQL implementation of repository.ProfileRepository.
type ProfilePostgres struct {
	db *sql.DB
}

// NewProfilePostgres creates a new ProfilePostgres repository.
func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

const profileColumns = `id, username, display_name, bio, avatar_url, created_at`

func scanProfile(row interface{ Scan(...any) error }) (*model.Profile, error) {
	var p model.Profile
	var bio, avatar sql.NullString
	if err := row.Scan(
		&p.ID,
		&p.Username,
		&p.DisplayName,
		&bio,
		&avatar,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	p.Bio = bio.String
	p.AvatarURL = avatar.String
	return &p, nil
}

// Create inserts a new profile row. A username collision is translated to
// repository.ErrDuplicateUsername.
func (r *ProfilePostgres) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		INSERT INTO profiles (id, username, display_name, bio, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Username,
		p.DisplayName,
		nullString(p.Bio),
		nullString(p.AvatarURL),
		p.CreatedAt,
	)
	stored, err := scanProfile(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, repository.ErrDuplicateUsername
		}
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a profile by its ID.
func (r *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, id))
}

// FindByUsername fetches a profile by its unique username.
func (r *ProfilePostgres) FindByUsername(ctx context.Context, username string) (*model.Profile, error) {
	const q = `SELECT ` + profileColumns + ` FROM profiles WHERE username = $1`
	return scanProfile(r.db.QueryRowContext(ctx, q, username))
}

// Update writes the mutable fields only; username is never touched.
func (r *ProfilePostgres) Update(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	const q = `
		UPDATE profiles
		SET display_name = $2, bio = $3, avatar_url = $4
		WHERE id = $1
		RETURNING ` + profileColumns
	row := r.db.QueryRowContext(ctx, q,
		p.ID,
		p.DisplayName,
		nullString(p.Bio),
		nullString(p.AvatarURL),
	)
	return scanProfile(row)
}
