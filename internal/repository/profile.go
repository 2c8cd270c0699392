package repository

import (
	"context"
	"errors"

	"certshare/internal/model"
)

// ErrDuplicateUsername is returned by Create when the username unique
// constraint rejects the row.
var ErrDuplicateUsername = errors.New("username already exists")

// ProfileRepository defines data access for profiles.
type ProfileRepository interface {
	// Create inserts a new profile row. Username uniqueness is enforced by
	// the database; a violation is returned as ErrDuplicateUsername.
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)

	// FindByID returns a profile by its ID (the authenticated subject).
	FindByID(ctx context.Context, id string) (*model.Profile, error)

	// FindByUsername returns a profile by its unique username.
	FindByUsername(ctx context.Context, username string) (*model.Profile, error)

	// Update writes the mutable profile fields (display_name, bio,
	// avatar_url). Username is immutable and never updated.
	Update(ctx context.Context, p *model.Profile) (*model.Profile, error)
}
