package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"

	"certshare/internal/model"
)

// CertificateRepository defines data access for certificates using SQL queries only.
// No business logic here — strictly persistence operations.
type CertificateRepository interface {
	// Create inserts a new certificate record and returns the stored row
	// (may include values set by the DB, e.g. created_at).
	Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error)

	// FindByID returns a certificate by its ID regardless of visibility.
	// Used by owner-scoped paths only.
	FindByID(ctx context.Context, id string) (*model.Certificate, error)

	// FindPublicByID returns a certificate only when is_public is true.
	// A private row and a nonexistent row both surface as sql.ErrNoRows so
	// the two cases stay indistinguishable to callers.
	FindPublicByID(ctx context.Context, id string) (*model.Certificate, error)

	// ListPublicWithOwner returns every public certificate joined with its
	// owning profile, ordered by creation time descending.
	ListPublicWithOwner(ctx context.Context) ([]model.CertificateWithOwner, error)

	// ListByUser returns all certificates of a user, public and private.
	ListByUser(ctx context.Context, userID string) ([]model.Certificate, error)

	// ListPublicByUser returns only the public certificates of a user.
	ListPublicByUser(ctx context.Context, userID string) ([]model.Certificate, error)

	// UpdateViews writes an absolute views value. The caller computes
	// read-value+1; this is deliberately not an atomic increment.
	UpdateViews(ctx context.Context, id string, views int64) error

	// UpdateDetails sets the only mutable metadata fields (description,
	// is_public) on a row owned by userID. Returns sql.ErrNoRows when the
	// row does not exist or belongs to someone else.
	UpdateDetails(ctx context.Context, id, userID, description string, isPublic bool) (*model.Certificate, error)
}
