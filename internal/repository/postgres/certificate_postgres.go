package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"certshare/internal/model"
	"certshare/internal/repository"
)

// CertificatePostgres is a PostgreSQL implementation of repository.CertificateRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CertificatePostgres struct {
	db *sql.DB
}

// NewCertificatePostgres creates a new CertificatePostgres repository.
func NewCertificatePostgres(db *sql.DB) *CertificatePostgres {
	return &CertificatePostgres{db: db}
}

var _ repository.CertificateRepository = (*CertificatePostgres)(nil)

const certificateColumns = `id, user_id, title, issuer, issue_date, description, file_url, file_type, storage_key, views, is_public, created_at`

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanCertificate(row interface{ Scan(...any) error }) (*model.Certificate, error) {
	var c model.Certificate
	var desc sql.NullString
	if err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Title,
		&c.Issuer,
		&c.IssueDate,
		&desc,
		&c.FileURL,
		&c.FileType,
		&c.StorageKey,
		&c.Views,
		&c.IsPublic,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	c.Description = desc.String
	return &c, nil
}

// Create inserts a new certificate row and returns the stored record.
func (r *CertificatePostgres) Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	const q = `
		INSERT INTO certificates (id, user_id, title, issuer, issue_date, description, file_url, file_type, storage_key, views, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + certificateColumns
	row := r.db.QueryRowContext(ctx, q,
		cert.ID,
		cert.UserID,
		cert.Title,
		cert.Issuer,
		cert.IssueDate,
		nullString(cert.Description),
		cert.FileURL,
		cert.FileType,
		cert.StorageKey,
		cert.Views,
		cert.IsPublic,
		cert.CreatedAt,
	)
	return scanCertificate(row)
}

// FindByID fetches a single certificate by its ID regardless of visibility.
func (r *CertificatePostgres) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	const q = `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1`
	return scanCertificate(r.db.QueryRowContext(ctx, q, id))
}

// FindPublicByID fetches a certificate only when it is public. Private and
// nonexistent ids take the same code path and both return sql.ErrNoRows.
func (r *CertificatePostgres) FindPublicByID(ctx context.Context, id string) (*model.Certificate, error) {
	const q = `SELECT ` + certificateColumns + ` FROM certificates WHERE id = $1 AND is_public = true`
	return scanCertificate(r.db.QueryRowContext(ctx, q, id))
}

// ListPublicWithOwner returns the full public set joined with owner profiles,
// newest first. The discovery feed filters in-process; no pagination here.
func (r *CertificatePostgres) ListPublicWithOwner(ctx context.Context) ([]model.CertificateWithOwner, error) {
	const q = `
		SELECT c.id, c.user_id, c.title, c.issuer, c.issue_date, c.description, c.file_url, c.file_type, c.storage_key, c.views, c.is_public, c.created_at,
		       p.username, p.display_name, p.avatar_url
		FROM certificates c
		JOIN profiles p ON p.id = c.user_id
		WHERE c.is_public = true
		ORDER BY c.created_at DESC, c.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CertificateWithOwner, 0)
	for rows.Next() {
		var item model.CertificateWithOwner
		var desc, avatar sql.NullString
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Issuer,
			&item.IssueDate,
			&desc,
			&item.FileURL,
			&item.FileType,
			&item.StorageKey,
			&item.Views,
			&item.IsPublic,
			&item.CreatedAt,
			&item.Owner.Username,
			&item.Owner.DisplayName,
			&avatar,
		); err != nil {
			return nil, err
		}
		item.Description = desc.String
		item.Owner.AvatarURL = avatar.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ListByUser returns all certificates of a user, public and private.
func (r *CertificatePostgres) ListByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	const q = `SELECT ` + certificateColumns + ` FROM certificates WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, userID)
}

// ListPublicByUser returns only the public certificates of a user.
func (r *CertificatePostgres) ListPublicByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	const q = `SELECT ` + certificateColumns + ` FROM certificates WHERE user_id = $1 AND is_public = true ORDER BY created_at DESC, id DESC`
	return r.list(ctx, q, userID)
}

func (r *CertificatePostgres) list(ctx context.Context, q string, args ...any) ([]model.Certificate, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Certificate, 0)
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateViews writes an absolute views value computed by the caller. This is
// a generic UPDATE, not an atomic increment; concurrent viewers can lose
// updates, which is accepted for this advisory counter.
func (r *CertificatePostgres) UpdateViews(ctx context.Context, id string, views int64) error {
	const q = `UPDATE certificates SET views = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, views)
	return err
}

// UpdateDetails sets description and is_public on a row owned by userID.
func (r *CertificatePostgres) UpdateDetails(ctx context.Context, id, userID, description string, isPublic bool) (*model.Certificate, error) {
	const q = `
		UPDATE certificates
		SET description = $3, is_public = $4
		WHERE id = $1 AND user_id = $2
		RETURNING ` + certificateColumns
	row := r.db.QueryRowContext(ctx, q, id, userID, nullString(description), isPublic)
	return scanCertificate(row)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
