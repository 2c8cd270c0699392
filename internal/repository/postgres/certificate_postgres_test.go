package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"certshare/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var certCols = []string{"id", "user_id", "title", "issuer", "issue_date", "description", "file_url", "file_type", "storage_key", "views", "is_public", "created_at"}

func certRow(id string) *sqlmock.Rows {
	return sqlmock.NewRows(certCols).
		AddRow(id, "user-1", "AWS Certified Solutions Architect", "Amazon Web Services",
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), nil,
			"http://minio/certificates/user-1/1.pdf", "application/pdf", "user-1/1.pdf",
			int64(0), true, time.Now().UTC())
}

func TestCertificatePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	cert := &model.Certificate{
		ID:         "cert-1",
		UserID:     "user-1",
		Title:      "AWS Certified Solutions Architect",
		Issuer:     "Amazon Web Services",
		IssueDate:  time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		FileURL:    "http://minio/certificates/user-1/1.pdf",
		FileType:   "application/pdf",
		StorageKey: "user-1/1.pdf",
		IsPublic:   true,
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO certificates").
		WithArgs(cert.ID, cert.UserID, cert.Title, cert.Issuer, cert.IssueDate,
			sql.NullString{}, cert.FileURL, cert.FileType, cert.StorageKey,
			cert.Views, cert.IsPublic, cert.CreatedAt).
		WillReturnRows(certRow("cert-1"))

	result, err := repo.Create(ctx, cert)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "cert-1", result.ID)
	assert.Equal(t, int64(0), result.Views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificatePostgres_FindPublicByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM certificates WHERE id = \\$1 AND is_public = true").
			WithArgs("cert-1").
			WillReturnRows(certRow("cert-1"))

		cert, err := repo.FindPublicByID(ctx, "cert-1")

		assert.NoError(t, err)
		assert.Equal(t, "cert-1", cert.ID)
		assert.True(t, cert.IsPublic)
	})

	// Private and nonexistent rows are the same outcome: no rows.
	t.Run("private or missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM certificates WHERE id = \\$1 AND is_public = true").
			WithArgs("private-cert").
			WillReturnRows(sqlmock.NewRows(certCols))

		cert, err := repo.FindPublicByID(ctx, "private-cert")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, cert)
	})
}

func TestCertificatePostgres_ListPublicWithOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	cols := append(append([]string{}, certCols...), "username", "display_name", "avatar_url")
	rows := sqlmock.NewRows(cols).
		AddRow("cert-1", "user-1", "CKA", "CNCF", time.Now(), "k8s admin",
			"http://minio/certificates/user-1/2.pdf", "application/pdf", "user-1/2.pdf",
			int64(12), true, time.Now(), "johndoe", "John Doe", nil)

	mock.ExpectQuery("SELECT (.+) FROM certificates c JOIN profiles p ON").
		WillReturnRows(rows)

	items, err := repo.ListPublicWithOwner(ctx)

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "johndoe", items[0].Owner.Username)
	assert.Equal(t, "John Doe", items[0].Owner.DisplayName)
	assert.Empty(t, items[0].Owner.AvatarURL)
}

func TestCertificatePostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM certificates WHERE user_id = \\$1 ORDER BY").
		WithArgs("user-1").
		WillReturnRows(certRow("cert-1"))

	items, err := repo.ListByUser(ctx, "user-1")

	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCertificatePostgres_UpdateViews(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE certificates SET views = \\$2 WHERE id = \\$1").
		WithArgs("cert-1", int64(13)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdateViews(ctx, "cert-1", 13)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificatePostgres_UpdateDetails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewCertificatePostgres(db)
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		mock.ExpectQuery("UPDATE certificates").
			WithArgs("cert-1", "user-1", sql.NullString{String: "updated", Valid: true}, false).
			WillReturnRows(certRow("cert-1"))

		cert, err := repo.UpdateDetails(ctx, "cert-1", "user-1", "updated", false)

		assert.NoError(t, err)
		assert.Equal(t, "cert-1", cert.ID)
	})

	t.Run("not owner", func(t *testing.T) {
		mock.ExpectQuery("UPDATE certificates").
			WithArgs("cert-1", "someone-else", sql.NullString{String: "updated", Valid: true}, false).
			WillReturnRows(sqlmock.NewRows(certCols))

		cert, err := repo.UpdateDetails(ctx, "cert-1", "someone-else", "updated", false)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, cert)
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
	assert.False(t, IsUniqueViolation(nil))
}
