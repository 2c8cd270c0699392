package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"certshare/internal/model"
	"certshare/internal/repository"
	"certshare/internal/storage"
)

var (
	ErrIDRequired          = errors.New("id is required")
	ErrNotFound            = errors.New("certificate not found")
	ErrReaderNil           = errors.New("reader is nil")
	ErrAuthRequired        = errors.New("authentication required")
	ErrMissingInformation  = errors.New("title, issuer and issue date are required")
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("file type is not allowed")
)

// FileUpload is one candidate file entering the validation gate.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// CertificateMeta is the shared metadata form accompanying an upload.
type CertificateMeta struct {
	Title       string
	Issuer      string
	IssueDate   time.Time
	Description string
	IsPublic    bool
}

// UploadStatus classifies how an upload attempt ended with respect to the
// two-system write (object storage, then metadata row).
type UploadStatus int

const (
	// UploadSucceeded: both writes landed.
	UploadSucceeded UploadStatus = iota
	// UploadCompensated: metadata write failed and the compensating delete
	// removed the just-written object.
	UploadCompensated
	// UploadOrphaned: metadata write failed and the compensating delete
	// failed too; the object is orphaned in storage.
	UploadOrphaned
)

// UploadOutcome is the typed result of the storage-then-metadata saga.
// Certificate is set only when Status is UploadSucceeded.
type UploadOutcome struct {
	Status      UploadStatus
	Certificate *model.Certificate
	StorageKey  string
}

// RejectedFile records a batch member that failed the validation gate.
type RejectedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchResult collects the ids created before a batch completed or aborted,
// plus the per-file gate rejections.
type BatchResult struct {
	CreatedIDs []string       `json:"created_ids"`
	Rejected   []RejectedFile `json:"rejected,omitempty"`
}

// CertificateDetail is a public certificate together with its owner profile.
// Owner is nil when the owning profile could not be loaded; the view degrades
// to an ownerless display instead of failing.
type CertificateDetail struct {
	Certificate *model.Certificate `json:"certificate"`
	Owner       *model.Profile     `json:"owner,omitempty"`
}

// CertificateService defines the certificate use cases.
type CertificateService interface {
	// ValidateFile runs the validation gate on a single candidate without
	// touching storage. Returns ErrUnsupportedFileType or ErrFileTooLarge.
	ValidateFile(f FileUpload) error

	// Upload runs the full pipeline for one validated file: storage write,
	// public URL resolution, metadata insert, compensating delete on
	// metadata failure. A non-nil outcome accompanies an error when the
	// saga got far enough to leave state worth reporting.
	Upload(ctx context.Context, userID string, meta CertificateMeta, f FileUpload) (*UploadOutcome, error)

	// UploadBatch repeats the pipeline per file, sharing one metadata form.
	// Gate rejections are per-file and non-aborting; the first pipeline
	// error aborts the remainder. Ids created before the abort are returned
	// alongside the error.
	UploadBatch(ctx context.Context, userID string, meta CertificateMeta, files []FileUpload) (*BatchResult, error)

	// Explore returns the public feed, newest first, narrowed by query.
	Explore(ctx context.Context, query string) ([]model.CertificateWithOwner, error)

	// GetPublic returns a public certificate with its owner and bumps the
	// view counter fire-and-forget. Private and nonexistent ids are both
	// ErrNotFound.
	GetPublic(ctx context.Context, id string) (*CertificateDetail, error)

	// ListOwn returns all certificates of the authenticated user.
	ListOwn(ctx context.Context, userID string) ([]model.Certificate, error)

	// UpdateOwn updates description/visibility on a certificate owned by
	// userID. A foreign or unknown id is ErrNotFound.
	UpdateOwn(ctx context.Context, userID, id, description string, isPublic bool) (*model.Certificate, error)

	// DownloadURL resolves a URL the caller may fetch the file from. Public
	// certificates use the permanent public URL; private ones are presigned
	// for the owner and ErrNotFound for everyone else.
	DownloadURL(ctx context.Context, userID, id string) (string, error)
}

// certificateService is a concrete implementation of CertificateService.
type certificateService struct {
	store        storage.Storage
	certs        repository.CertificateRepository
	profiles     repository.ProfileRepository
	maxFileSize  int64
	allowedTypes map[string]bool
}

// NewCertificateService constructs a new CertificateService.
func NewCertificateService(store storage.Storage, certs repository.CertificateRepository, profiles repository.ProfileRepository, maxFileSize int64, allowedTypes []string) CertificateService {
	allowed := make(map[string]bool, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.TrimSpace(t)] = true
	}
	return &certificateService{
		store:        store,
		certs:        certs,
		profiles:     profiles,
		maxFileSize:  maxFileSize,
		allowedTypes: allowed,
	}
}

// ValidateFile accepts a candidate only when its declared MIME type is on the
// allow-list and its size is within the ceiling. The two rejections stay
// distinct so the caller can tell "wrong type" from "too large".
func (s *certificateService) ValidateFile(f FileUpload) error {
	if !s.allowedTypes[f.ContentType] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, f.ContentType)
	}
	if s.maxFileSize > 0 && f.Size > s.maxFileSize {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, f.Size, s.maxFileSize)
	}
	return nil
}

func (s *certificateService) Upload(ctx context.Context, userID string, meta CertificateMeta, f FileUpload) (*UploadOutcome, error) {
	// All preconditions are checked before any write happens.
	if userID == "" {
		return nil, ErrAuthRequired
	}
	title := strings.TrimSpace(meta.Title)
	issuer := strings.TrimSpace(meta.Issuer)
	if title == "" || issuer == "" || meta.IssueDate.IsZero() {
		return nil, ErrMissingInformation
	}
	if f.Reader == nil {
		return nil, ErrReaderNil
	}
	if err := s.ValidateFile(f); err != nil {
		return nil, err
	}

	// Storage key namespaced under the owner with a collision-resistant
	// suffix, keeping the original extension.
	ext := filepath.Ext(f.Filename)
	key := fmt.Sprintf("%s/%d-%s%s", userID, time.Now().UnixMilli(), uuid.NewString(), ext)

	if _, err := s.store.Put(ctx, key, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata: map[string]string{
			"original-filename": f.Filename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	cert := &model.Certificate{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Issuer:      issuer,
		IssueDate:   meta.IssueDate,
		Description: strings.TrimSpace(meta.Description),
		FileURL:     s.store.PublicURL(key),
		FileType:    f.ContentType,
		StorageKey:  key,
		Views:       0,
		IsPublic:    meta.IsPublic,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.certs.Create(ctx, cert)
	if err != nil {
		// Compensating delete: best-effort rollback of the storage write.
		// Its own failure is logged, never surfaced to the actor.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			logCompensationFailure(key, delErr)
			return &UploadOutcome{Status: UploadOrphaned, StorageKey: key},
				fmt.Errorf("save certificate: %w", err)
		}
		return &UploadOutcome{Status: UploadCompensated, StorageKey: key},
			fmt.Errorf("save certificate: %w", err)
	}
	return &UploadOutcome{Status: UploadSucceeded, Certificate: stored, StorageKey: key}, nil
}

func (s *certificateService) UploadBatch(ctx context.Context, userID string, meta CertificateMeta, files []FileUpload) (*BatchResult, error) {
	res := &BatchResult{CreatedIDs: make([]string, 0, len(files))}
	for _, f := range files {
		// Gate rejections never discard valid siblings.
		if err := s.ValidateFile(f); err != nil {
			res.Rejected = append(res.Rejected, RejectedFile{Filename: f.Filename, Reason: err.Error()})
			continue
		}
		out, err := s.Upload(ctx, userID, meta, f)
		if err != nil {
			// Pipeline failure aborts the remainder of the batch.
			return res, err
		}
		res.CreatedIDs = append(res.CreatedIDs, out.Certificate.ID)
	}
	return res, nil
}

// Explore fetches the full public set and narrows it in-process: the query
// must be a case-insensitive substring of title, issuer, owner username or
// owner display name.
func (s *certificateService) Explore(ctx context.Context, query string) ([]model.CertificateWithOwner, error) {
	items, err := s.certs.ListPublicWithOwner(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items, nil
	}
	filtered := make([]model.CertificateWithOwner, 0, len(items))
	for _, item := range items {
		if matchesQuery(item, q) {
			filtered = append(filtered, item)
		}
	}
	return filtered, nil
}

func matchesQuery(item model.CertificateWithOwner, q string) bool {
	return strings.Contains(strings.ToLower(item.Title), q) ||
		strings.Contains(strings.ToLower(item.Issuer), q) ||
		strings.Contains(strings.ToLower(item.Owner.Username), q) ||
		strings.Contains(strings.ToLower(item.Owner.DisplayName), q)
}

func (s *certificateService) GetPublic(ctx context.Context, id string) (*CertificateDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	cert, err := s.certs.FindPublicByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Missing owner degrades to an ownerless display.
	owner, err := s.profiles.FindByID(ctx, cert.UserID)
	if err != nil {
		owner = nil
	}

	// Fire-and-forget increment using the value read at fetch time. This is
	// a read-modify-write with no concurrency control; concurrent viewers
	// can lose updates. The counter is advisory, not authoritative.
	if err := s.certs.UpdateViews(ctx, cert.ID, cert.Views+1); err != nil {
		logViewUpdateFailure(cert.ID, err)
	}

	return &CertificateDetail{Certificate: cert, Owner: owner}, nil
}

func (s *certificateService) ListOwn(ctx context.Context, userID string) ([]model.Certificate, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.certs.ListByUser(ctx, userID)
}

func (s *certificateService) UpdateOwn(ctx context.Context, userID, id, description string, isPublic bool) (*model.Certificate, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if id == "" {
		return nil, ErrIDRequired
	}
	cert, err := s.certs.UpdateDetails(ctx, id, userID, strings.TrimSpace(description), isPublic)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Foreign ownership and absence are indistinguishable.
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cert, nil
}

// downloadExpiry bounds how long a presigned private-file URL stays valid.
const downloadExpiry = 15 * time.Minute

func (s *certificateService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	cert, err := s.certs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	if cert.IsPublic {
		return cert.FileURL, nil
	}
	// Private files are only reachable by their owner, and only through a
	// short-lived presigned URL.
	if userID == "" || cert.UserID != userID {
		return "", ErrNotFound
	}
	return s.store.PresignGet(ctx, cert.StorageKey, downloadExpiry)
}

func logCompensationFailure(key string, err error) {
	entry := map[string]any{
		"ts":          time.Now().UTC().Format(time.RFC3339Nano),
		"level":       "error",
		"msg":         "compensating_delete_failed",
		"storage_key": key,
		"error":       err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}

func logViewUpdateFailure(id string, err error) {
	entry := map[string]any{
		"ts":             time.Now().UTC().Format(time.RFC3339Nano),
		"level":          "warn",
		"msg":            "view_count_update_failed",
		"certificate_id": id,
		"error":          err.Error(),
	}
	if b, mErr := json.Marshal(entry); mErr == nil {
		log.SetFlags(0)
		log.Println(string(b))
	}
}
