package model

import "time"

// Certificate pairs an uploaded file with its issuer/date/title metadata and
// a visibility flag. This is a pure domain model with no database-specific
// dependencies or tags; it can be used across layers (HTTP, service, storage)
// without coupling to persistence.
//
// FileURL is set once at creation and never changes. Views only increases.
// IsPublic gates every unauthenticated read path.
type Certificate struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Issuer      string    `json:"issuer"`
	IssueDate   time.Time `json:"issue_date"`
	Description string    `json:"description,omitempty"`
	FileURL     string    `json:"file_url"`
	FileType    string    `json:"file_type"`
	StorageKey  string    `json:"-"`
	Views       int64     `json:"views"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

// CertificateWithOwner is a certificate joined with the public identity of
// its owning profile, as served by the discovery feed.
type CertificateWithOwner struct {
	Certificate
	Owner Owner `json:"owner"`
}

// Owner is the subset of a profile embedded in joined reads.
type Owner struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
