package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"certshare/internal/model"
	"certshare/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username is already taken")
	ErrMissingUsername = errors.New("username is required")
)

// PublicProfile is a profile together with its public certificates only.
type PublicProfile struct {
	Profile      *model.Profile      `json:"profile"`
	Certificates []model.Certificate `json:"certificates"`
}

// ProfileService defines the profile use cases.
type ProfileService interface {
	// GetOwn returns the authenticated user's profile.
	GetOwn(ctx context.Context, userID string) (*model.Profile, error)

	// CreateOwn creates the profile for a first-time user. Username is
	// immutable after this call; a collision is ErrUsernameTaken.
	CreateOwn(ctx context.Context, userID, username, displayName, bio, avatarURL string) (*model.Profile, error)

	// UpdateOwn updates display name, bio and avatar; never the username.
	UpdateOwn(ctx context.Context, userID, displayName, bio, avatarURL string) (*model.Profile, error)

	// GetPublic returns a profile by username with its public certificates.
	GetPublic(ctx context.Context, username string) (*PublicProfile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
	certs    repository.CertificateRepository
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(profiles repository.ProfileRepository, certs repository.CertificateRepository) ProfileService {
	return &profileService{profiles: profiles, certs: certs}
}

func (s *profileService) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	p, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *profileService) CreateOwn(ctx context.Context, userID, username, displayName, bio, avatarURL string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrMissingUsername
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}
	p := &model.Profile{
		ID:          userID,
		Username:    username,
		DisplayName: displayName,
		Bio:         strings.TrimSpace(bio),
		AvatarURL:   strings.TrimSpace(avatarURL),
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.profiles.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return stored, nil
}

func (s *profileService) UpdateOwn(ctx context.Context, userID, displayName, bio, avatarURL string) (*model.Profile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, ErrMissingInformation
	}
	p := &model.Profile{
		ID:          userID,
		DisplayName: displayName,
		Bio:         strings.TrimSpace(bio),
		AvatarURL:   strings.TrimSpace(avatarURL),
	}
	updated, err := s.profiles.Update(ctx, p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *profileService) GetPublic(ctx context.Context, username string) (*PublicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrProfileNotFound
	}
	p, err := s.profiles.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	certs, err := s.certs.ListPublicByUser(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{Profile: p, Certificates: certs}, nil
}
