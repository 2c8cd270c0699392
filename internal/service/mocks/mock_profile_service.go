package mocks

import (
	"context"

	"certshare/internal/model"
	"certshare/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) CreateOwn(ctx context.Context, userID, username, displayName, bio, avatarURL string) (*model.Profile, error) {
	args := m.Called(ctx, userID, username, displayName, bio, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateOwn(ctx context.Context, userID, displayName, bio, avatarURL string) (*model.Profile, error) {
	args := m.Called(ctx, userID, displayName, bio, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) GetPublic(ctx context.Context, username string) (*service.PublicProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublicProfile), args.Error(1)
}
