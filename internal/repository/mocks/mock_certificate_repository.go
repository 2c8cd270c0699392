package mocks

import (
	"context"

	"certshare/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockCertificateRepository struct {
	mock.Mock
}

func (m *MockCertificateRepository) Create(ctx context.Context, cert *model.Certificate) (*model.Certificate, error) {
	args := m.Called(ctx, cert)
	if f, ok := args.Get(0).(func(context.Context, *model.Certificate) *model.Certificate); ok {
		return f(ctx, cert), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindByID(ctx context.Context, id string) (*model.Certificate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) FindPublicByID(ctx context.Context, id string) (*model.Certificate, error) {
	args := m.Called(ctx, id)
	if f, ok := args.Get(0).(func(context.Context, string) *model.Certificate); ok {
		return f(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListPublicWithOwner(ctx context.Context) ([]model.CertificateWithOwner, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CertificateWithOwner), args.Error(1)
}

func (m *MockCertificateRepository) ListByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) ListPublicByUser(ctx context.Context, userID string) ([]model.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateRepository) UpdateViews(ctx context.Context, id string, views int64) error {
	args := m.Called(ctx, id, views)
	return args.Error(0)
}

func (m *MockCertificateRepository) UpdateDetails(ctx context.Context, id, userID, description string, isPublic bool) (*model.Certificate, error) {
	args := m.Called(ctx, id, userID, description, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}
