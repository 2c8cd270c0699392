package mocks

import (
	"context"

	"certshare/internal/model"
	"certshare/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCertificateService struct {
	mock.Mock
}

func (m *MockCertificateService) ValidateFile(f service.FileUpload) error {
	args := m.Called(f)
	return args.Error(0)
}

func (m *MockCertificateService) Upload(ctx context.Context, userID string, meta service.CertificateMeta, f service.FileUpload) (*service.UploadOutcome, error) {
	args := m.Called(ctx, userID, meta, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadOutcome), args.Error(1)
}

func (m *MockCertificateService) UploadBatch(ctx context.Context, userID string, meta service.CertificateMeta, files []service.FileUpload) (*service.BatchResult, error) {
	args := m.Called(ctx, userID, meta, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

func (m *MockCertificateService) Explore(ctx context.Context, query string) ([]model.CertificateWithOwner, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CertificateWithOwner), args.Error(1)
}

func (m *MockCertificateService) GetPublic(ctx context.Context, id string) (*service.CertificateDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CertificateDetail), args.Error(1)
}

func (m *MockCertificateService) ListOwn(ctx context.Context, userID string) ([]model.Certificate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Certificate), args.Error(1)
}

func (m *MockCertificateService) DownloadURL(ctx context.Context, userID, id string) (string, error) {
	args := m.Called(ctx, userID, id)
	return args.String(0), args.Error(1)
}

func (m *MockCertificateService) UpdateOwn(ctx context.Context, userID, id, description string, isPublic bool) (*model.Certificate, error) {
	args := m.Called(ctx, userID, id, description, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Certificate), args.Error(1)
}
