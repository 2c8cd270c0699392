package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"certshare/internal/model"
	repoMocks "certshare/internal/repository/mocks"
	"certshare/internal/storage"
	storeMocks "certshare/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testUser    = "11111111-1111-1111-1111-111111111111"
	maxTestSize = int64(10 << 20)
)

var testTypes = []string{"application/pdf", "image/jpeg", "image/png"}

func newTestService(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository, mProfiles *repoMocks.MockProfileRepository) CertificateService {
	return NewCertificateService(mStore, mCerts, mProfiles, maxTestSize, testTypes)
}

func validMeta() CertificateMeta {
	return CertificateMeta{
		Title:     "AWS Certified Solutions Architect",
		Issuer:    "Amazon Web Services",
		IssueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		IsPublic:  true,
	}
}

func TestCertificateService_ValidateFile(t *testing.T) {
	svc := newTestService(nil, nil, nil)

	tests := []struct {
		name    string
		file    FileUpload
		wantErr error
	}{
		{
			name: "pdf within limit",
			file: FileUpload{Filename: "cert.pdf", ContentType: "application/pdf", Size: 2 << 20},
		},
		{
			name: "jpeg at the exact ceiling",
			file: FileUpload{Filename: "cert.jpg", ContentType: "image/jpeg", Size: maxTestSize},
		},
		{
			name:    "too large",
			file:    FileUpload{Filename: "cert.pdf", ContentType: "application/pdf", Size: maxTestSize + 1},
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "wrong type",
			file:    FileUpload{Filename: "cert.gif", ContentType: "image/gif", Size: 100},
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:    "wrong type even when small",
			file:    FileUpload{Filename: "cert.svg", ContentType: "image/svg+xml", Size: 10},
			wantErr: ErrUnsupportedFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidateFile(tt.file)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCertificateService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		userID     string
		meta       CertificateMeta
		file       func() FileUpload
		setupMocks func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository)
		wantErr      error
		wantErrMsg   string
		wantStatus   UploadStatus
		wantNilOut   bool
		wantNoWrites bool
	}{
		{
			name:   "happy path",
			userID: testUser,
			meta:   validMeta(),
			file: func() FileUpload {
				return FileUpload{Filename: "aws.pdf", ContentType: "application/pdf", Size: 11, Reader: strings.NewReader("hello world")}
			},
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {
				mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, testUser+"/") && strings.HasSuffix(key, ".pdf")
				}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
					return opt.ContentType == "application/pdf" && opt.Size == 11
				})).Return(storage.ObjectInfo{Size: 11}, nil)
				mStore.On("PublicURL", mock.Anything).Return("http://minio/certificates/key.pdf")
				mCerts.On("Create", ctx, mock.MatchedBy(func(c *model.Certificate) bool {
					return c.UserID == testUser &&
						c.FileURL == "http://minio/certificates/key.pdf" &&
						c.FileType == "application/pdf" &&
						c.Views == 0 && c.IsPublic
				})).Return(&model.Certificate{ID: "gen-id", Views: 0, IsPublic: true, FileType: "application/pdf"}, nil)
			},
			wantStatus: UploadSucceeded,
		},
		{
			name:       "unauthenticated aborts before any write",
			userID:     "",
			meta:       validMeta(),
			file:       func() FileUpload { return FileUpload{ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {},
			wantErr:      ErrAuthRequired,
			wantNilOut:   true,
			wantNoWrites: true,
		},
		{
			name:   "missing title aborts before any write",
			userID: testUser,
			meta: CertificateMeta{
				Title:     "   ",
				Issuer:    "Amazon Web Services",
				IssueDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			},
			file:       func() FileUpload { return FileUpload{ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {},
			wantErr:      ErrMissingInformation,
			wantNilOut:   true,
			wantNoWrites: true,
		},
		{
			name:       "missing issue date aborts before any write",
			userID:     testUser,
			meta:       CertificateMeta{Title: "CKA", Issuer: "CNCF"},
			file:       func() FileUpload { return FileUpload{ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {},
			wantErr:      ErrMissingInformation,
			wantNilOut:   true,
			wantNoWrites: true,
		},
		{
			name:       "nil reader",
			userID:     testUser,
			meta:       validMeta(),
			file:       func() FileUpload { return FileUpload{ContentType: "application/pdf", Size: 5} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {},
			wantErr:      ErrReaderNil,
			wantNilOut:   true,
			wantNoWrites: true,
		},
		{
			name:       "gate rejection aborts before any write",
			userID:     testUser,
			meta:       validMeta(),
			file:       func() FileUpload { return FileUpload{ContentType: "image/gif", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {},
			wantErr:      ErrUnsupportedFileType,
			wantNilOut:   true,
			wantNoWrites: true,
		},
		{
			name:   "storage error surfaces and aborts",
			userID: testUser,
			meta:   validMeta(),
			file:   func() FileUpload { return FileUpload{Filename: "a.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
			},
			wantErrMsg: "upload to storage: storage fail",
			wantNilOut: true,
		},
		{
			name:   "metadata failure with successful compensation",
			userID: testUser,
			meta:   validMeta(),
			file:   func() FileUpload { return FileUpload{Filename: "a.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mStore.On("PublicURL", mock.Anything).Return("http://minio/certificates/key.pdf")
				mCerts.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantErrMsg: "save certificate: db fail",
			wantStatus: UploadCompensated,
		},
		{
			name:   "metadata failure with failed compensation leaves orphan",
			userID: testUser,
			meta:   validMeta(),
			file:   func() FileUpload { return FileUpload{Filename: "a.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("hello")} },
			setupMocks: func(mStore *storeMocks.MockStorage, mCerts *repoMocks.MockCertificateRepository) {
				mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mStore.On("PublicURL", mock.Anything).Return("http://minio/certificates/key.pdf")
				mCerts.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
				mStore.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
			},
			wantErrMsg: "save certificate: db fail",
			wantStatus: UploadOrphaned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mStore := new(storeMocks.MockStorage)
			mCerts := new(repoMocks.MockCertificateRepository)
			svc := newTestService(mStore, mCerts, nil)

			tt.setupMocks(mStore, mCerts)

			out, err := svc.Upload(ctx, tt.userID, tt.meta, tt.file())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantNilOut {
				assert.Nil(t, out)
			} else if tt.wantErrMsg != "" {
				// Saga left partial state worth reporting; never success.
				assert.NotNil(t, out)
				assert.Equal(t, tt.wantStatus, out.Status)
				assert.Nil(t, out.Certificate)
				assert.NotEmpty(t, out.StorageKey)
			} else {
				assert.NotNil(t, out)
				assert.Equal(t, UploadSucceeded, out.Status)
				assert.NotNil(t, out.Certificate)
			}

			if tt.wantNoWrites {
				// Precondition failures perform zero storage or data-store writes.
				mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				mCerts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			}
			mStore.AssertExpectations(t)
			mCerts.AssertExpectations(t)
		})
	}
}

func TestCertificateService_UploadBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("offending files are rejected without discarding valid siblings", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(mStore, mCerts, nil)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil).Twice()
		mStore.On("PublicURL", mock.Anything).Return("http://minio/certificates/key").Twice()
		ids := []string{"id-1", "id-2"}
		call := 0
		mCerts.On("Create", ctx, mock.Anything).Return(func(_ context.Context, _ *model.Certificate) *model.Certificate {
			c := &model.Certificate{ID: ids[call]}
			call++
			return c
		}, nil).Twice()

		files := []FileUpload{
			{Filename: "ok1.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("aaaaa")},
			{Filename: "bad.gif", ContentType: "image/gif", Size: 5, Reader: strings.NewReader("bbbbb")},
			{Filename: "huge.png", ContentType: "image/png", Size: maxTestSize + 1, Reader: strings.NewReader("ccccc")},
			{Filename: "ok2.png", ContentType: "image/png", Size: 5, Reader: strings.NewReader("ddddd")},
		}

		res, err := svc.UploadBatch(ctx, testUser, validMeta(), files)

		assert.NoError(t, err)
		assert.Equal(t, []string{"id-1", "id-2"}, res.CreatedIDs)
		assert.Len(t, res.Rejected, 2)
		assert.Equal(t, "bad.gif", res.Rejected[0].Filename)
		assert.Contains(t, res.Rejected[0].Reason, "not allowed")
		assert.Equal(t, "huge.png", res.Rejected[1].Filename)
		assert.Contains(t, res.Rejected[1].Reason, "maximum allowed size")
		mStore.AssertExpectations(t)
		mCerts.AssertExpectations(t)
	})

	t.Run("pipeline failure aborts the remainder but keeps created ids", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(mStore, mCerts, nil)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil).Once()
		mStore.On("PublicURL", mock.Anything).Return("http://minio/certificates/key").Once()
		mCerts.On("Create", ctx, mock.Anything).Return(&model.Certificate{ID: "id-1"}, nil).Once()
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, errors.New("storage fail")).Once()

		files := []FileUpload{
			{Filename: "ok.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("aaaaa")},
			{Filename: "boom.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("bbbbb")},
			{Filename: "never.pdf", ContentType: "application/pdf", Size: 5, Reader: strings.NewReader("ccccc")},
		}

		res, err := svc.UploadBatch(ctx, testUser, validMeta(), files)

		assert.Error(t, err)
		assert.Equal(t, []string{"id-1"}, res.CreatedIDs)
		mStore.AssertExpectations(t)
		mCerts.AssertExpectations(t)
	})
}

func TestCertificateService_Explore(t *testing.T) {
	ctx := context.Background()

	feed := []model.CertificateWithOwner{
		{
			Certificate: model.Certificate{ID: "c1", Title: "Solutions Architect", Issuer: "Amazon Web Services"},
			Owner:       model.Owner{Username: "johndoe", DisplayName: "John Doe"},
		},
		{
			Certificate: model.Certificate{ID: "c2", Title: "CKA", Issuer: "CNCF"},
			Owner:       model.Owner{Username: "awsfan", DisplayName: "Jane"},
		},
		{
			Certificate: model.Certificate{ID: "c3", Title: "React Developer", Issuer: "Meta"},
			Owner:       model.Owner{Username: "dev", DisplayName: "Dev Eloper"},
		},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query returns everything", query: "", wantIDs: []string{"c1", "c2", "c3"}},
		{name: "matches issuer case-insensitively", query: "amazon", wantIDs: []string{"c1"}},
		{name: "matches title", query: "architect", wantIDs: []string{"c1"}},
		{name: "matches owner username", query: "awsfan", wantIDs: []string{"c2"}},
		{name: "matches owner display name", query: "eloper", wantIDs: []string{"c3"}},
		// "aws" is not a substring of "Amazon Web Services"; it only hits
		// rows where one of the four fields literally contains it.
		{name: "no acronym expansion", query: "aws", wantIDs: []string{"c2"}},
		{name: "no match", query: "zzz", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mCerts := new(repoMocks.MockCertificateRepository)
			mCerts.On("ListPublicWithOwner", ctx).Return(feed, nil)
			svc := newTestService(nil, mCerts, nil)

			items, err := svc.Explore(ctx, tt.query)

			assert.NoError(t, err)
			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mCerts.On("ListPublicWithOwner", ctx).Return(nil, errors.New("db fail"))
		svc := newTestService(nil, mCerts, nil)

		items, err := svc.Explore(ctx, "")

		assert.Error(t, err)
		assert.Nil(t, items)
	})
}

func TestCertificateService_GetPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path bumps views by one", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestService(nil, mCerts, mProfiles)

		mCerts.On("FindPublicByID", ctx, "cert-1").
			Return(&model.Certificate{ID: "cert-1", UserID: testUser, Views: 41, IsPublic: true}, nil)
		mProfiles.On("FindByID", ctx, testUser).
			Return(&model.Profile{ID: testUser, Username: "johndoe"}, nil)
		mCerts.On("UpdateViews", ctx, "cert-1", int64(42)).Return(nil)

		detail, err := svc.GetPublic(ctx, "cert-1")

		assert.NoError(t, err)
		assert.Equal(t, "cert-1", detail.Certificate.ID)
		assert.Equal(t, "johndoe", detail.Owner.Username)
		mCerts.AssertExpectations(t)
		mProfiles.AssertExpectations(t)
	})

	t.Run("N sequential fetches add exactly N", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestService(nil, mCerts, mProfiles)

		views := int64(10)
		mCerts.On("FindPublicByID", ctx, "cert-1").
			Return(func(context.Context, string) *model.Certificate {
				return &model.Certificate{ID: "cert-1", UserID: testUser, Views: views}
			}, nil)
		mProfiles.On("FindByID", ctx, testUser).Return(&model.Profile{ID: testUser}, nil)
		mCerts.On("UpdateViews", ctx, "cert-1", mock.AnythingOfType("int64")).
			Run(func(args mock.Arguments) { views = args.Get(2).(int64) }).
			Return(nil)

		for i := 0; i < 5; i++ {
			_, err := svc.GetPublic(ctx, "cert-1")
			assert.NoError(t, err)
		}
		assert.Equal(t, int64(15), views)
	})

	t.Run("private and nonexistent are the same not-found", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(nil, mCerts, nil)

		mCerts.On("FindPublicByID", ctx, mock.Anything).Return(nil, sql.ErrNoRows)

		for _, id := range []string{"private-cert", "no-such-cert"} {
			detail, err := svc.GetPublic(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Nil(t, detail)
		}
		// No view bump on a failed fetch.
		mCerts.AssertNotCalled(t, "UpdateViews", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing owner degrades to ownerless detail", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestService(nil, mCerts, mProfiles)

		mCerts.On("FindPublicByID", ctx, "cert-1").
			Return(&model.Certificate{ID: "cert-1", UserID: testUser, Views: 0}, nil)
		mProfiles.On("FindByID", ctx, testUser).Return(nil, sql.ErrNoRows)
		mCerts.On("UpdateViews", ctx, "cert-1", int64(1)).Return(nil)

		detail, err := svc.GetPublic(ctx, "cert-1")

		assert.NoError(t, err)
		assert.NotNil(t, detail.Certificate)
		assert.Nil(t, detail.Owner)
	})

	t.Run("view update failure does not fail the fetch", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		mProfiles := new(repoMocks.MockProfileRepository)
		svc := newTestService(nil, mCerts, mProfiles)

		mCerts.On("FindPublicByID", ctx, "cert-1").
			Return(&model.Certificate{ID: "cert-1", UserID: testUser, Views: 7}, nil)
		mProfiles.On("FindByID", ctx, testUser).Return(&model.Profile{ID: testUser}, nil)
		mCerts.On("UpdateViews", ctx, "cert-1", int64(8)).Return(errors.New("db fail"))

		detail, err := svc.GetPublic(ctx, "cert-1")

		assert.NoError(t, err)
		assert.NotNil(t, detail)
	})

	t.Run("empty id", func(t *testing.T) {
		svc := newTestService(nil, nil, nil)
		detail, err := svc.GetPublic(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Nil(t, detail)
	})
}

func TestCertificateService_ListOwn(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path includes private rows", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(nil, mCerts, nil)

		mCerts.On("ListByUser", ctx, testUser).Return([]model.Certificate{
			{ID: "c1", IsPublic: true},
			{ID: "c2", IsPublic: false},
		}, nil)

		items, err := svc.ListOwn(ctx, testUser)

		assert.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		svc := newTestService(nil, nil, nil)
		items, err := svc.ListOwn(ctx, "")
		assert.ErrorIs(t, err, ErrAuthRequired)
		assert.Nil(t, items)
	})
}

func TestCertificateService_UpdateOwn(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates description and visibility", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(nil, mCerts, nil)

		mCerts.On("UpdateDetails", ctx, "cert-1", testUser, "new text", false).
			Return(&model.Certificate{ID: "cert-1", Description: "new text", IsPublic: false}, nil)

		cert, err := svc.UpdateOwn(ctx, testUser, "cert-1", "  new text  ", false)

		assert.NoError(t, err)
		assert.False(t, cert.IsPublic)
	})

	t.Run("foreign certificate is not found", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(nil, mCerts, nil)

		mCerts.On("UpdateDetails", ctx, "cert-1", "intruder", "x", true).Return(nil, sql.ErrNoRows)

		cert, err := svc.UpdateOwn(ctx, "intruder", "cert-1", "x", true)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, cert)
	})
}

func TestCertificateService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("public certificate uses its permanent URL", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(mStore, mCerts, nil)

		mCerts.On("FindByID", ctx, "cert-1").Return(&model.Certificate{
			ID: "cert-1", UserID: testUser, IsPublic: true,
			FileURL: "http://minio/certificates/key.pdf",
		}, nil)

		u, err := svc.DownloadURL(ctx, "", "cert-1")

		assert.NoError(t, err)
		assert.Equal(t, "http://minio/certificates/key.pdf", u)
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("private certificate is presigned for the owner", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(mStore, mCerts, nil)

		mCerts.On("FindByID", ctx, "cert-1").Return(&model.Certificate{
			ID: "cert-1", UserID: testUser, IsPublic: false, StorageKey: testUser + "/key.pdf",
		}, nil)
		mStore.On("PresignGet", ctx, testUser+"/key.pdf", downloadExpiry).
			Return("http://minio/presigned", nil)

		u, err := svc.DownloadURL(ctx, testUser, "cert-1")

		assert.NoError(t, err)
		assert.Equal(t, "http://minio/presigned", u)
		mStore.AssertExpectations(t)
	})

	t.Run("private certificate hides from strangers", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(mStore, mCerts, nil)

		mCerts.On("FindByID", ctx, "cert-1").Return(&model.Certificate{
			ID: "cert-1", UserID: testUser, IsPublic: false,
		}, nil)

		for _, uid := range []string{"", "intruder"} {
			u, err := svc.DownloadURL(ctx, uid, "cert-1")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Empty(t, u)
		}
		mStore.AssertNotCalled(t, "PresignGet", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		mCerts := new(repoMocks.MockCertificateRepository)
		svc := newTestService(nil, mCerts, nil)

		mCerts.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		u, err := svc.DownloadURL(ctx, testUser, "nope")

		assert.ErrorIs(t, err, ErrNotFound)
		assert.Empty(t, u)
	})
}
