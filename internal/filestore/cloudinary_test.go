package filestore

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCloudinary struct {
	mock.Mock
}

func (m *mockCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	args := m.Called(ctx, file, params)
	res, _ := args.Get(0).(*uploader.UploadResult)
	return res, args.Error(1)
}

func (m *mockCloudinary) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	args := m.Called(ctx, params)
	res, _ := args.Get(0).(*uploader.DestroyResult)
	return res, args.Error(1)
}

func newTestCloudinary(m *mockCloudinary) *Cloudinary {
	return &Cloudinary{api: m, folder: "healthmate/reports", now: func() time.Time { return time.UnixMilli(5) }}
}

func TestCloudinary_Save(t *testing.T) {
	m := new(mockCloudinary)
	store := newTestCloudinary(m)

	m.On("Upload", mock.Anything, mock.Anything, mock.MatchedBy(func(p uploader.UploadParams) bool {
		return regexp.MustCompile(`^5-[0-9a-f]{8}-scan$`).MatchString(p.PublicID) && p.Folder == "healthmate/reports" && p.ResourceType == "auto"
	})).Return(&uploader.UploadResult{
		SecureURL:    "https://res.cloudinary.com/demo/image/upload/healthmate/reports/5-scan.pdf",
		PublicID:     "healthmate/reports/5-scan",
		ResourceType: "image",
	}, nil).Once()

	file, err := store.Save(context.Background(), "scan.pdf", []byte("%PDF"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "image:healthmate/reports/5-scan", file.ID)
	assert.Contains(t, file.URL, "res.cloudinary.com")
	m.AssertExpectations(t)
}

func TestCloudinary_SaveAPIError(t *testing.T) {
	m := new(mockCloudinary)
	store := newTestCloudinary(m)

	m.On("Upload", mock.Anything, mock.Anything, mock.Anything).
		Return(&uploader.UploadResult{Error: api.ErrorResp{Message: "Invalid api_key"}}, nil).Once()

	_, err := store.Save(context.Background(), "scan.pdf", []byte("%PDF"), "application/pdf")
	assert.ErrorContains(t, err, "Invalid api_key")
}

func TestCloudinary_Delete(t *testing.T) {
	m := new(mockCloudinary)
	store := newTestCloudinary(m)

	m.On("Destroy", mock.Anything, uploader.DestroyParams{
		PublicID:     "healthmate/reports/5-scan",
		ResourceType: "image",
	}).Return(&uploader.DestroyResult{Result: "ok"}, nil).Once()

	require.NoError(t, store.Delete(context.Background(), StoredFile{ID: "image:healthmate/reports/5-scan"}))
	assert.ErrorIs(t, store.Delete(context.Background(), StoredFile{ID: "broken"}), ErrInvalidName)
	m.AssertExpectations(t)
}
