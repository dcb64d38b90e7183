package download

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/healthmate/internal/filestore"
	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) OwnsFile(ctx context.Context, userID, fileURL string) (bool, error) {
	args := m.Called(ctx, userID, fileURL)
	return args.Bool(0), args.Error(1)
}

func TestDownloadHandler_ServeHTTP(t *testing.T) {
	dir := t.TempDir()
	files, err := filestore.NewLocal(dir, "/report/uploads")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1700000000-cbc.pdf"), []byte("%PDF-1.4"), 0o600))

	tests := []struct {
		name           string
		userID         string
		file           string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:   "owner downloads file",
			userID: "user-1",
			file:   "1700000000-cbc.pdf",
			setupMock: func(m *ServiceMock) {
				m.On("OwnsFile", mock.Anything, "user-1", "/report/uploads/1700000000-cbc.pdf").Return(true, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       "%PDF-1.4",
		},
		{
			name:   "file of another user",
			userID: "user-2",
			file:   "1700000000-cbc.pdf",
			setupMock: func(m *ServiceMock) {
				m.On("OwnsFile", mock.Anything, "user-2", "/report/uploads/1700000000-cbc.pdf").Return(false, nil).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"error":"file not found"`,
		},
		{
			name:           "path traversal",
			userID:         "user-1",
			file:           "..",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"error":"file not found"`,
		},
		{
			name:           "no session",
			file:           "1700000000-cbc.pdf",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "owner check fails",
			userID: "user-1",
			file:   "1700000000-cbc.pdf",
			setupMock: func(m *ServiceMock) {
				m.On("OwnsFile", mock.Anything, "user-1", mock.Anything).Return(false, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/report/uploads/x", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("name", tt.file)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userID != "" {
				ctx = middlewarectx.WithUserID(ctx, tt.userID)
			}
			rec := httptest.NewRecorder()

			New(sl.Discard(), files, svc).ServeHTTP(rec, req.WithContext(ctx))

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			svc.AssertExpectations(t)
		})
	}
}
