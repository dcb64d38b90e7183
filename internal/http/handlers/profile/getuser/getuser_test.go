package getuser

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) UserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestGetUserHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		userID         string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
	}{
		{
			name:   "success",
			userID: "user-1",
			setupMock: func(m *ServiceMock) {
				m.On("UserByID", mock.Anything, "user-1").Return(&models.User{ID: "user-1", Email: "ann@x.com"}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "no user in context",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "user deleted",
			userID: "user-1",
			setupMock: func(m *ServiceMock) {
				m.On("UserByID", mock.Anything, "user-1").Return(nil, services.ErrUnauthorized).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "service error",
			userID: "user-1",
			setupMock: func(m *ServiceMock) {
				m.On("UserByID", mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/profile/getuser", nil)
			if tt.userID != "" {
				req = req.WithContext(middlewarectx.WithUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()
			New(sl.Discard(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			if tt.wantStatusCode == http.StatusOK {
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				user := got["data"].(map[string]any)["user"].(map[string]any)
				assert.Equal(t, "ann@x.com", user["email"])
			}
			svc.AssertExpectations(t)
		})
	}
}
