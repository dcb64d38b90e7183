package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/healthmate/internal/http/middlewarectx"
	"github.com/magabrotheeeer/healthmate/internal/http/session"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
)

// Mock for auth service
type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		cookie         string
		mockUserID     string
		mockErr        error
		callService    bool
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "missing cookie",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "token validation error",
			cookie:         "token",
			mockErr:        errors.New("token is expired"),
			callService:    true,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "valid token",
			cookie:         "validtoken",
			mockUserID:     "user-1",
			callService:    true,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			handlerCalled := false

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				userID, ok := middlewarectx.UserIDFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "user-1", userID)
				w.WriteHeader(http.StatusOK)
			})

			if tt.callService {
				authMock.On("ValidateToken", mock.Anything, tt.cookie).Return(tt.mockUserID, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			middlewarectx.JWTMiddleware(authMock, sl.Discard())(nextHandler).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			authMock.AssertExpectations(t)
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := middlewarectx.UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = middlewarectx.UserIDFromContext(middlewarectx.WithUserID(context.Background(), ""))
	assert.False(t, ok)

	id, ok := middlewarectx.UserIDFromContext(middlewarectx.WithUserID(context.Background(), "u"))
	assert.True(t, ok)
	assert.Equal(t, "u", id)
}
