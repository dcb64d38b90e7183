package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/healthmate/internal/http/session"
	"github.com/magabrotheeeer/healthmate/internal/lib/sl"
	"github.com/magabrotheeeer/healthmate/internal/models"
	services "github.com/magabrotheeeer/healthmate/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*models.User)
	return user, args.String(1), args.Error(2)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "ann@x.com"}

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "successful login",
			body: `{"email":"ann@x.com","password":"Str0ng!Pass"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "ann@x.com", "Str0ng!Pass").Return(user, "jwt-token", nil).Once()
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json",
			body:           `{`,
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "missing password",
			body:           `{"email":"ann@x.com"}`,
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "field Password is a required field",
		},
		{
			name: "unknown email",
			body: `{"email":"ghost@x.com","password":"whatever"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "ghost@x.com", "whatever").Return(nil, "", services.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      "user not found",
		},
		{
			name: "wrong password",
			body: `{"email":"ann@x.com","password":"wrong"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "ann@x.com", "wrong").Return(nil, "", services.ErrInvalidCredentials).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "invalid credentials",
		},
		{
			name: "service error",
			body: `{"email":"ann@x.com","password":"x"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Login", mock.Anything, "ann@x.com", "x").Return(nil, "", errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()
			New(sl.Discard(), svc, 24*time.Hour).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
				assert.Empty(t, rec.Result().Cookies())
			} else {
				data := got["data"].(map[string]any)
				assert.Equal(t, "jwt-token", data["token"])
				cookies := rec.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, session.CookieName, cookies[0].Name)
				assert.Equal(t, "jwt-token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			}
			svc.AssertExpectations(t)
		})
	}
}
