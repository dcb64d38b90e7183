package list

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
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) List(ctx context.Context, userID string) ([]models.Vitals, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Vitals)
	return list, args.Error(1)
}

func TestListHandler_ServeHTTP(t *testing.T) {
	t.Run("returns records", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("List", mock.Anything, "user-1").Return([]models.Vitals{{ID: "v-1", BP: "120/80"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/vitals/myvitals", nil)
		req = req.WithContext(middlewarectx.WithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Data struct {
				Vitals []models.Vitals `json:"vitals"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got.Data.Vitals, 1)
		assert.Equal(t, "120/80", got.Data.Vitals[0].BP)
		svc.AssertExpectations(t)
	})

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		New(sl.Discard(), new(ServiceMock)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vitals/myvitals", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := new(ServiceMock)
		svc.On("List", mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/vitals/myvitals", nil)
		req = req.WithContext(middlewarectx.WithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()
		New(sl.Discard(), svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		svc.AssertExpectations(t)
	})
}
