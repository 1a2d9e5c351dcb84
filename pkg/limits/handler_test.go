package limits

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitInput_UnmarshalJSON(t *testing.T) {
	var input LimitsInputDTO

	err := json.Unmarshal([]byte(`{"daily":"abc","monthly":" 250,5 ","yearly":1200}`), &input)

	require.NoError(t, err)
	assert.Equal(t, LimitInput(0), input.Daily)
	assert.Equal(t, LimitInput(250.5), input.Monthly)
	assert.Equal(t, LimitInput(1200), input.Yearly)
}

func TestHandler_UpdateLimits(t *testing.T) {
	t.Run("should store parsed limits", func(t *testing.T) {
		// given
		ctx, service, repo, _ := setupService(t)
		handler := NewHandler(service)
		req := httptest.NewRequest(http.MethodPut, "/api/limits", strings.NewReader(`{"daily":"50","monthly":"-5","yearly":null}`)).WithContext(ctx)
		rec := httptest.NewRecorder()

		// when
		handler.UpdateLimits(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		var dto LimitsDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, LimitsDTO{Daily: 50}, dto)
		stored, _ := repo.Get(ctx, 3)
		assert.Equal(t, Limits{Daily: 50}, stored)
	})

	t.Run("should respond 401 without user", func(t *testing.T) {
		_, service, _, _ := setupService(t)
		handler := NewHandler(service)
		rec := httptest.NewRecorder()

		handler.UpdateLimits(rec, httptest.NewRequest(http.MethodPut, "/api/limits", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_GetLimits(t *testing.T) {
	ctx, service, repo, _ := setupService(t)
	require.NoError(t, repo.Store(ctx, 3, Limits{Daily: 10, Monthly: 300, Yearly: 3600}))
	handler := NewHandler(service)
	rec := httptest.NewRecorder()

	handler.GetLimits(rec, httptest.NewRequest(http.MethodGet, "/api/limits", nil).WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	var dto LimitsDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
	assert.Equal(t, LimitsDTO{Daily: 10, Monthly: 300, Yearly: 3600}, dto)
}
