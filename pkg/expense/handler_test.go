package expense

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (*mux.Router, *RepositoryStub) {
	_, service, repo, _ := setupService(t)
	handler := NewHandler(service)
	router := mux.NewRouter()
	router.HandleFunc("/api/expenses/{month}", handler.GetMonth).Methods("GET")
	router.HandleFunc("/api/expenses/{month}/days/{day}", handler.GetDay).Methods("GET")
	router.HandleFunc("/api/expenses/{month}/days/{day}", handler.SaveDay).Methods("PUT")
	return router, repo
}

func TestHandler_SaveDay(t *testing.T) {
	t.Run("should save day and return it", func(t *testing.T) {
		// given
		router, repo := setupRouter(t)
		ctx, _, _, _ := setupService(t)
		body := `{"amounts":{"grocery":12.5,"Travel":3},"notes":"bus"}`
		req := httptest.NewRequest(http.MethodPut, "/api/expenses/2025-01/days/3", strings.NewReader(body)).WithContext(ctx)
		rec := httptest.NewRecorder()

		// when
		router.ServeHTTP(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		var dto RecordDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, 3, dto.Day)
		assert.Equal(t, 15.5, dto.Total)
		assert.Equal(t, map[string]float64{"Grocery": 12.5, "Travel": 3}, dto.Amounts)
		stored, err := repo.GetDay(ctx, 7, january, 3)
		require.NoError(t, err)
		assert.Equal(t, "bus", stored.Notes)
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		router, _ := setupRouter(t)
		ctx, _, _, _ := setupService(t)
		req := httptest.NewRequest(http.MethodPut, "/api/expenses/2025-01/days/3", strings.NewReader(`{"amounts":{"Rent":1}}`)).WithContext(ctx)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should reject category given twice in different case", func(t *testing.T) {
		router, repo := setupRouter(t)
		ctx, _, _, _ := setupService(t)
		req := httptest.NewRequest(http.MethodPut, "/api/expenses/2025-01/days/3", strings.NewReader(`{"amounts":{"grocery":1,"Grocery":2}}`)).WithContext(ctx)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		_, err := repo.GetDay(ctx, 7, january, 3)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("should respond 401 without user", func(t *testing.T) {
		router, _ := setupRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/api/expenses/2025-01/days/3", strings.NewReader(`{"amounts":{}}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDTOToRecord(t *testing.T) {
	t.Run("should match category names case-insensitively", func(t *testing.T) {
		record, err := DTOToRecord(RecordDTO{Day: 1, Amounts: map[string]float64{"savings": 4}})

		require.NoError(t, err)
		assert.Equal(t, map[Category]float64{Savings: 4}, record.Amounts)
	})

	t.Run("should reject duplicate category on every map order", func(t *testing.T) {
		dto := RecordDTO{Day: 1, Amounts: map[string]float64{"grocery": 1, "Grocery": 2}}
		for i := 0; i < 50; i++ {
			_, err := DTOToRecord(dto)
			require.ErrorIs(t, err, ErrInvalidRecord)
		}
	})
}

func TestHandler_GetMonth(t *testing.T) {
	t.Run("should return month with records and total", func(t *testing.T) {
		// given
		router, repo := setupRouter(t)
		ctx, _, _, _ := setupService(t)
		require.NoError(t, repo.StoreDay(ctx, 7, january, Record{Day: 1, Amounts: map[Category]float64{Grocery: 10}}))
		require.NoError(t, repo.StoreDay(ctx, 7, january, Record{Day: 2, Amounts: map[Category]float64{Savings: 5}}))
		req := httptest.NewRequest(http.MethodGet, "/api/expenses/2025-01", nil).WithContext(ctx)
		rec := httptest.NewRecorder()

		// when
		router.ServeHTTP(rec, req)

		// then
		require.Equal(t, http.StatusOK, rec.Code)
		var dto MonthDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&dto))
		assert.Equal(t, "January 2025", dto.Label)
		assert.Equal(t, 31, dto.DaysInMonth)
		assert.Equal(t, 15.0, dto.Total)
		assert.Len(t, dto.Records, 2)
	})

	t.Run("should reject malformed month", func(t *testing.T) {
		router, _ := setupRouter(t)
		ctx, _, _, _ := setupService(t)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses/January", nil).WithContext(ctx))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetDay(t *testing.T) {
	router, _ := setupRouter(t)
	ctx, _, _, _ := setupService(t)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses/2025-01/days/4", nil).WithContext(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
