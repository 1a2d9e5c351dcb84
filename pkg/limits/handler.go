package limits

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/dailyspends/dailyspends/internal/rest"
	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

type LimitsDTO struct {
	Daily   float64 `json:"daily"`
	Monthly float64 `json:"monthly"`
	Yearly  float64 `json:"yearly"`
}

// LimitInput accepts a JSON number or a string typed by the user. Strings go through ParseLimit.
type LimitInput float64

func (l *LimitInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LimitInput(ParseLimit(s))
		return nil
	}
	*l = LimitInput(ParseLimit(string(data)))
	return nil
}

type LimitsInputDTO struct {
	Daily   LimitInput `json:"daily"`
	Monthly LimitInput `json:"monthly"`
	Yearly  LimitInput `json:"yearly"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetLimits godoc
// @Summary Get the limits of the current user
// @Tags Limits
// @Produce json
// @Success 200 {object} LimitsDTO
// @Router /api/limits [get]
// @Security XUserId
func (h *Handler) GetLimits(w http.ResponseWriter, r *http.Request) {
	limits, err := h.service.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LimitsToDTO(limits)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateLimits godoc
// @Summary Replace the limits of the current user
// @Description Each limit may be a number or a string. Invalid or negative values are stored as 0 (no limit)
// @Tags Limits
// @Accept json
// @Produce json
// @Param limits body LimitsInputDTO true "Limits"
// @Success 200 {object} LimitsDTO
// @Router /api/limits [put]
// @Security XUserId
func (h *Handler) UpdateLimits(w http.ResponseWriter, r *http.Request) {
	log.Debug("Updating limits")
	var input LimitsInputDTO
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), Limits{
		Daily:   float64(input.Daily),
		Monthly: float64(input.Monthly),
		Yearly:  float64(input.Yearly),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(LimitsToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	case errors.Is(err, database.ErrUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Limit store unavailable", "")
	default:
		log.Errorf("limits request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func LimitsToDTO(limits Limits) LimitsDTO {
	return LimitsDTO{
		Daily:   limits.Daily,
		Monthly: limits.Monthly,
		Yearly:  limits.Yearly,
	}
}
