package expense

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/dailyspends/dailyspends/internal/rest"
	"github.com/dailyspends/dailyspends/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type RecordDTO struct {
	Day        int                `json:"day"`
	Amounts    map[string]float64 `json:"amounts"`
	Notes      string             `json:"notes,omitempty"`
	ReceiptRef string             `json:"receiptRef,omitempty"`
	Total      float64            `json:"total"`
}

type MonthDTO struct {
	Month       string      `json:"month"`
	Label       string      `json:"label"`
	DaysInMonth int         `json:"daysInMonth"`
	Total       float64     `json:"total"`
	Records     []RecordDTO `json:"records"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetMonth godoc
// @Summary List the day records of a month
// @Tags Expense
// @Produce json
// @Param month path string true "Month in YYYY-MM format"
// @Success 200 {object} MonthDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expenses/{month} [get]
// @Security XUserId
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting month expenses")
	month, err := ParseMonth(mux.Vars(r)["month"])
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.service.GetMonth(r.Context(), month)
	if err != nil {
		writeError(w, err)
		return
	}

	response := MonthDTO{
		Month:       month.String(),
		Label:       month.Label(),
		DaysInMonth: month.DaysIn(),
		Records:     make([]RecordDTO, 0, len(records)),
	}
	for _, record := range records {
		dto := RecordToDTO(record)
		response.Total += dto.Total
		response.Records = append(response.Records, dto)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetDay godoc
// @Summary Get the record of one day
// @Tags Expense
// @Produce json
// @Param month path string true "Month in YYYY-MM format"
// @Param day path int true "Day of month"
// @Success 200 {object} RecordDTO
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/expenses/{month}/days/{day} [get]
// @Security XUserId
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	month, day, ok := monthAndDay(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetDay(r.Context(), month, day)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RecordToDTO(record)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SaveDay godoc
// @Summary Replace the record of one day
// @Description All categories of the day are replaced, categories missing in the body are removed
// @Tags Expense
// @Accept json
// @Produce json
// @Param month path string true "Month in YYYY-MM format"
// @Param day path int true "Day of month"
// @Param record body RecordDTO true "Day record"
// @Success 200 {object} RecordDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/expenses/{month}/days/{day} [put]
// @Security XUserId
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	log.Debug("Saving day expenses")
	month, day, ok := monthAndDay(w, r)
	if !ok {
		return
	}

	var dto RecordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	if dto.Day != 0 && dto.Day != day {
		rest.WriteError(w, http.StatusBadRequest, "Day in body does not match path", "")
		return
	}
	dto.Day = day

	record, err := DTOToRecord(dto)
	if err != nil {
		writeError(w, err)
		return
	}

	saved, err := h.service.SaveDay(r.Context(), month, record)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(RecordToDTO(saved)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func monthAndDay(w http.ResponseWriter, r *http.Request) (Month, int, bool) {
	vars := mux.Vars(r)
	month, err := ParseMonth(vars["month"])
	if err != nil {
		writeError(w, err)
		return Month{}, 0, false
	}
	day, err := strconv.Atoi(vars["day"])
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid day", err.Error())
		return Month{}, 0, false
	}
	return month, day, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	case errors.Is(err, ErrRecordNotFound):
		rest.WriteError(w, http.StatusNotFound, "Expense record not found", "")
	case errors.Is(err, ErrInvalidMonth), errors.Is(err, ErrInvalidDay), errors.Is(err, ErrInvalidRecord):
		rest.WriteError(w, http.StatusBadRequest, "Invalid expense record", err.Error())
	case errors.Is(err, database.ErrUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Expense store unavailable", "")
	default:
		log.Errorf("expense request failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func RecordToDTO(record Record) RecordDTO {
	amounts := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		if amount, ok := record.Amounts[category]; ok {
			amounts[string(category)] = amount
		}
	}
	return RecordDTO{
		Day:        record.Day,
		Amounts:    amounts,
		Notes:      record.Notes,
		ReceiptRef: record.ReceiptRef,
		Total:      record.Total(),
	}
}

// DTOToRecord maps category names case-insensitively and rejects unknown ones.
func DTOToRecord(dto RecordDTO) (Record, error) {
	amounts := make(map[Category]float64, len(dto.Amounts))
	for name, amount := range dto.Amounts {
		category, err := ParseCategory(name)
		if err != nil {
			return Record{}, err
		}
		if _, seen := amounts[category]; seen {
			return Record{}, fmt.Errorf("%w: category %s given more than once", ErrInvalidRecord, category)
		}
		amounts[category] = amount
	}
	return Record{
		Day:        dto.Day,
		Amounts:    amounts,
		Notes:      dto.Notes,
		ReceiptRef: dto.ReceiptRef,
	}, nil
}
