package budget

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dailyspends/dailyspends/internal/database"
	"github.com/dailyspends/dailyspends/internal/rest"
	"github.com/dailyspends/dailyspends/pkg/expense"
	"github.com/dailyspends/dailyspends/pkg/user"
	log "github.com/sirupsen/logrus"
)

type CategorySummaryDTO struct {
	Category string  `json:"category"`
	Color    string  `json:"color"`
	Total    float64 `json:"total"`
	Adjusted float64 `json:"adjusted"`
	Exceeded bool    `json:"exceeded"`
	Ratio    float64 `json:"ratio"`
	Progress float64 `json:"progress"`
}

type SummaryDTO struct {
	Month      string               `json:"month"`
	Label      string               `json:"label"`
	Period     string               `json:"period"`
	Limit      float64              `json:"limit"`
	Total      float64              `json:"total"`
	Adjusted   float64              `json:"adjusted"`
	Exceeded   bool                 `json:"exceeded"`
	Ratio      float64              `json:"ratio"`
	Progress   float64              `json:"progress"`
	Categories []CategorySummaryDTO `json:"categories"`
	Alerts     []string             `json:"alerts"`
}

type Handler struct {
	service     Service
	csvRenderer SummaryRenderer
}

func NewHandler(service Service, csvRenderer SummaryRenderer) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer}
}

// GetSummary godoc
// @Summary Spending of a month against the limit of a period
// @Tags Budget
// @Produce json
// @Produce text/csv
// @Param month query string false "Month in YYYY-MM format, defaults to the current month"
// @Param period query string false "Daily, Monthly or Yearly, defaults to Daily"
// @Success 200 {object} SummaryDTO
// @Failure 400 {object} rest.ErrorResponse
// @Router /api/budget/summary [get]
// @Security XUserId
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	log.Debug("Getting budget summary")
	query := r.URL.Query()

	month := h.service.CurrentMonth()
	if monthString := query.Get("month"); monthString != "" {
		parsed, err := expense.ParseMonth(monthString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid month format", "month must be in YYYY-MM format")
			return
		}
		month = parsed
	}

	period := Daily
	if periodString := query.Get("period"); periodString != "" {
		parsed, err := ParsePeriod(periodString)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid period", "period must be one of Daily, Monthly, Yearly")
			return
		}
		period = parsed
	}

	summary, err := h.service.GetSummary(r.Context(), month, period)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write csv summary: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(SummaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	case errors.Is(err, expense.ErrInvalidMonth):
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", err.Error())
	case errors.Is(err, database.ErrUnavailable):
		rest.WriteError(w, http.StatusServiceUnavailable, "Store unavailable", "")
	default:
		log.Errorf("budget summary failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func SummaryToDTO(summary Summary) SummaryDTO {
	categories := make([]CategorySummaryDTO, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, CategorySummaryDTO{
			Category: string(c.Category),
			Color:    c.Category.Color(),
			Total:    c.Total,
			Adjusted: c.Adjusted,
			Exceeded: c.Exceeded,
			Ratio:    c.Ratio,
			Progress: c.Progress,
		})
	}
	return SummaryDTO{
		Month:      summary.Month.String(),
		Label:      summary.Month.Label(),
		Period:     string(summary.Period),
		Limit:      summary.Limit,
		Total:      summary.Total,
		Adjusted:   summary.Adjusted,
		Exceeded:   summary.Exceeded,
		Ratio:      summary.Ratio,
		Progress:   summary.Progress,
		Categories: categories,
		Alerts:     summary.Alerts(),
	}
}
