package receipt

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dailyspends/dailyspends/internal/rest"
	"github.com/dailyspends/dailyspends/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ReceiptDTO struct {
	Ref         string `json:"ref"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Upload godoc
// @Summary Upload a receipt image
// @Tags Receipt
// @Accept multipart/form-data
// @Produce json
// @Param receipt formData file true "JPEG or PNG image"
// @Success 201 {object} ReceiptDTO
// @Failure 400 {object} rest.ErrorResponse "Image too large or invalid"
// @Router /api/receipts [post]
// @Security XUserId
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log.Trace("Uploading receipt")

	// multipart overhead on top of the image
	r.Body = http.MaxBytesReader(w, r.Body, MaxSize+(1<<20))
	if err := r.ParseMultipartForm(MaxSize); err != nil {
		log.Debugf("Receipt upload rejected: %v", err)
		rest.WriteError(w, http.StatusBadRequest, "Image is too large", "Maximum size is 10MB.")
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Missing receipt file", err.Error())
		return
	}
	defer file.Close()
	log.Debugf("Uploaded receipt %s, %d bytes", header.Filename, header.Size)

	data, err := io.ReadAll(file)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Unable to read receipt file", err.Error())
		return
	}

	receipt, err := h.service.Upload(r.Context(), data)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ReceiptToDTO(receipt)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// List godoc
// @Summary List receipts of the current user
// @Tags Receipt
// @Produce json
// @Success 200 {array} ReceiptDTO
// @Router /api/receipts [get]
// @Security XUserId
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	receipts, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	dtos := make([]ReceiptDTO, 0, len(receipts))
	for _, receipt := range receipts {
		dtos = append(dtos, ReceiptToDTO(receipt))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Get godoc
// @Summary Get a receipt image
// @Tags Receipt
// @Produce image/jpeg
// @Produce image/png
// @Param name path string true "Receipt name"
// @Success 200 {file} file
// @Failure 404 {object} rest.ErrorResponse
// @Router /api/receipts/{name} [get]
// @Security XUserId
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	body, receipt, err := h.service.Open(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", receipt.ContentType)
	if _, err := io.Copy(w, body); err != nil {
		log.Errorf("failed to send receipt %s: %v", receipt.Ref, err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		rest.WriteError(w, http.StatusUnauthorized, "Not authenticated", "")
	case errors.Is(err, ErrInvalidOwner):
		rest.WriteError(w, http.StatusForbidden, "User cannot own receipts", "")
	case errors.Is(err, ErrReceiptNotFound):
		rest.WriteError(w, http.StatusNotFound, "Receipt not found", "")
	case errors.Is(err, ErrUnsupportedImage), errors.Is(err, ErrReceiptTooLarge):
		rest.WriteError(w, http.StatusBadRequest, "Invalid receipt image", err.Error())
	default:
		log.Errorf("receipt request failed: %v", err)
		rest.WriteError(w, http.StatusServiceUnavailable, "Receipt storage unavailable", "")
	}
}

func ReceiptToDTO(receipt Receipt) ReceiptDTO {
	return ReceiptDTO{
		Ref:         receipt.Ref,
		Name:        receipt.Name,
		ContentType: receipt.ContentType,
	}
}
