package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"homestay-backoffice/internal/dataset"
	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/service"
)

// BookingHandler owns the booking list and CRUD endpoints.
type BookingHandler struct {
	bookings service.BookingService
	logger   *zap.Logger
}

func NewBookingHandler(bookings service.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: bookings, logger: logger}
}

// List answers GET /api/v1/bookings with optional search_term, sort_by and
// order query params. Search and sort are mutually composable: search first,
// then sort the matches.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	ds, err := h.bookings.Dataset(r.Context())
	if err != nil {
		h.logger.Error("failed to load bookings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load bookings"))
		return
	}

	records := ds.Records()
	if term := r.URL.Query().Get("search_term"); term != "" {
		records = ds.Search(term)
	}
	if by := r.URL.Query().Get("sort_by"); by != "" {
		ascending := !strings.EqualFold(r.URL.Query().Get("order"), "desc")
		records = dataset.FromRecords(records).Sort(dataset.Field(by), ascending)
	}

	out := toJSONList(records)
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"total": len(out),
		"items": out,
	}))
}

// Get answers GET /api/v1/bookings/{id}.
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	b, err := h.bookings.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("booking not found"))
			return
		}
		h.logger.Error("failed to load booking", zap.String("booking_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load booking"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(b.ToJSON()))
}

// Add answers POST /api/v1/bookings.
func (h *BookingHandler) Add(w http.ResponseWriter, r *http.Request) {
	var form service.BookingForm
	if err := readBodyJSON(r, 1<<20, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, err := h.bookings.Add(r.Context(), form)
	if err != nil {
		h.logger.Warn("failed to add booking", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"booking_id": id}))
}

// Update answers PUT /api/v1/bookings/{id}.
func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	var form service.BookingForm
	if err := readBodyJSON(r, 1<<20, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if err := h.bookings.Update(r.Context(), id, form); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("booking not found"))
			return
		}
		h.logger.Warn("failed to update booking", zap.String("booking_id", id), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"booking_id": id}))
}

// Delete answers DELETE /api/v1/bookings/{id}.
func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.bookings.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, Fail("booking not found"))
			return
		}
		h.logger.Error("failed to delete booking", zap.String("booking_id", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to delete booking"))
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}

// Export answers GET /api/v1/bookings/export with an xlsx download.
func (h *BookingHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.bookings.Export(r.Context())
	if err != nil {
		h.logger.Error("failed to export bookings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to export bookings"))
		return
	}
	filename := fmt.Sprintf("bookings_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// toJSONList renders booking slices for calendar payloads too.
func toJSONList(records []domain.Booking) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for i := range records {
		out = append(out, records[i].ToJSON())
	}
	return out
}
