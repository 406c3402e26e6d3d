package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"homestay-backoffice/internal/service"
)

// ExtractHandler proposes booking fields from a pasted confirmation image.
type ExtractHandler struct {
	extractor service.BookingExtractor
	logger    *zap.Logger
}

// NewExtractHandler accepts a nil extractor; the endpoint then reports the
// feature as unconfigured instead of failing at startup.
func NewExtractHandler(extractor service.BookingExtractor, logger *zap.Logger) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, logger: logger}
}

type extractRequest struct {
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Extract answers POST /api/v1/bookings/extract. Failures come back as an
// error envelope so the form simply stays blank for manual entry.
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	if h.extractor == nil {
		writeJSON(w, http.StatusServiceUnavailable, Fail("extraction is not configured"))
		return
	}
	var req extractRequest
	if err := readBodyJSON(r, 16<<20, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if strings.TrimSpace(req.ImageBase64) == "" {
		writeJSON(w, http.StatusBadRequest, Fail("image_base64 is required"))
		return
	}

	form, err := h.extractor.ExtractBooking(r.Context(), req.ImageBase64, req.MimeType)
	if err != nil {
		h.logger.Warn("booking extraction failed", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, Fail("extraction failed"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(form))
}
