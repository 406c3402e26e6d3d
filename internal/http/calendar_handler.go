package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"homestay-backoffice/internal/normalize"
	"homestay-backoffice/internal/occupancy"
	"homestay-backoffice/internal/service"
)

// CalendarHandler serves the month occupancy matrix and single-day detail.
type CalendarHandler struct {
	bookings service.BookingService
	capacity int
	logger   *zap.Logger
}

func NewCalendarHandler(bookings service.BookingService, capacity int, logger *zap.Logger) *CalendarHandler {
	return &CalendarHandler{bookings: bookings, capacity: capacity, logger: logger}
}

// Month answers GET /api/v1/calendar/{year}/{month}: one DayInfo plus the
// check-in/check-out activity for every real day of the month.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request, year, month int) {
	if month < 1 || month > 12 || year < 1 {
		writeJSON(w, http.StatusBadRequest, Fail("invalid year or month"))
		return
	}
	ds, err := h.bookings.Dataset(r.Context())
	if err != nil {
		h.logger.Error("failed to load bookings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load bookings"))
		return
	}

	matrix := occupancy.MonthMatrix(year, time.Month(month), ds, h.capacity)
	days := make(map[int]map[string]any, len(matrix))
	for day, info := range matrix {
		act := occupancy.ComputeDailyActivity(normalize.NewDate(year, time.Month(month), day), ds)
		days[day] = map[string]any{
			"date":        info.Date,
			"occupied":    info.Occupied,
			"available":   info.Available,
			"status_text": info.StatusText,
			"check_ins":   toJSONList(act.CheckIns),
			"check_outs":  toJSONList(act.CheckOuts),
		}
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"year":     year,
		"month":    month,
		"capacity": h.capacity,
		"days":     days,
	}))
}

// Day answers GET /api/v1/calendar/day/{date} for an ISO date.
func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request, rawDate string) {
	day, ok := normalize.ParseDate(normalize.FromText(rawDate))
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail("invalid date"))
		return
	}
	ds, err := h.bookings.Dataset(r.Context())
	if err != nil {
		h.logger.Error("failed to load bookings", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to load bookings"))
		return
	}

	info := occupancy.ComputeDayInfo(day, ds, h.capacity)
	act := occupancy.ComputeDailyActivity(day, ds)
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"date":        info.Date,
		"occupied":    info.Occupied,
		"available":   info.Available,
		"status_text": info.StatusText,
		"check_ins":   toJSONList(act.CheckIns),
		"check_outs":  toJSONList(act.CheckOuts),
	}))
}
