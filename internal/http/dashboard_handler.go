package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"homestay-backoffice/internal/service"
)

// DashboardHandler answers the KPI and chart payload.
type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// Get answers GET /api/v1/dashboard. All filters arrive as query params;
// empty and "All" selectors mean no filtering on that dimension.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := service.DashboardRequest{
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		RoomNames:  queryList(r, "room_names"),
		Collectors: queryList(r, "collectors"),
		MinPrice:   q.Get("min_price"),
		MaxPrice:   q.Get("max_price"),
	}
	resp, err := h.dashboard.Dashboard(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to build dashboard", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to build dashboard"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(resp))
}
