package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps the standard http.ServeMux; the route surface is small
// enough that a third-party router buys nothing.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler supports the http.Handler interface (pprof and the like).
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func methodOnly(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}

// RegisterAuthRoutes mounts login and logout.
func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("/auth/api/v1/login", methodOnly(http.MethodPost, h.Login))
	r.Handle("/auth/api/v1/logout", methodOnly(http.MethodPost, h.Logout))
}

// RegisterDashboardRoutes mounts the KPI endpoint behind the session check.
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler, sessions *SessionStore) {
	r.Handle("/api/v1/dashboard", sessions.requireAuth(methodOnly(http.MethodGet, h.Get)))
}

// RegisterBookingRoutes mounts list, CRUD and export.
func (r *Router) RegisterBookingRoutes(h *BookingHandler, sessions *SessionStore) {
	r.Handle("/api/v1/bookings", sessions.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodGet:
			h.List(w, req)
		case http.MethodPost:
			h.Add(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	r.Handle("/api/v1/bookings/export", sessions.requireAuth(methodOnly(http.MethodGet, h.Export)))

	// id-addressed: /api/v1/bookings/{id}
	r.Handle("/api/v1/bookings/", sessions.requireAuth(func(w http.ResponseWriter, req *http.Request) {
		id := strings.TrimPrefix(req.URL.Path, "/api/v1/bookings/")
		if id == "" || strings.Contains(id, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch req.Method {
		case http.MethodGet:
			h.Get(w, req, id)
		case http.MethodPut:
			h.Update(w, req, id)
		case http.MethodDelete:
			h.Delete(w, req, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

// RegisterCalendarRoutes mounts the month matrix and day detail.
func (r *Router) RegisterCalendarRoutes(h *CalendarHandler, sessions *SessionStore) {
	r.Handle("/api/v1/calendar/day/", sessions.requireAuth(methodOnly(http.MethodGet, func(w http.ResponseWriter, req *http.Request) {
		rawDate := strings.TrimPrefix(req.URL.Path, "/api/v1/calendar/day/")
		if rawDate == "" || strings.Contains(rawDate, "/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Day(w, req, rawDate)
	})))

	// /api/v1/calendar/{year}/{month}
	r.Handle("/api/v1/calendar/", sessions.requireAuth(methodOnly(http.MethodGet, func(w http.ResponseWriter, req *http.Request) {
		rest := strings.TrimPrefix(req.URL.Path, "/api/v1/calendar/")
		parts := strings.Split(rest, "/")
		if len(parts) != 2 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		year := parseInt(parts[0], 0)
		month := parseInt(parts[1], 0)
		if year == 0 || month == 0 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Month(w, req, year, month)
	})))
}

// RegisterExtractRoutes mounts the AI extraction endpoint.
func (r *Router) RegisterExtractRoutes(h *ExtractHandler, sessions *SessionStore) {
	r.Handle("/api/v1/bookings/extract", sessions.requireAuth(methodOnly(http.MethodPost, h.Extract)))
}
