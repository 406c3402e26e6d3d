package service

import (
	"context"
	"fmt"

	"homestay-backoffice/internal/dataset"
	"homestay-backoffice/internal/normalize"
	"homestay-backoffice/internal/occupancy"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DashboardRequest carries the dashboard filters as they arrive from the
// query string. Empty strings and "All" selectors are no-ops.
type DashboardRequest struct {
	StartDate  string
	EndDate    string
	RoomNames  []string
	Collectors []string
	MinPrice   string
	MaxPrice   string
}

// KPIs are the headline numbers of the filtered view.
type KPIs struct {
	TotalRevenue        float64 `json:"total_revenue"`
	TotalBookings       int     `json:"total_bookings"`
	AverageBookingValue float64 `json:"average_booking_value"`
	AverageNights       float64 `json:"average_nights_per_booking"`
	ADR                 float64 `json:"adr"`
	OccupancyRate       float64 `json:"occupancy_rate"`
}

// ChartPoint is one labeled value of a chart series.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardResponse is the full dashboard payload: KPIs, the three chart
// series, and the selector options for the filter bar.
type DashboardResponse struct {
	KPIs               KPIs         `json:"kpis"`
	MonthlyRevenue     []ChartPoint `json:"monthly_revenue"`
	RevenueByRoom      []ChartPoint `json:"revenue_by_room"`
	RevenueByCollector []ChartPoint `json:"revenue_by_collector"`
	RoomOptions        []string     `json:"room_options"`
	CollectorOptions   []string     `json:"collector_options"`
	StartDate          string       `json:"start_date"`
	EndDate            string       `json:"end_date"`
}

// DashboardService assembles the KPI and chart payloads.
type DashboardService interface {
	Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error)
}

type dashboardService struct {
	bookings BookingService
	capacity int
	logger   *zap.Logger
}

func NewDashboardService(bookings BookingService, capacity int, logger *zap.Logger) DashboardService {
	return &dashboardService{bookings: bookings, capacity: capacity, logger: logger}
}

func (s *dashboardService) Dashboard(ctx context.Context, req DashboardRequest) (*DashboardResponse, error) {
	ds, err := s.bookings.Dataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	spec := dataset.FilterSpec{
		RoomNames:  req.RoomNames,
		Collectors: req.Collectors,
	}
	if req.StartDate != "" {
		if d, ok := normalize.ParseDate(normalize.FromText(req.StartDate)); ok {
			spec.Start = d
		}
	}
	if req.EndDate != "" {
		if d, ok := normalize.ParseDate(normalize.FromText(req.EndDate)); ok {
			spec.End = d
		}
	}
	if req.MinPrice != "" {
		v := normalize.ParseAmount(req.MinPrice)
		spec.MinPayment = &v
	}
	if req.MaxPrice != "" {
		v := normalize.ParseAmount(req.MaxPrice)
		spec.MaxPayment = &v
	}

	// Defaults echoed back to the filter bar: the snapshot's own bounds.
	startDate, endDate := req.StartDate, req.EndDate
	if startDate == "" {
		if d, ok := ds.MinCheckIn(); ok {
			startDate = d.String()
		}
	}
	if endDate == "" {
		if d, ok := ds.MaxCheckOut(); ok {
			endDate = d.String()
		}
	}

	filtered := ds.Filter(spec)

	return &DashboardResponse{
		KPIs:               s.computeKPIs(filtered),
		MonthlyRevenue:     toChart(occupancy.MonthlyRevenue(filtered)),
		RevenueByRoom:      toChart(occupancy.RoomRevenue(filtered)),
		RevenueByCollector: toChart(occupancy.CollectorRevenue(filtered)),
		RoomOptions:        ds.RoomNames(),
		CollectorOptions:   ds.Collectors(),
		StartDate:          startDate,
		EndDate:            endDate,
	}, nil
}

func (s *dashboardService) computeKPIs(ds *dataset.Dataset) KPIs {
	// Cancelled bookings carry no revenue and no nights.
	active := ds.Active()
	if active.Len() == 0 {
		return KPIs{}
	}

	totalRevenue := decimal.Zero
	totalNights := 0
	for _, b := range active.Records() {
		totalRevenue = totalRevenue.Add(b.TotalPayment)
		totalNights += b.StayNights
	}
	count := active.Len()

	k := KPIs{
		TotalRevenue:  totalRevenue.InexactFloat64(),
		TotalBookings: count,
		AverageNights: float64(totalNights) / float64(count),
	}
	k.AverageBookingValue = k.TotalRevenue / float64(count)
	if totalNights > 0 {
		k.ADR = k.TotalRevenue / float64(totalNights)
	}

	// Occupancy rate: sold nights over capacity-nights across the view's
	// own date span.
	minIn, okMin := active.MinCheckIn()
	maxOut, okMax := active.MaxCheckOut()
	if okMin && okMax && s.capacity > 0 {
		if days := minIn.DaysUntil(maxOut); days > 0 {
			k.OccupancyRate = float64(totalNights) / (float64(s.capacity) * float64(days)) * 100
		}
	}
	return k
}

func toChart(totals []dataset.GroupTotal) []ChartPoint {
	out := make([]ChartPoint, 0, len(totals))
	for _, t := range totals {
		out = append(out, ChartPoint{Name: t.Key, Value: t.Total.InexactFloat64()})
	}
	return out
}
