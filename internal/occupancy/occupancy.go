// Package occupancy computes interval-overlap room occupancy against a fixed
// facility capacity, plus the revenue aggregates behind the dashboard charts.
package occupancy

import (
	"fmt"
	"time"

	"homestay-backoffice/internal/dataset"
	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/normalize"
)

// IsActiveOn reports whether the stay covers the given day under the
// exclusive-checkout rule: check_in <= day < check_out. The checkout day is
// free again (the room turns over the same day), so zero-night bookings
// never occupy a day; they still show up in DayActivity.
func IsActiveOn(b *domain.Booking, day normalize.Date) bool {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return false
	}
	return !day.Before(b.CheckIn) && day.Before(b.CheckOut)
}

// DayInfo is the occupancy summary for one calendar day.
type DayInfo struct {
	Date       normalize.Date `json:"date"`
	Occupied   int            `json:"occupied"`
	Available  int            `json:"available"`
	StatusText string         `json:"status_text"`
}

// ComputeDayInfo counts active bookings on the day. Available never goes
// negative even when the sheet is overbooked beyond capacity.
func ComputeDayInfo(day normalize.Date, ds *dataset.Dataset, capacity int) DayInfo {
	occupied := 0
	for _, b := range ds.Records() {
		if b.Cancelled() {
			continue
		}
		if IsActiveOn(&b, day) {
			occupied++
		}
	}
	available := capacity - occupied
	if available < 0 {
		available = 0
	}
	status := fmt.Sprintf("Còn %d phòng", available)
	if available == 0 {
		status = "Hết phòng"
	}
	return DayInfo{Date: day, Occupied: occupied, Available: available, StatusText: status}
}

// DayActivity lists the bookings checking in and out on an exact date.
type DayActivity struct {
	CheckIns  []domain.Booking
	CheckOuts []domain.Booking
}

// ComputeDailyActivity matches check-in/check-out dates exactly, not by
// interval overlap; a zero-night stay appears in both lists.
func ComputeDailyActivity(day normalize.Date, ds *dataset.Dataset) DayActivity {
	var act DayActivity
	for _, b := range ds.Records() {
		if b.Cancelled() {
			continue
		}
		if b.CheckIn.Equal(day) {
			act.CheckIns = append(act.CheckIns, b)
		}
		if b.CheckOut.Equal(day) {
			act.CheckOuts = append(act.CheckOuts, b)
		}
	}
	return act
}

// MonthMatrix computes DayInfo for every real day of the calendar month,
// keyed by day-of-month. Month lengths and leap years come from time.Date's
// day-zero normalization; week-grid padding cells are the caller's concern
// and never appear here.
func MonthMatrix(year int, month time.Month, ds *dataset.Dataset, capacity int) map[int]DayInfo {
	// day 0 of the next month is the last day of this one
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	out := make(map[int]DayInfo, last)
	for day := 1; day <= last; day++ {
		d := normalize.NewDate(year, month, day)
		out[day] = ComputeDayInfo(d, ds, capacity)
	}
	return out
}

// MonthlyRevenue sums active bookings' total payment per check-in month
// bucket, descending by total.
func MonthlyRevenue(ds *dataset.Dataset) []dataset.GroupTotal {
	return ds.Active().GroupSum(dataset.FieldCheckInMonth, dataset.FieldTotalPayment)
}

// RoomRevenue sums active bookings' total payment per room, descending.
func RoomRevenue(ds *dataset.Dataset) []dataset.GroupTotal {
	return ds.Active().GroupSum(dataset.FieldRoomName, dataset.FieldTotalPayment)
}

// CollectorRevenue sums active bookings' total payment per collector,
// descending.
func CollectorRevenue(ds *dataset.Dataset) []dataset.GroupTotal {
	return ds.Active().GroupSum(dataset.FieldCollector, dataset.FieldTotalPayment)
}
