package occupancy

import (
	"testing"
	"time"

	"homestay-backoffice/internal/dataset"
	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/normalize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) normalize.Date { return normalize.NewDate(y, m, d) }

func testDataset() *dataset.Dataset {
	return dataset.FromRecords([]domain.Booking{
		{
			BookingID: "BK001", RoomName: "Old Quarter Home", Collector: "LOC LE",
			Status:  "OK",
			CheckIn: date(2025, time.May, 22), CheckOut: date(2025, time.May, 24),
			TotalPayment: decimal.NewFromInt(300000),
		},
		{
			BookingID: "BK002", RoomName: "Riverside Apartment", Collector: "THAO LE",
			Status:  "OK",
			CheckIn: date(2025, time.May, 23), CheckOut: date(2025, time.May, 26),
			TotalPayment: decimal.NewFromInt(450000),
		},
		{
			BookingID: "BK003", RoomName: "Old Quarter Home", Collector: "LOC LE",
			Status:  domain.StatusCancelled,
			CheckIn: date(2025, time.May, 22), CheckOut: date(2025, time.May, 30),
			TotalPayment: decimal.NewFromInt(999999),
		},
		{
			BookingID: "BK004", RoomName: "Riverside Apartment", Collector: "LOC LE",
			Status:  "OK",
			CheckIn: date(2025, time.June, 1), CheckOut: date(2025, time.June, 5),
			TotalPayment: decimal.NewFromInt(1200000),
		},
	})
}

func TestIsActiveOn_ExclusiveCheckout(t *testing.T) {
	b := domain.Booking{CheckIn: date(2025, time.May, 22), CheckOut: date(2025, time.May, 24)}
	require.True(t, IsActiveOn(&b, date(2025, time.May, 22)))
	require.True(t, IsActiveOn(&b, date(2025, time.May, 23)))
	require.False(t, IsActiveOn(&b, date(2025, time.May, 24))) // checkout day is free
	require.False(t, IsActiveOn(&b, date(2025, time.May, 21)))
}

func TestIsActiveOn_ZeroNightAndAbsentDates(t *testing.T) {
	zero := domain.Booking{CheckIn: date(2025, time.May, 22), CheckOut: date(2025, time.May, 22)}
	require.False(t, IsActiveOn(&zero, date(2025, time.May, 22)))

	undated := domain.Booking{}
	require.False(t, IsActiveOn(&undated, date(2025, time.May, 22)))
}

func TestComputeDayInfo(t *testing.T) {
	ds := testDataset()

	// May 23: BK001 and BK002 active, BK003 cancelled
	info := ComputeDayInfo(date(2025, time.May, 23), ds, 10)
	require.Equal(t, 2, info.Occupied)
	require.Equal(t, 8, info.Available)
	require.Equal(t, "Còn 8 phòng", info.StatusText)

	// overbooked beyond capacity: available clamps at zero
	info = ComputeDayInfo(date(2025, time.May, 23), ds, 1)
	require.Equal(t, 2, info.Occupied)
	require.Equal(t, 0, info.Available)
	require.Equal(t, "Hết phòng", info.StatusText)
}

func TestComputeDailyActivity(t *testing.T) {
	ds := testDataset()

	act := ComputeDailyActivity(date(2025, time.May, 22), ds)
	require.Len(t, act.CheckIns, 1) // BK001 only; BK003 is cancelled
	require.Empty(t, act.CheckOuts)

	act = ComputeDailyActivity(date(2025, time.May, 24), ds)
	require.Empty(t, act.CheckIns)
	require.Len(t, act.CheckOuts, 1)
	require.Equal(t, "BK001", act.CheckOuts[0].BookingID)
}

func TestComputeDailyActivity_ZeroNightAppearsTwice(t *testing.T) {
	ds := dataset.FromRecords([]domain.Booking{{
		BookingID: "WALKIN", Status: "OK",
		CheckIn: date(2025, time.May, 22), CheckOut: date(2025, time.May, 22),
	}})
	act := ComputeDailyActivity(date(2025, time.May, 22), ds)
	require.Len(t, act.CheckIns, 1)
	require.Len(t, act.CheckOuts, 1)
}

func TestMonthMatrix(t *testing.T) {
	ds := testDataset()
	matrix := MonthMatrix(2025, time.May, ds, 10)
	require.Len(t, matrix, 31)
	_, hasZero := matrix[0]
	require.False(t, hasZero)

	require.Equal(t, 1, matrix[22].Occupied) // BK001 checked in
	require.Equal(t, 2, matrix[23].Occupied)
	require.Equal(t, 1, matrix[24].Occupied) // BK001 checked out, BK002 remains
	require.Equal(t, 0, matrix[26].Occupied) // BK002 checkout day
	require.Equal(t, 0, matrix[1].Occupied)
}

func TestMonthMatrix_MonthLengths(t *testing.T) {
	ds := dataset.FromRecords(nil)
	require.Len(t, MonthMatrix(2024, time.February, ds, 5), 29) // leap year
	require.Len(t, MonthMatrix(2025, time.February, ds, 5), 28)
	require.Len(t, MonthMatrix(2025, time.April, ds, 5), 30)
	require.Len(t, MonthMatrix(2025, time.December, ds, 5), 31)
}

func TestRevenueAggregates(t *testing.T) {
	ds := testDataset()

	monthly := MonthlyRevenue(ds)
	require.Len(t, monthly, 2)
	require.Equal(t, "2025-06", monthly[0].Key)
	require.True(t, monthly[0].Total.Equal(decimal.NewFromInt(1200000)))
	require.Equal(t, "2025-05", monthly[1].Key)
	require.True(t, monthly[1].Total.Equal(decimal.NewFromInt(750000)))

	rooms := RoomRevenue(ds)
	require.Equal(t, "Riverside Apartment", rooms[0].Key) // 1.650.000, cancelled excluded
	require.True(t, rooms[0].Total.Equal(decimal.NewFromInt(1650000)))
	require.Equal(t, "Old Quarter Home", rooms[1].Key)
	require.True(t, rooms[1].Total.Equal(decimal.NewFromInt(300000)))

	collectors := CollectorRevenue(ds)
	require.Equal(t, "LOC LE", collectors[0].Key)
	require.True(t, collectors[0].Total.Equal(decimal.NewFromInt(1500000)))
}
