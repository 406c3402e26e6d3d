package dataset

import (
	"testing"
	"time"

	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/normalize"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleRows() []domain.Row {
	return []domain.Row{
		{
			domain.ColBookingID:    "BK001",
			domain.ColGuestName:    "Nguyen Van A",
			domain.ColRoomName:     "Old Quarter Home",
			domain.ColCheckIn:      "ngày 22 tháng 5 năm 2025",
			domain.ColCheckOut:     "ngày 24 tháng 5 năm 2025",
			domain.ColBookedOn:     "ngày 20 tháng 5 năm 2025",
			domain.ColStatus:       "OK",
			domain.ColTotalPayment: "300.000 VND",
			domain.ColCommission:   "60.000",
			domain.ColCollector:    "LOC LE",
			"Tiền tệ":              "VND",
		},
		{
			domain.ColBookingID:    "BK002",
			domain.ColGuestName:    "Tran Thi B",
			domain.ColRoomName:     "Riverside Apartment",
			domain.ColCheckIn:      "2025-05-23",
			domain.ColCheckOut:     "2025-05-26",
			domain.ColStatus:       "Đã hủy",
			domain.ColTotalPayment: "450.000",
			domain.ColCollector:    "THAO LE",
		},
		{
			domain.ColBookingID:    "BK003",
			domain.ColGuestName:    "Le Van C",
			domain.ColRoomName:     "Old Quarter Home",
			domain.ColCheckIn:      "1/6/2025",
			domain.ColCheckOut:     "5/6/2025",
			domain.ColStatus:       "OK",
			domain.ColTotalPayment: "1.200.000",
			domain.ColCollector:    "LOC LE",
		},
		{
			// no dates, no amount: still loads
			domain.ColBookingID: "BK004",
			domain.ColGuestName: "Pham D",
			domain.ColRoomName:  "Riverside Apartment",
			domain.ColStatus:    "OK",
			domain.ColCollector: "THAO LE",
		},
	}
}

func TestNew_NormalizesAndDerives(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	require.Equal(t, 4, ds.Len())

	b, ok := ds.FindByID("BK001")
	require.True(t, ok)
	require.Equal(t, normalize.NewDate(2025, time.May, 22), b.CheckIn)
	require.Equal(t, normalize.NewDate(2025, time.May, 24), b.CheckOut)
	require.Equal(t, 2, b.StayNights)
	require.True(t, b.TotalPayment.Equal(decimal.NewFromInt(300000)))
	require.True(t, b.PricePerNight.Equal(decimal.NewFromInt(150000)))
	require.Equal(t, "VND", b.Extra["Tiền tệ"])

	b, ok = ds.FindByID("BK004")
	require.True(t, ok)
	require.True(t, b.CheckIn.IsZero())
	require.Equal(t, 0, b.StayNights)
	require.True(t, b.TotalPayment.IsZero())
	require.True(t, b.PricePerNight.IsZero())
}

func TestNew_DropsDuplicateIDs(t *testing.T) {
	rows := sampleRows()
	dup := domain.Row{domain.ColBookingID: "BK001", domain.ColGuestName: "Impostor"}
	rows = append(rows, dup)
	ds := New(rows, zap.NewNop())
	require.Equal(t, 4, ds.Len())
	b, _ := ds.FindByID("BK001")
	require.Equal(t, "Nguyen Van A", b.GuestName)
}

func TestFindByID_NotFound(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	_, ok := ds.FindByID("nope")
	require.False(t, ok)
}

func TestActive_ExcludesCancelled(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	active := ds.Active()
	require.Equal(t, 3, active.Len())
	_, ok := active.FindByID("BK002")
	require.False(t, ok)
}

func TestFilter_AllSelectorIsNoOp(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	for _, sel := range [][]string{nil, {}, {"All"}, {"all"}, {""}} {
		got := ds.Filter(FilterSpec{RoomNames: sel})
		require.Equal(t, ds.Len(), got.Len(), "selector %v", sel)
	}
}

func TestFilter_Dimensions(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())

	got := ds.Filter(FilterSpec{RoomNames: []string{"Old Quarter Home"}})
	require.Equal(t, 2, got.Len())

	got = ds.Filter(FilterSpec{Collectors: []string{"THAO LE"}})
	require.Equal(t, 2, got.Len())

	min := decimal.NewFromInt(400000)
	got = ds.Filter(FilterSpec{MinPayment: &min})
	require.Equal(t, 2, got.Len()) // BK002 and BK003

	max := decimal.NewFromInt(400000)
	got = ds.Filter(FilterSpec{MaxPayment: &max})
	require.Equal(t, 2, got.Len()) // BK001 and BK004 (absent amount = 0)
}

func TestFilter_DateOverlapExcludesUndated(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	got := ds.Filter(FilterSpec{
		Start: normalize.NewDate(2025, time.May, 1),
		End:   normalize.NewDate(2025, time.May, 31),
	})
	// BK001 and BK002 overlap May; BK003 is June; BK004 has no dates
	require.Equal(t, 2, got.Len())

	// a range starting on a stay's checkout day still overlaps it
	got = ds.Filter(FilterSpec{
		Start: normalize.NewDate(2025, time.May, 24),
		End:   normalize.NewDate(2025, time.May, 24),
	})
	_, ok := got.FindByID("BK001")
	require.True(t, ok)
}

func TestGroupSum_OrderAndTiebreak(t *testing.T) {
	records := []domain.Booking{
		{BookingID: "1", RoomName: "B", TotalPayment: decimal.NewFromInt(100)},
		{BookingID: "2", RoomName: "A", TotalPayment: decimal.NewFromInt(100)},
		{BookingID: "3", RoomName: "C", TotalPayment: decimal.NewFromInt(50)},
	}
	ds := FromRecords(records)
	got := ds.GroupSum(FieldRoomName, FieldTotalPayment)
	require.Len(t, got, 3)
	require.Equal(t, "A", got[0].Key)
	require.Equal(t, "B", got[1].Key)
	require.Equal(t, "C", got[2].Key)
}

func TestGroupSum_MonthBucketSkipsAbsentDates(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	got := ds.GroupSum(FieldCheckInMonth, FieldTotalPayment)
	require.Len(t, got, 2)
	require.Equal(t, "2025-06", got[0].Key) // 1.200.000
	require.Equal(t, "2025-05", got[1].Key) // 750.000
}

func TestSearch_FullRowCaseInsensitive(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	require.Len(t, ds.Search("nguyen"), 1)
	require.Len(t, ds.Search("BK00"), 4)
	require.Len(t, ds.Search("riverside"), 2)
	require.Len(t, ds.Search("2025-05-23"), 1) // matches normalized date text
	require.Len(t, ds.Search(""), 4)
	require.Empty(t, ds.Search("zzz"))
}

func TestSearch_MatchesDerivedNights(t *testing.T) {
	rows := []domain.Row{
		{
			domain.ColBookingID: "LONGSTAY",
			domain.ColGuestName: "Guest A",
			domain.ColCheckIn:   "2030-03-03",
			domain.ColCheckOut:  "2030-03-20", // 17 nights
		},
		{
			domain.ColBookingID: "SHORT",
			domain.ColGuestName: "Guest B",
			domain.ColCheckIn:   "2030-03-03",
			domain.ColCheckOut:  "2030-03-04",
		},
	}
	ds := New(rows, zap.NewNop())

	got := ds.Search("17")
	require.Len(t, got, 1)
	require.Equal(t, "LONGSTAY", got[0].BookingID)
}

func TestSort_MissingValuesLast(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())

	asc := ds.Sort(FieldCheckIn, true)
	require.Equal(t, "BK001", asc[0].BookingID)
	require.Equal(t, "BK004", asc[len(asc)-1].BookingID) // undated last

	desc := ds.Sort(FieldCheckIn, false)
	require.Equal(t, "BK003", desc[0].BookingID)
	require.Equal(t, "BK004", desc[len(desc)-1].BookingID) // still last

	byPay := ds.Sort(FieldTotalPayment, false)
	require.Equal(t, "BK003", byPay[0].BookingID)
}

func TestDistinctAndBounds(t *testing.T) {
	ds := New(sampleRows(), zap.NewNop())
	require.Equal(t, []string{"Old Quarter Home", "Riverside Apartment"}, ds.RoomNames())
	require.Equal(t, []string{"LOC LE", "THAO LE"}, ds.Collectors())

	min, ok := ds.MinCheckIn()
	require.True(t, ok)
	require.Equal(t, normalize.NewDate(2025, time.May, 22), min)
	max, ok := ds.MaxCheckOut()
	require.True(t, ok)
	require.Equal(t, normalize.NewDate(2025, time.June, 5), max)
}
