package domain

import (
	"strconv"
	"strings"

	"homestay-backoffice/internal/normalize"

	"github.com/shopspring/decimal"
)

// Column names of the external sheet. The store keeps Vietnamese headers;
// everything internal is keyed off these constants.
const (
	ColRoomName     = "Tên chỗ nghỉ"
	ColLocation     = "Vị trí"
	ColGuestName    = "Tên người đặt"
	ColGenius       = "Thành viên Genius"
	ColCheckIn      = "Ngày đến"
	ColCheckOut     = "Ngày đi"
	ColBookedOn     = "Được đặt vào"
	ColStatus       = "Tình trạng"
	ColTotalPayment = "Tổng thanh toán"
	ColCommission   = "Hoa hồng"
	ColCurrency     = "Tiền tệ"
	ColBookingID    = "Số đặt phòng"
	ColCollector    = "Người thu tiền"
)

// Columns returns the recognized columns in the sheet's canonical order.
func Columns() []string {
	return []string{
		ColRoomName, ColLocation, ColGuestName, ColGenius,
		ColCheckIn, ColCheckOut, ColBookedOn, ColStatus,
		ColTotalPayment, ColCommission, ColCurrency,
		ColBookingID, ColCollector,
	}
}

// StatusCancelled is the store's status text for a cancelled booking; any
// other status counts as active.
const StatusCancelled = "Đã hủy"

// Row is one raw sheet row keyed by column name. Values arrive as display
// text; normalization happens when a Booking is built from it.
type Row map[string]string

// Booking is one normalized reservation.
type Booking struct {
	BookingID string
	GuestName string
	RoomName  string
	Status    string
	Collector string

	CheckIn  normalize.Date // zero = absent
	CheckOut normalize.Date
	BookedOn normalize.Date

	TotalPayment decimal.Decimal
	Commission   decimal.Decimal

	// Derived at construction time.
	StayNights    int
	PricePerNight decimal.Decimal

	// Extra keeps unrecognized columns so edits round-trip them unchanged.
	Extra map[string]string
}

// Cancelled reports whether the booking is excluded from active views.
func (b *Booking) Cancelled() bool {
	return strings.EqualFold(strings.TrimSpace(b.Status), StatusCancelled)
}

// Derive recomputes stay nights and price per night and clamps monetary
// fields to be non-negative. Zero-night stays have a zero price per night.
func (b *Booking) Derive() {
	if b.TotalPayment.IsNegative() {
		b.TotalPayment = decimal.Zero
	}
	if b.Commission.IsNegative() {
		b.Commission = decimal.Zero
	}
	b.StayNights = 0
	if !b.CheckIn.IsZero() && !b.CheckOut.IsZero() {
		if n := b.CheckIn.DaysUntil(b.CheckOut); n > 0 {
			b.StayNights = n
		}
	}
	if b.StayNights > 0 {
		b.PricePerNight = b.TotalPayment.DivRound(decimal.NewFromInt(int64(b.StayNights)), 0)
	} else {
		b.PricePerNight = decimal.Zero
	}
}

// ToRow renders the booking back into the external store's display form:
// localized date sentences and plain numeric amounts.
func (b *Booking) ToRow() Row {
	row := Row{
		ColRoomName:     b.RoomName,
		ColGuestName:    b.GuestName,
		ColStatus:       b.Status,
		ColCollector:    b.Collector,
		ColBookingID:    b.BookingID,
		ColCheckIn:      normalize.FormatDate(b.CheckIn),
		ColCheckOut:     normalize.FormatDate(b.CheckOut),
		ColBookedOn:     normalize.FormatDate(b.BookedOn),
		ColTotalPayment: b.TotalPayment.String(),
		ColCommission:   b.Commission.String(),
	}
	for k, v := range b.Extra {
		row[k] = v
	}
	return row
}

// ToJSON converts the booking into a plain map for HTTP responses. Dates are
// ISO strings, amounts are numbers.
func (b *Booking) ToJSON() map[string]any {
	m := map[string]any{
		"booking_id":      b.BookingID,
		"guest_name":      b.GuestName,
		"room_name":       b.RoomName,
		"status":          b.Status,
		"cancelled":       b.Cancelled(),
		"collector":       b.Collector,
		"total_payment":   b.TotalPayment.InexactFloat64(),
		"commission":      b.Commission.InexactFloat64(),
		"stay_nights":     b.StayNights,
		"price_per_night": b.PricePerNight.InexactFloat64(),
	}
	if !b.CheckIn.IsZero() {
		m["check_in"] = b.CheckIn.String()
	}
	if !b.CheckOut.IsZero() {
		m["check_out"] = b.CheckOut.String()
	}
	if !b.BookedOn.IsZero() {
		m["booked_on"] = b.BookedOn.String()
	}
	if len(b.Extra) > 0 {
		m["extra"] = b.Extra
	}
	return m
}

// SearchText returns the lower-cased concatenation of every field's string
// form, used by full-row substring search.
func (b *Booking) SearchText() string {
	parts := []string{
		b.BookingID, b.GuestName, b.RoomName, b.Status, b.Collector,
		b.CheckIn.String(), b.CheckOut.String(), b.BookedOn.String(),
		b.TotalPayment.String(), b.Commission.String(),
		strconv.Itoa(b.StayNights), b.PricePerNight.String(),
	}
	for _, v := range b.Extra {
		parts = append(parts, v)
	}
	return strings.ToLower(strings.Join(parts, " "))
}
