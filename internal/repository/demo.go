package repository

import (
	"fmt"

	"homestay-backoffice/internal/domain"
)

// DemoRows is the fixed fallback dataset used when the external store is
// unreachable or empty, so the back office stays usable in degraded mode.
// Five bookings, one cancelled.
func DemoRows() []domain.Row {
	type demo struct {
		room, location, guest, genius string
		checkIn, checkOut, bookedOn   string
		status, total, commission     string
		collector                     string
	}
	demos := []demo{
		{
			room: "Home in Old Quarter - Night market", location: "Phố Cổ Hà Nội, Hoàn Kiếm, Vietnam",
			guest: "Demo User Alpha", genius: "Không",
			checkIn: "ngày 22 tháng 5 năm 2025", checkOut: "ngày 23 tháng 5 năm 2025", bookedOn: "ngày 20 tháng 5 năm 2025",
			status: "OK", total: "300000", commission: "60000", collector: "LOC LE",
		},
		{
			room: "Old Quarter Home- Kitchen & Balcony", location: "118 Phố Hàng Bạc, Hoàn Kiếm, Vietnam",
			guest: "Demo User Beta", genius: "Có",
			checkIn: "ngày 23 tháng 5 năm 2025", checkOut: "ngày 24 tháng 5 năm 2025", bookedOn: "ngày 21 tháng 5 năm 2025",
			status: "OK", total: "450000", commission: "90000", collector: "THAO LE",
		},
		{
			room: "Home in Old Quarter - Night market", location: "Phố Cổ Hà Nội, Hoàn Kiếm, Vietnam",
			guest: "Demo User Alpha", genius: "Không",
			checkIn: "ngày 25 tháng 5 năm 2025", checkOut: "ngày 26 tháng 5 năm 2025", bookedOn: "ngày 22 tháng 5 năm 2025",
			status: domain.StatusCancelled, total: "200000", commission: "40000", collector: "LOC LE",
		},
		{
			room: "Old Quarter Home- Kitchen & Balcony", location: "118 Phố Hàng Bạc, Hoàn Kiếm, Vietnam",
			guest: "Demo User Gamma", genius: "Có",
			checkIn: "ngày 26 tháng 5 năm 2025", checkOut: "ngày 28 tháng 5 năm 2025", bookedOn: "ngày 23 tháng 5 năm 2025",
			status: "OK", total: "600000", commission: "120000", collector: "THAO LE",
		},
		{
			room: "Riverside Boutique Apartment", location: "Quận 2, TP. Hồ Chí Minh, Vietnam",
			guest: "Demo User Delta", genius: "Không",
			checkIn: "ngày 1 tháng 6 năm 2025", checkOut: "ngày 5 tháng 6 năm 2025", bookedOn: "ngày 25 tháng 5 năm 2025",
			status: "OK", total: "1200000", commission: "240000", collector: "LOC LE",
		},
	}

	rows := make([]domain.Row, 0, len(demos))
	for i, d := range demos {
		rows = append(rows, domain.Row{
			domain.ColRoomName:     d.room,
			domain.ColLocation:     d.location,
			domain.ColGuestName:    d.guest,
			domain.ColGenius:       d.genius,
			domain.ColCheckIn:      d.checkIn,
			domain.ColCheckOut:     d.checkOut,
			domain.ColBookedOn:     d.bookedOn,
			domain.ColStatus:       d.status,
			domain.ColTotalPayment: d.total,
			domain.ColCommission:   d.commission,
			domain.ColCurrency:     "VND",
			domain.ColBookingID:    fmt.Sprintf("DEMO%09d", i+1),
			domain.ColCollector:    d.collector,
		})
	}
	return rows
}
