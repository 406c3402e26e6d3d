package dataset

import (
	"sort"
	"strings"

	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/normalize"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Field names the dataset understands for sorting and grouping.
type Field string

const (
	FieldBookingID     Field = "booking_id"
	FieldGuestName     Field = "guest_name"
	FieldRoomName      Field = "room_name"
	FieldStatus        Field = "status"
	FieldCollector     Field = "collector"
	FieldCheckIn       Field = "check_in"
	FieldCheckOut      Field = "check_out"
	FieldBookedOn      Field = "booked_on"
	FieldTotalPayment  Field = "total_payment"
	FieldCommission    Field = "commission"
	FieldStayNights    Field = "stay_nights"
	FieldPricePerNight Field = "price_per_night"
	// FieldCheckInMonth buckets by the yyyy-mm of the check-in date.
	FieldCheckInMonth Field = "check_in_month"
)

// Dataset is one immutable snapshot of normalized bookings. Operations never
// mutate it; filters return new views over copied slices.
type Dataset struct {
	records []domain.Booking
}

// New builds a snapshot from raw sheet rows. Date and currency fields go
// through the normalizers here, derived fields are computed, and duplicate
// booking ids are dropped (first occurrence wins).
func New(rows []domain.Row, logger *zap.Logger) *Dataset {
	if logger == nil {
		logger = zap.NewNop()
	}
	records := make([]domain.Booking, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		b := fromRow(row)
		if b.BookingID != "" {
			if seen[b.BookingID] {
				logger.Warn("duplicate booking id in sheet, keeping first",
					zap.String("booking_id", b.BookingID))
				continue
			}
			seen[b.BookingID] = true
		}
		records = append(records, b)
	}
	return &Dataset{records: records}
}

// FromRecords wraps already-normalized bookings (demo data, tests).
func FromRecords(records []domain.Booking) *Dataset {
	out := make([]domain.Booking, len(records))
	copy(out, records)
	for i := range out {
		out[i].Derive()
	}
	return &Dataset{records: out}
}

func fromRow(row domain.Row) domain.Booking {
	b := domain.Booking{
		BookingID: strings.TrimSpace(row[domain.ColBookingID]),
		GuestName: strings.TrimSpace(row[domain.ColGuestName]),
		RoomName:  strings.TrimSpace(row[domain.ColRoomName]),
		Status:    strings.TrimSpace(row[domain.ColStatus]),
		Collector: strings.TrimSpace(row[domain.ColCollector]),
	}
	b.CheckIn, _ = normalize.ParseDate(normalize.FromText(row[domain.ColCheckIn]))
	b.CheckOut, _ = normalize.ParseDate(normalize.FromText(row[domain.ColCheckOut]))
	b.BookedOn, _ = normalize.ParseDate(normalize.FromText(row[domain.ColBookedOn]))
	b.TotalPayment = normalize.ParseAmount(row[domain.ColTotalPayment])
	b.Commission = normalize.ParseAmount(row[domain.ColCommission])

	recognized := map[string]bool{
		domain.ColBookingID: true, domain.ColGuestName: true,
		domain.ColRoomName: true, domain.ColStatus: true,
		domain.ColCollector: true, domain.ColCheckIn: true,
		domain.ColCheckOut: true, domain.ColBookedOn: true,
		domain.ColTotalPayment: true, domain.ColCommission: true,
	}
	for k, v := range row {
		if !recognized[k] {
			if b.Extra == nil {
				b.Extra = map[string]string{}
			}
			b.Extra[k] = v
		}
	}
	b.Derive()
	return b
}

// Records returns the snapshot's bookings in load order. Callers must not
// mutate the returned slice.
func (d *Dataset) Records() []domain.Booking { return d.records }

func (d *Dataset) Len() int { return len(d.records) }

// FindByID returns the booking with the given id, or ok=false.
func (d *Dataset) FindByID(id string) (domain.Booking, bool) {
	for _, b := range d.records {
		if b.BookingID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// Active returns a view without cancelled bookings.
func (d *Dataset) Active() *Dataset {
	out := make([]domain.Booking, 0, len(d.records))
	for _, b := range d.records {
		if !b.Cancelled() {
			out = append(out, b)
		}
	}
	return &Dataset{records: out}
}

// FilterSpec describes the dashboard filters. A zero date, empty selector
// set (or one containing "All"), or nil price bound is a no-op for that
// dimension, matching the UI convention that an empty selector means
// "everything", not "nothing".
type FilterSpec struct {
	Start      normalize.Date
	End        normalize.Date
	RoomNames  []string
	Collectors []string
	MinPayment *decimal.Decimal
	MaxPayment *decimal.Decimal
}

func selectorActive(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), "all") || strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

func memberOf(values []string, v string) bool {
	for _, x := range values {
		if strings.TrimSpace(x) == v {
			return true
		}
	}
	return false
}

// Filter returns a view of the bookings matching every active dimension.
// The date dimension matches stays whose [check_in, check_out] interval
// overlaps the [start, end] range inclusively; bookings with an unparsed
// check-in or check-out are excluded once a date bound is set.
func (d *Dataset) Filter(spec FilterSpec) *Dataset {
	rooms := selectorActive(spec.RoomNames)
	collectors := selectorActive(spec.Collectors)
	dateBound := !spec.Start.IsZero() || !spec.End.IsZero()

	out := make([]domain.Booking, 0, len(d.records))
	for _, b := range d.records {
		if dateBound {
			if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
				continue
			}
			if !spec.End.IsZero() && b.CheckIn.After(spec.End) {
				continue
			}
			if !spec.Start.IsZero() && b.CheckOut.Before(spec.Start) {
				continue
			}
		}
		if rooms && !memberOf(spec.RoomNames, b.RoomName) {
			continue
		}
		if collectors && !memberOf(spec.Collectors, b.Collector) {
			continue
		}
		if spec.MinPayment != nil && b.TotalPayment.LessThan(*spec.MinPayment) {
			continue
		}
		if spec.MaxPayment != nil && b.TotalPayment.GreaterThan(*spec.MaxPayment) {
			continue
		}
		out = append(out, b)
	}
	return &Dataset{records: out}
}

// GroupTotal is one (key, total) aggregate.
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
}

// GroupSum groups the bookings by a key field and sums a value field,
// sorted descending by total with ties broken by key ascending so the
// rendering order is deterministic. Records whose key is empty (e.g. an
// absent check-in when bucketing by month) are skipped.
func (d *Dataset) GroupSum(by, value Field) []GroupTotal {
	totals := map[string]decimal.Decimal{}
	for _, b := range d.records {
		key := keyOf(&b, by)
		if key == "" {
			continue
		}
		totals[key] = totals[key].Add(valueOf(&b, value))
	}
	out := make([]GroupTotal, 0, len(totals))
	for k, v := range totals {
		out = append(out, GroupTotal{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func keyOf(b *domain.Booking, f Field) string {
	switch f {
	case FieldBookingID:
		return b.BookingID
	case FieldGuestName:
		return b.GuestName
	case FieldRoomName:
		return b.RoomName
	case FieldStatus:
		return b.Status
	case FieldCollector:
		return b.Collector
	case FieldCheckIn:
		return b.CheckIn.String()
	case FieldCheckOut:
		return b.CheckOut.String()
	case FieldBookedOn:
		return b.BookedOn.String()
	case FieldCheckInMonth:
		return b.CheckIn.MonthKey()
	}
	return ""
}

func valueOf(b *domain.Booking, f Field) decimal.Decimal {
	switch f {
	case FieldTotalPayment:
		return b.TotalPayment
	case FieldCommission:
		return b.Commission
	case FieldPricePerNight:
		return b.PricePerNight
	case FieldStayNights:
		return decimal.NewFromInt(int64(b.StayNights))
	}
	return decimal.Zero
}

// Search returns the bookings whose full-row string form contains the term,
// case-insensitively, in original order. An empty term matches everything.
// Linear scan; fine at back-office data volumes.
func (d *Dataset) Search(term string) []domain.Booking {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]domain.Booking, len(d.records))
		copy(out, d.records)
		return out
	}
	out := []domain.Booking{}
	for _, b := range d.records {
		if strings.Contains(b.SearchText(), term) {
			out = append(out, b)
		}
	}
	return out
}

// Sort returns the bookings stably ordered by the given field. Records with
// a missing or unparseable value for the field sort last regardless of
// direction.
func (d *Dataset) Sort(by Field, ascending bool) []domain.Booking {
	out := make([]domain.Booking, len(d.records))
	copy(out, d.records)
	sort.SliceStable(out, func(i, j int) bool {
		iv, iok := sortValue(&out[i], by)
		jv, jok := sortValue(&out[j], by)
		if iok != jok {
			return iok // present values always come first
		}
		if !iok {
			return false
		}
		if iv.numeric && jv.numeric {
			if ascending {
				return iv.num.LessThan(jv.num)
			}
			return iv.num.GreaterThan(jv.num)
		}
		if ascending {
			return iv.str < jv.str
		}
		return iv.str > jv.str
	})
	return out
}

type sortKey struct {
	numeric bool
	num     decimal.Decimal
	str     string
}

func sortValue(b *domain.Booking, f Field) (sortKey, bool) {
	switch f {
	case FieldTotalPayment, FieldCommission, FieldPricePerNight, FieldStayNights:
		return sortKey{numeric: true, num: valueOf(b, f)}, true
	case FieldCheckIn:
		return sortKey{str: b.CheckIn.String()}, !b.CheckIn.IsZero()
	case FieldCheckOut:
		return sortKey{str: b.CheckOut.String()}, !b.CheckOut.IsZero()
	case FieldBookedOn:
		return sortKey{str: b.BookedOn.String()}, !b.BookedOn.IsZero()
	case FieldBookingID, FieldGuestName, FieldRoomName, FieldStatus, FieldCollector:
		s := keyOf(b, f)
		return sortKey{str: strings.ToLower(s)}, s != ""
	}
	return sortKey{}, false
}

// RoomNames returns the distinct, trimmed, sorted room names for filter
// dropdowns.
func (d *Dataset) RoomNames() []string {
	return d.distinct(func(b *domain.Booking) string { return b.RoomName })
}

// Collectors returns the distinct, trimmed, sorted collector names.
func (d *Dataset) Collectors() []string {
	return d.distinct(func(b *domain.Booking) string { return b.Collector })
}

func (d *Dataset) distinct(get func(*domain.Booking) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, b := range d.records {
		v := strings.TrimSpace(get(&b))
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// MinCheckIn and MaxCheckOut bound the snapshot's stay dates; ok=false when
// no record has a parsed date.
func (d *Dataset) MinCheckIn() (normalize.Date, bool) {
	var min normalize.Date
	for _, b := range d.records {
		if b.CheckIn.IsZero() {
			continue
		}
		if min.IsZero() || b.CheckIn.Before(min) {
			min = b.CheckIn
		}
	}
	return min, !min.IsZero()
}

func (d *Dataset) MaxCheckOut() (normalize.Date, bool) {
	var max normalize.Date
	for _, b := range d.records {
		if b.CheckOut.IsZero() {
			continue
		}
		if max.IsZero() || b.CheckOut.After(max) {
			max = b.CheckOut
		}
	}
	return max, !max.IsZero()
}
