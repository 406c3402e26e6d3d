package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/repository"
)

// fakeSheet is an in-memory BookingSheet for tests.
type fakeSheet struct {
	rows    []domain.Row
	rowsErr error
	calls   int
}

func (f *fakeSheet) Rows(ctx context.Context) ([]domain.Row, error) {
	f.calls++
	if f.rowsErr != nil {
		return nil, f.rowsErr
	}
	out := make([]domain.Row, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeSheet) Append(ctx context.Context, row domain.Row) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSheet) Update(ctx context.Context, bookingID string, row domain.Row) error {
	for i, r := range f.rows {
		if r[domain.ColBookingID] == bookingID {
			f.rows[i] = row
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeSheet) Delete(ctx context.Context, bookingID string) error {
	for i, r := range f.rows {
		if r[domain.ColBookingID] == bookingID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func testRow(id string) domain.Row {
	return domain.Row{
		domain.ColBookingID:    id,
		domain.ColGuestName:    "NGUYEN VAN A",
		domain.ColRoomName:     "Phòng Deluxe",
		domain.ColCheckIn:      "ngày 22 tháng 5 năm 2025",
		domain.ColCheckOut:     "ngày 24 tháng 5 năm 2025",
		domain.ColStatus:       "OK",
		domain.ColTotalPayment: "500.000 VND",
		domain.ColCommission:   "75.000",
		domain.ColCollector:    "LOC LE",
	}
}

func newTestService(sheet repository.BookingSheet) BookingService {
	return NewBookingService(sheet, zap.NewNop())
}

func TestBookingServiceDataset(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001"), testRow("BK002")}}
	svc := newTestService(sheet)

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	// Second read hits the snapshot, not the sheet.
	_, err = svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, sheet.calls)
}

func TestBookingServiceDemoFallback(t *testing.T) {
	sheet := &fakeSheet{rowsErr: errors.New("sheet unreachable")}
	svc := newTestService(sheet)

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(repository.DemoRows()), ds.Len())
}

func TestBookingServiceDemoFallbackOnEmpty(t *testing.T) {
	sheet := &fakeSheet{}
	svc := newTestService(sheet)

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(repository.DemoRows()), ds.Len())
}

func TestBookingServiceAdd(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	// Warm the cache so we can verify invalidation.
	_, err := svc.Dataset(context.Background())
	require.NoError(t, err)

	id, err := svc.Add(context.Background(), BookingForm{
		GuestName:    "TRAN THI B",
		RoomName:     "Phòng Garden",
		CheckIn:      "2025-06-01",
		CheckOut:     "2025-06-03",
		TotalPayment: "1.200.000",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, ds.Len())

	b, ok := ds.FindByID(id)
	require.True(t, ok)
	require.Equal(t, "TRAN THI B", b.GuestName)
	require.Equal(t, 2, b.StayNights)
	require.Equal(t, "OK", b.Status)
}

func TestBookingServiceAddKeepsGivenID(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	id, err := svc.Add(context.Background(), BookingForm{
		BookingID: "BK777",
		CheckIn:   "2025-06-01",
		CheckOut:  "2025-06-02",
	})
	require.NoError(t, err)
	require.Equal(t, "BK777", id)
}

func TestBookingServiceAddRejectsDuplicateID(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	_, err := svc.Add(context.Background(), BookingForm{
		BookingID: "BK001",
		CheckIn:   "2025-06-01",
		CheckOut:  "2025-06-02",
	})
	require.Error(t, err)
}

func TestBookingServiceAddRejectsBadDates(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	_, err := svc.Add(context.Background(), BookingForm{CheckIn: "not a date", CheckOut: "2025-06-02"})
	require.Error(t, err)

	// Check-out before check-in.
	_, err = svc.Add(context.Background(), BookingForm{CheckIn: "2025-06-05", CheckOut: "2025-06-02"})
	require.Error(t, err)
}

func TestBookingServiceUpdate(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	err := svc.Update(context.Background(), "BK001", BookingForm{
		GuestName:    "NGUYEN VAN A",
		RoomName:     "Phòng Deluxe",
		CheckIn:      "2025-05-22",
		CheckOut:     "2025-05-25",
		TotalPayment: "750.000",
	})
	require.NoError(t, err)

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	b, ok := ds.FindByID("BK001")
	require.True(t, ok)
	require.Equal(t, 3, b.StayNights)
	require.Equal(t, "750000", b.TotalPayment.String())
}

func TestBookingServiceUpdateNotFound(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	err := svc.Update(context.Background(), "NOPE", BookingForm{
		CheckIn:  "2025-05-22",
		CheckOut: "2025-05-25",
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookingServiceDelete(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001"), testRow("BK002")}}
	svc := newTestService(sheet)

	require.NoError(t, svc.Delete(context.Background(), "BK001"))

	ds, err := svc.Dataset(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	_, ok := ds.FindByID("BK001")
	require.False(t, ok)

	require.ErrorIs(t, svc.Delete(context.Background(), "BK001"), ErrNotFound)
}

func TestBookingServiceFindByID(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	b, err := svc.FindByID(context.Background(), "BK001")
	require.NoError(t, err)
	require.Equal(t, "BK001", b.BookingID)

	_, err = svc.FindByID(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBookingServiceExport(t *testing.T) {
	sheet := &fakeSheet{rows: []domain.Row{testRow("BK001")}}
	svc := newTestService(sheet)

	data, err := svc.Export(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// xlsx files are zip archives.
	require.Equal(t, []byte{'P', 'K'}, data[:2])
}
