package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"homestay-backoffice/internal/domain"
)

func excelRow(id string) domain.Row {
	return domain.Row{
		domain.ColBookingID:    id,
		domain.ColGuestName:    "NGUYEN VAN A",
		domain.ColRoomName:     "Phòng Deluxe",
		domain.ColCheckIn:      "ngày 22 tháng 5 năm 2025",
		domain.ColCheckOut:     "ngày 24 tháng 5 năm 2025",
		domain.ColStatus:       "OK",
		domain.ColTotalPayment: "500000",
		domain.ColCollector:    "LOC LE",
	}
}

func TestExcelStoreAppendCreatesMissingWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	store := NewExcelStore(path, "Bookings", zap.NewNop())

	require.NoError(t, store.Append(context.Background(), excelRow("BK001")))

	rows, err := store.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "BK001", rows[0][domain.ColBookingID])
}

func TestExcelStoreAppendKeepsForeignWorkbookIntact(t *testing.T) {
	// A workbook that exists but lacks the configured sheet must not be
	// rebuilt on a write; the append fails and the file stays as it was.
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Ledger")
	require.NoError(t, err)
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SetSheetRow("Ledger", "A1", &[]any{"account", "balance"}))
	require.NoError(t, f.SetSheetRow("Ledger", "A2", &[]any{"cash", "1200000"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := NewExcelStore(path, "Bookings", zap.NewNop())
	require.Error(t, store.Append(context.Background(), excelRow("BK001")))

	reopened, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()
	rows, err := reopened.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"cash", "1200000"}, rows[1])
}

func TestExcelStoreUpdateAndDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	store := NewExcelStore(path, "Bookings", zap.NewNop())
	require.NoError(t, store.Append(context.Background(), excelRow("BK001")))
	require.NoError(t, store.Append(context.Background(), excelRow("BK002")))

	updated := excelRow("BK001")
	updated[domain.ColGuestName] = "TRAN THI B"
	require.NoError(t, store.Update(context.Background(), "BK001", updated))

	require.ErrorIs(t, store.Update(context.Background(), "NOPE", updated), ErrNotFound)

	require.NoError(t, store.Delete(context.Background(), "BK002"))
	require.ErrorIs(t, store.Delete(context.Background(), "BK002"), ErrNotFound)

	rows, err := store.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "TRAN THI B", rows[0][domain.ColGuestName])
}
