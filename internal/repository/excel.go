package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"homestay-backoffice/internal/domain"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExcelStore keeps the bookings in a local .xlsx workbook. It implements the
// same BookingSheet interface as the Google Sheets client, so deployments
// without sheet credentials still get a working store (and it is what the
// import/export endpoints read and write).
type ExcelStore struct {
	path   string
	sheet  string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewExcelStore(path, sheet string, logger *zap.Logger) *ExcelStore {
	if sheet == "" {
		sheet = "Bookings"
	}
	return &ExcelStore{path: path, sheet: sheet, logger: logger}
}

func (s *ExcelStore) open() (*excelize.File, []string, [][]string, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open workbook %s: %w", s.path, err)
	}
	all, err := f.GetRows(s.sheet)
	if err != nil {
		f.Close()
		return nil, nil, nil, fmt.Errorf("failed to read sheet %q: %w", s.sheet, err)
	}
	if len(all) == 0 {
		f.Close()
		return nil, nil, nil, fmt.Errorf("sheet %q is empty", s.sheet)
	}
	return f, all[0], all[1:], nil
}

// Rows implements BookingSheet.
func (s *ExcelStore) Rows(ctx context.Context) ([]domain.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, headers, data, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := make([]domain.Row, 0, len(data))
	for _, cells := range data {
		row := domain.Row{}
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	s.logger.Info("loaded rows from workbook",
		zap.String("path", s.path),
		zap.Int("row_count", len(rows)),
	)
	return rows, nil
}

// Append implements BookingSheet. A missing workbook is created with the
// canonical header row so a fresh deployment can start from nothing; any
// other open failure surfaces as-is, never by rebuilding the file.
func (s *ExcelStore) Append(ctx context.Context, row domain.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, headers, data, err := s.open()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		f, headers, err = s.create()
		if err != nil {
			return err
		}
		data = nil
	}
	defer f.Close()

	rowNum := len(data) + 2
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(s.sheet, cell, toCellSlice(orderedCells(headers, row))); err != nil {
		return fmt.Errorf("failed to write booking row: %w", err)
	}
	return s.save(f)
}

// Update implements BookingSheet.
func (s *ExcelStore) Update(ctx context.Context, id string, row domain.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, headers, data, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rowNum, ok := findRow(headers, data, id)
	if !ok {
		return ErrNotFound
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(s.sheet, cell, toCellSlice(orderedCells(headers, row))); err != nil {
		return fmt.Errorf("failed to update booking row: %w", err)
	}
	return s.save(f)
}

// Delete implements BookingSheet.
func (s *ExcelStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, headers, data, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	rowNum, ok := findRow(headers, data, id)
	if !ok {
		return ErrNotFound
	}
	if err := f.RemoveRow(s.sheet, rowNum); err != nil {
		return fmt.Errorf("failed to remove booking row: %w", err)
	}
	return s.save(f)
}

func (s *ExcelStore) create() (*excelize.File, []string, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(s.sheet); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	headers := domain.Columns()
	if err := f.SetSheetRow(s.sheet, "A1", toCellSlice(headers)); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to write header row: %w", err)
	}
	s.logger.Info("created new booking workbook", zap.String("path", s.path))
	return f, headers, nil
}

func (s *ExcelStore) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return nil
}

func toCellSlice(cells []string) *[]any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return &out
}
