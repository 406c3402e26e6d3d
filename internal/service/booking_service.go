package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"homestay-backoffice/internal/dataset"
	"homestay-backoffice/internal/domain"
	"homestay-backoffice/internal/normalize"
	"homestay-backoffice/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is the service-level sentinel for a missing booking id.
var ErrNotFound = errors.New("booking not found")

// BookingForm carries user-submitted booking fields. Dates arrive as the UI
// sends them (ISO yyyy-mm-dd from date inputs, but any form the normalizer
// accepts works); amounts are free text run through the currency normalizer.
type BookingForm struct {
	BookingID    string `json:"booking_id"`
	GuestName    string `json:"guest_name"`
	RoomName     string `json:"room_name"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
	BookedOn     string `json:"booked_on"`
	Status       string `json:"status"`
	TotalPayment string `json:"total_payment"`
	Commission   string `json:"commission"`
	Collector    string `json:"collector"`
}

// BookingService is the booking read/write surface. Reads go through the
// snapshot cache; writes go to the external sheet store and then invalidate
// the cache, so readers only ever see fully loaded snapshots.
type BookingService interface {
	// Dataset returns the live snapshot (loading it on demand).
	Dataset(ctx context.Context) (*dataset.Dataset, error)
	// FindByID returns the booking or ErrNotFound.
	FindByID(ctx context.Context, id string) (domain.Booking, error)
	// Add appends a new booking; a blank id is generated.
	Add(ctx context.Context, form BookingForm) (string, error)
	// Update replaces the booking with the given id.
	Update(ctx context.Context, id string, form BookingForm) error
	// Delete removes the booking with the given id.
	Delete(ctx context.Context, id string) error
	// Export renders the current snapshot as a downloadable workbook.
	Export(ctx context.Context) ([]byte, error)
}

type bookingService struct {
	sheet  repository.BookingSheet
	cache  *SnapshotCache
	logger *zap.Logger
}

// NewBookingService wires the sheet store behind a fresh snapshot cache.
// Load failures and empty sheets fall back to the demo dataset so the UI
// stays functional in degraded mode.
func NewBookingService(sheet repository.BookingSheet, logger *zap.Logger) BookingService {
	s := &bookingService{sheet: sheet, logger: logger}
	s.cache = NewSnapshotCache(s.loadDataset)
	return s
}

func (s *bookingService) loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil || len(rows) == 0 {
		s.logger.Warn("failed to load bookings from store, using demo dataset",
			zap.Error(err),
			zap.Int("row_count", len(rows)),
		)
		rows = repository.DemoRows()
	}
	return dataset.New(rows, s.logger), nil
}

func (s *bookingService) Dataset(ctx context.Context) (*dataset.Dataset, error) {
	return s.cache.GetOrLoad(ctx)
}

func (s *bookingService) FindByID(ctx context.Context, id string) (domain.Booking, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.Booking{}, err
	}
	b, ok := ds.FindByID(id)
	if !ok {
		return domain.Booking{}, ErrNotFound
	}
	return b, nil
}

func (s *bookingService) Add(ctx context.Context, form BookingForm) (string, error) {
	b, err := bookingFromForm(form)
	if err != nil {
		return "", err
	}
	if b.BookingID == "" {
		b.BookingID = newBookingID()
	}
	if existing, err := s.FindByID(ctx, b.BookingID); err == nil {
		return "", fmt.Errorf("booking id %s already exists (guest %s)", existing.BookingID, existing.GuestName)
	}
	if err := s.sheet.Append(ctx, b.ToRow()); err != nil {
		return "", fmt.Errorf("failed to append booking: %w", err)
	}
	s.cache.Invalidate()
	s.logger.Info("booking added", zap.String("booking_id", b.BookingID))
	return b.BookingID, nil
}

func (s *bookingService) Update(ctx context.Context, id string, form BookingForm) error {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	b, err := bookingFromForm(form)
	if err != nil {
		return err
	}
	b.BookingID = id
	b.Extra = current.Extra // unrecognized columns round-trip unchanged
	if err := s.sheet.Update(ctx, id, b.ToRow()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update booking: %w", err)
	}
	s.cache.Invalidate()
	s.logger.Info("booking updated", zap.String("booking_id", id))
	return nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if err := s.sheet.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	s.cache.Invalidate()
	s.logger.Info("booking deleted", zap.String("booking_id", id))
	return nil
}

func (s *bookingService) Export(ctx context.Context) ([]byte, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	return repository.GenerateBookingExport(ds.Records())
}

// bookingFromForm normalizes the submitted fields into a Booking. Check-in
// and check-out must parse and must not be inverted; everything else follows
// the core's lenient rules (absent date, zero amount).
func bookingFromForm(form BookingForm) (domain.Booking, error) {
	b := domain.Booking{
		BookingID: strings.TrimSpace(form.BookingID),
		GuestName: strings.TrimSpace(form.GuestName),
		RoomName:  strings.TrimSpace(form.RoomName),
		Status:    strings.TrimSpace(form.Status),
		Collector: strings.TrimSpace(form.Collector),
	}
	if b.Status == "" {
		b.Status = "OK"
	}

	var ok bool
	b.CheckIn, ok = normalize.ParseDate(normalize.FromText(form.CheckIn))
	if !ok {
		return domain.Booking{}, fmt.Errorf("invalid check-in date %q", form.CheckIn)
	}
	b.CheckOut, ok = normalize.ParseDate(normalize.FromText(form.CheckOut))
	if !ok {
		return domain.Booking{}, fmt.Errorf("invalid check-out date %q", form.CheckOut)
	}
	if b.CheckOut.Before(b.CheckIn) {
		return domain.Booking{}, fmt.Errorf("check-out %s is before check-in %s", b.CheckOut, b.CheckIn)
	}
	b.BookedOn, _ = normalize.ParseDate(normalize.FromText(form.BookedOn))

	b.TotalPayment = normalize.ParseAmount(form.TotalPayment)
	b.Commission = normalize.ParseAmount(form.Commission)
	b.Derive()
	return b, nil
}

func newBookingID() string {
	return "BK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
