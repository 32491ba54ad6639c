package booking

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

type mockStore struct {
	insertFunc func(ctx context.Context, booking model.Booking) (*model.Booking, error)
	byUserFunc func(ctx context.Context, userID string) ([]model.Booking, error)
	patchFunc  func(ctx context.Context, id string, patch map[string]any) error
}

func (m *mockStore) InsertBooking(ctx context.Context, booking model.Booking) (*model.Booking, error) {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, booking)
	}
	booking.ID = "booking-1"
	return &booking, nil
}

func (m *mockStore) BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if m.byUserFunc != nil {
		return m.byUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockStore) PatchBooking(ctx context.Context, id string, patch map[string]any) error {
	if m.patchFunc != nil {
		return m.patchFunc(ctx, id, patch)
	}
	return nil
}

type mockCatalog struct {
	venueFunc    func(ctx context.Context) (*model.Venue, error)
	gameByIDFunc func(ctx context.Context, id string) (*model.Game, error)
}

func (m *mockCatalog) Venue(ctx context.Context) (*model.Venue, error) {
	if m.venueFunc != nil {
		return m.venueFunc(ctx)
	}
	return &model.Venue{ID: "venue-1", Name: "Cue Stories"}, nil
}

func (m *mockCatalog) GameByID(ctx context.Context, id string) (*model.Game, error) {
	if m.gameByIDFunc != nil {
		return m.gameByIDFunc(ctx, id)
	}
	return &model.Game{ID: id, Name: "Snooker", PricePerHour: 500, FirstBookingDiscount: 50}, nil
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingNotifier) Notify(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingNotifier) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json", Output: io.Discard})
}

func testSession() *model.Session {
	return &model.Session{Token: "tok-1", UserID: "user-1", Email: "ana@example.com", Name: "Ana", Phone: "111"}
}

func validInput() model.CreateBookingInput {
	return model.CreateBookingInput{
		GameID:    "game-1",
		Date:      "2026-09-01",
		StartTime: "10:00",
		EndTime:   "11:00",
	}
}

func TestCreate_DiscountedPrice(t *testing.T) {
	var inserted model.Booking
	store := &mockStore{
		insertFunc: func(ctx context.Context, booking model.Booking) (*model.Booking, error) {
			inserted = booking
			booking.ID = "booking-1"
			return &booking, nil
		},
	}
	svc := NewService(store, &mockCatalog{}, &recordingNotifier{}, testLogger())

	summary, err := svc.Create(context.Background(), testSession(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inserted.TotalPrice != 450 {
		t.Errorf("expected 500 - 50 = 450, got %v", inserted.TotalPrice)
	}
	if inserted.DiscountApplied != 50 {
		t.Errorf("expected discount 50 recorded, got %v", inserted.DiscountApplied)
	}
	if inserted.Status != model.BookingStatusPending || inserted.PaymentStatus != model.PaymentStatusPending {
		t.Errorf("new booking should be pending/pending, got %s/%s", inserted.Status, inserted.PaymentStatus)
	}
	if inserted.UserID != "user-1" || inserted.VenueID != "venue-1" {
		t.Errorf("booking should carry session user and resolved venue, got %s/%s", inserted.UserID, inserted.VenueID)
	}

	if summary.Price != 450 {
		t.Errorf("summary price should match stored total, got %v", summary.Price)
	}
	if summary.Time != "10:00 - 11:00" {
		t.Errorf("unexpected summary time %q", summary.Time)
	}
	if summary.Game != "Snooker" {
		t.Errorf("unexpected summary game %q", summary.Game)
	}
}

func TestCreate_NoDiscount(t *testing.T) {
	catalog := &mockCatalog{
		gameByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return &model.Game{ID: id, Name: "PS5", PricePerHour: 600, FirstBookingDiscount: 0}, nil
		},
	}
	var inserted model.Booking
	store := &mockStore{
		insertFunc: func(ctx context.Context, booking model.Booking) (*model.Booking, error) {
			inserted = booking
			booking.ID = "booking-2"
			return &booking, nil
		},
	}
	svc := NewService(store, catalog, &recordingNotifier{}, testLogger())

	if _, err := svc.Create(context.Background(), testSession(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted.TotalPrice != 600 {
		t.Errorf("expected full price 600, got %v", inserted.TotalPrice)
	}
}

func TestCreate_NotAuthenticated(t *testing.T) {
	notifier := &recordingNotifier{}
	store := &mockStore{
		insertFunc: func(ctx context.Context, booking model.Booking) (*model.Booking, error) {
			t.Fatal("insert must not run without a session")
			return nil, nil
		},
	}
	svc := NewService(store, &mockCatalog{}, notifier, testLogger())

	_, err := svc.Create(context.Background(), nil, validInput())
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != apperrors.CodeNotAuthenticated {
		t.Fatalf("expected NOT_AUTHENTICATED, got %v", err)
	}
	if notifier.last() != "Please login first" {
		t.Errorf("unexpected notification %q", notifier.last())
	}
}

func TestCreate_GameNotFound(t *testing.T) {
	catalog := &mockCatalog{
		gameByIDFunc: func(ctx context.Context, id string) (*model.Game, error) {
			return nil, apperrors.NotFound("Game")
		},
	}
	notifier := &recordingNotifier{}
	svc := NewService(&mockStore{}, catalog, notifier, testLogger())

	if _, err := svc.Create(context.Background(), testSession(), validInput()); err == nil {
		t.Fatal("expected error for unknown game")
	}
	if notifier.last() != "Game not found" {
		t.Errorf("unexpected notification %q", notifier.last())
	}
}

func TestListForUser_EmptyOnFailure(t *testing.T) {
	store := &mockStore{
		byUserFunc: func(ctx context.Context, userID string) ([]model.Booking, error) {
			return nil, errors.New("table store down")
		},
	}
	svc := NewService(store, &mockCatalog{}, &recordingNotifier{}, testLogger())

	bookings := svc.ListForUser(context.Background(), "user-1")
	if bookings == nil || len(bookings) != 0 {
		t.Errorf("expected empty non-nil list, got %v", bookings)
	}
}

func TestCancel(t *testing.T) {
	var patched map[string]any
	store := &mockStore{
		patchFunc: func(ctx context.Context, id string, patch map[string]any) error {
			patched = patch
			return nil
		},
	}
	notifier := &recordingNotifier{}
	svc := NewService(store, &mockCatalog{}, notifier, testLogger())

	if !svc.Cancel(context.Background(), "booking-1") {
		t.Fatal("expected cancellation to succeed")
	}
	if patched["status"] != model.BookingStatusCancelled {
		t.Errorf("expected status cancelled, got %v", patched["status"])
	}
	if notifier.last() != "Booking cancelled" {
		t.Errorf("unexpected notification %q", notifier.last())
	}
}

func TestCancel_Failure(t *testing.T) {
	store := &mockStore{
		patchFunc: func(ctx context.Context, id string, patch map[string]any) error {
			return errors.New("table store down")
		},
	}
	notifier := &recordingNotifier{}
	svc := NewService(store, &mockCatalog{}, notifier, testLogger())

	if svc.Cancel(context.Background(), "booking-1") {
		t.Fatal("expected cancellation to fail")
	}
	if notifier.last() != "Cancellation failed" {
		t.Errorf("unexpected notification %q", notifier.last())
	}
}

func TestMarkPaid(t *testing.T) {
	var patched map[string]any
	store := &mockStore{
		patchFunc: func(ctx context.Context, id string, patch map[string]any) error {
			patched = patch
			return nil
		},
	}
	svc := NewService(store, &mockCatalog{}, &recordingNotifier{}, testLogger())

	if err := svc.MarkPaid(context.Background(), "booking-1", "pay_123", "order_456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if patched["payment_status"] != model.PaymentStatusCompleted {
		t.Errorf("expected payment_status completed, got %v", patched["payment_status"])
	}
	if patched["status"] != model.BookingStatusConfirmed {
		t.Errorf("expected status confirmed, got %v", patched["status"])
	}
	if patched["payment_id"] != "pay_123" || patched["order_id"] != "order_456" {
		t.Errorf("provider references should be recorded, got %v", patched)
	}
}
