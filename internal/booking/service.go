package booking

import (
	"context"

	"cuecafe/internal/notify"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

type Store interface {
	InsertBooking(ctx context.Context, booking model.Booking) (*model.Booking, error)
	BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error)
	PatchBooking(ctx context.Context, id string, patch map[string]any) error
}

// Catalog resolves the venue and the priced game for booking creation.
type Catalog interface {
	Venue(ctx context.Context) (*model.Venue, error)
	GameByID(ctx context.Context, id string) (*model.Game, error)
}

type Service struct {
	store    Store
	catalog  Catalog
	notifier notify.Notifier
	log      *logger.Logger
}

func NewService(store Store, catalog Catalog, notifier notify.Notifier, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		catalog:  catalog,
		notifier: notifier,
		log:      log,
	}
}

// Create inserts a pending booking and returns the summary the payment step
// needs. Availability is whatever the caller last queried; there is no
// exclusivity check here, so two sessions racing for the same slot are
// decided by whichever insert the table store lands first.
func (s *Service) Create(ctx context.Context, sess *model.Session, in model.CreateBookingInput) (*model.BookingSummary, error) {
	if sess == nil {
		s.notifier.Notify(notify.LevelError, "Please login first")
		return nil, apperrors.NotAuthenticated()
	}

	venue, err := s.catalog.Venue(ctx)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "Venue not found")
		return nil, err
	}

	game, err := s.catalog.GameByID(ctx, in.GameID)
	if err != nil {
		s.notifier.Notify(notify.LevelError, "Game not found")
		return nil, err
	}

	// Price is fixed at creation time and never recomputed. The discount is
	// not clamped: a discount above the hourly price would go negative here,
	// and whether that should be floored is an unanswered product question.
	total := game.PricePerHour - game.FirstBookingDiscount

	created, err := s.store.InsertBooking(ctx, model.Booking{
		UserID:          sess.UserID,
		VenueID:         venue.ID,
		GameID:          in.GameID,
		BookingDate:     in.Date,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		TotalPrice:      total,
		DiscountApplied: game.FirstBookingDiscount,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.BookingStatusPending,
	})
	if err != nil {
		s.log.Error("Booking insert failed", "user_id", sess.UserID, "game_id", in.GameID, "error", err)
		s.notifier.Notify(notify.LevelError, "Failed to create booking")
		return nil, err
	}

	s.log.Info("Booking created",
		"booking_id", created.ID,
		"user_id", sess.UserID,
		"game_id", in.GameID,
		"date", in.Date,
		"total_price", total,
	)

	return &model.BookingSummary{
		ID:    created.ID,
		Price: total,
		Game:  game.Name,
		Date:  in.Date,
		Time:  in.StartTime + " - " + in.EndTime,
	}, nil
}

// ListForUser returns the user's bookings newest-date first, or an empty
// list on any failure.
func (s *Service) ListForUser(ctx context.Context, userID string) []model.Booking {
	bookings, err := s.store.BookingsByUser(ctx, userID)
	if err != nil {
		s.log.Error("Booking list fetch failed", "user_id", userID, "error", err)
		return []model.Booking{}
	}
	if bookings == nil {
		return []model.Booking{}
	}
	return bookings
}

// Cancel flips the booking to cancelled. Cancelling an already-cancelled
// booking is a no-op on the remote side and still reports success.
func (s *Service) Cancel(ctx context.Context, bookingID string) bool {
	err := s.store.PatchBooking(ctx, bookingID, map[string]any{
		"status": model.BookingStatusCancelled,
	})
	if err != nil {
		s.log.Error("Booking cancellation failed", "booking_id", bookingID, "error", err)
		s.notifier.Notify(notify.LevelError, "Cancellation failed")
		return false
	}

	s.notifier.Notify(notify.LevelSuccess, "Booking cancelled")
	return true
}

// MarkPaid is the payment orchestrator's delegated update path: payment
// completed, booking confirmed, provider references recorded.
func (s *Service) MarkPaid(ctx context.Context, bookingID, paymentID, orderID string) error {
	err := s.store.PatchBooking(ctx, bookingID, map[string]any{
		"payment_status": model.PaymentStatusCompleted,
		"status":         model.BookingStatusConfirmed,
		"payment_id":     paymentID,
		"order_id":       orderID,
	})
	if err != nil {
		s.log.Error("Could not mark booking paid", "booking_id", bookingID, "error", err)
		return err
	}
	return nil
}
