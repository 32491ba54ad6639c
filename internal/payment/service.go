package payment

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"cuecafe/internal/notify"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

const (
	profilePath = "/pages/profile.html"

	confirmedRedirectDelay = 2 * time.Second
	degradedRedirectDelay  = 3 * time.Second
)

type BackendAPI interface {
	CreateOrder(ctx context.Context, req OrderRequest) (string, error)
	Verify(ctx context.Context, req VerifyRequest) error
	Refund(ctx context.Context, bookingID, paymentID string, amount float64) error
	SendConfirmation(ctx context.Context, bookingID string) error
}

// Bookings is the delegated update path for a verified payment.
type Bookings interface {
	MarkPaid(ctx context.Context, bookingID, paymentID, orderID string) error
}

type Service struct {
	mu       sync.Mutex
	attempts map[string]*Attempt

	backend  BackendAPI
	bookings Bookings
	notifier notify.Notifier

	keyID     string
	currency  string
	venueName string
	log       *logger.Logger
}

func NewService(backend BackendAPI, bookings Bookings, notifier notify.Notifier, keyID, currency, venueName string, log *logger.Logger) *Service {
	return &Service{
		attempts:  make(map[string]*Attempt),
		backend:   backend,
		bookings:  bookings,
		notifier:  notifier,
		keyID:     keyID,
		currency:  currency,
		venueName: venueName,
		log:       log,
	}
}

type InitiateInput struct {
	BookingID string  `json:"booking_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
	GameName  string  `json:"game_name"`
	Date      string  `json:"date"`
	TimeRange string  `json:"time"`
}

// Confirmation tells the caller where to send the user after a resolved
// payment. Degraded means the payment itself went through but a
// post-verification step did not.
type Confirmation struct {
	BookingID string        `json:"booking_id"`
	Redirect  string        `json:"redirect"`
	Delay     time.Duration `json:"-"`
	Degraded  bool          `json:"degraded"`
}

// MinorUnits converts a price into the provider's minor currency units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Initiate creates a provider order through the backend and returns the
// checkout configuration for the widget. Without a session it fails before
// any remote call.
func (s *Service) Initiate(ctx context.Context, sess *model.Session, in InitiateInput) (*model.CheckoutSession, error) {
	if sess == nil {
		s.notifier.Notify(notify.LevelError, "Please login to complete payment")
		return nil, apperrors.NotAuthenticated()
	}

	attempt := newAttempt(in.BookingID, in.Amount)

	orderID, err := s.backend.CreateOrder(ctx, OrderRequest{
		BookingID:     in.BookingID,
		Amount:        MinorUnits(in.Amount),
		Description:   fmt.Sprintf("%s - %s %s", in.GameName, in.Date, in.TimeRange),
		CustomerName:  sess.Name,
		CustomerEmail: sess.Email,
		CustomerPhone: sess.Phone,
	})
	if err != nil {
		_ = attempt.advance(StateFailed)
		s.log.Error("Order creation failed", "booking_id", in.BookingID, "error", err)
		s.notifier.Notify(notify.LevelError, "Error initiating payment: "+err.Error())
		return nil, err
	}

	attempt.OrderID = orderID
	if err := attempt.advance(StateOrderCreated); err != nil {
		return nil, apperrors.Internal("payment attempt in unexpected state", err)
	}

	checkout := &model.CheckoutSession{
		Key:         s.keyID,
		Amount:      MinorUnits(in.Amount),
		Currency:    s.currency,
		OrderID:     orderID,
		Name:        s.venueName,
		Description: in.GameName + " Booking",
		Prefill: model.CheckoutPrefill{
			Name:    sess.Name,
			Email:   sess.Email,
			Contact: sess.Phone,
		},
		Notes: map[string]string{
			"booking_id":   in.BookingID,
			"game_name":    in.GameName,
			"booking_date": in.Date,
			"booking_time": in.TimeRange,
		},
	}

	if err := attempt.advance(StateCheckoutOpen); err != nil {
		return nil, apperrors.Internal("payment attempt in unexpected state", err)
	}

	s.mu.Lock()
	s.attempts[orderID] = attempt
	s.mu.Unlock()

	s.log.Info("Checkout opened", "booking_id", in.BookingID, "order_id", orderID, "amount_minor", checkout.Amount)
	return checkout, nil
}

// HandleSuccess is the success continuation: verify with the backend, then
// run the post-verification steps. A verified payment is never rolled back;
// failures after verification degrade the outcome instead.
func (s *Service) HandleSuccess(ctx context.Context, res model.CheckoutResult) (*Confirmation, error) {
	attempt := s.attempt(res.OrderID)
	if attempt == nil {
		return nil, apperrors.InvalidInput("unknown payment attempt")
	}
	if attempt.currentState() != StateCheckoutOpen {
		return nil, apperrors.InvalidInput("payment attempt already resolved")
	}

	if err := s.backend.Verify(ctx, VerifyRequest{
		BookingID: attempt.BookingID,
		OrderID:   res.OrderID,
		PaymentID: res.PaymentID,
		Signature: res.Signature,
	}); err != nil {
		_ = attempt.advance(StateFailed)
		s.log.Error("Payment verification failed", "booking_id", attempt.BookingID, "order_id", res.OrderID, "error", err)
		s.notifier.Notify(notify.LevelError, "Payment verification failed")
		return nil, err
	}

	if err := attempt.advance(StateVerified); err != nil {
		return nil, apperrors.InvalidInput("payment attempt already resolved")
	}

	err := runSteps(ctx, []step{
		{
			name: "update-booking",
			run: func(ctx context.Context) error {
				return s.bookings.MarkPaid(ctx, attempt.BookingID, res.PaymentID, res.OrderID)
			},
		},
		{
			name: "send-confirmation",
			run: func(ctx context.Context) error {
				// Best effort: the booking is already paid and confirmed.
				if err := s.backend.SendConfirmation(ctx, attempt.BookingID); err != nil {
					s.log.Warn("Confirmation request failed", "booking_id", attempt.BookingID, "error", err)
				}
				return nil
			},
		},
	})
	if err != nil {
		s.log.Error("Post-verification step failed", "booking_id", attempt.BookingID, "error", err)
		s.notifier.Notify(notify.LevelWarning, "Payment verified but error in confirmation: "+err.Error())
		return &Confirmation{
			BookingID: attempt.BookingID,
			Redirect:  profilePath,
			Delay:     degradedRedirectDelay,
			Degraded:  true,
		}, nil
	}

	s.log.Info("Payment verified", "booking_id", attempt.BookingID, "order_id", res.OrderID, "payment_id", res.PaymentID)
	s.notifier.Notify(notify.LevelSuccess, "Payment successful! Your booking is confirmed.")

	return &Confirmation{
		BookingID: attempt.BookingID,
		Redirect:  profilePath + "?booking=" + attempt.BookingID,
		Delay:     confirmedRedirectDelay,
	}, nil
}

// HandleDismiss is the dismissal continuation: the user closed the widget.
// The booking stays pending and unpaid; there is no automatic retry.
func (s *Service) HandleDismiss(orderID string) error {
	attempt := s.attempt(orderID)
	if attempt == nil {
		return apperrors.InvalidInput("unknown payment attempt")
	}
	if err := attempt.advance(StateCancelled); err != nil {
		return apperrors.InvalidInput("payment attempt already resolved")
	}

	s.log.Info("Checkout dismissed", "booking_id", attempt.BookingID, "order_id", orderID)
	s.notifier.Notify(notify.LevelWarning, "Payment cancelled. Please try again.")
	return nil
}

// Refund asks the backend to refund a captured payment.
func (s *Service) Refund(ctx context.Context, bookingID, paymentID string, amount float64) bool {
	if err := s.backend.Refund(ctx, bookingID, paymentID, amount); err != nil {
		s.log.Error("Refund failed", "booking_id", bookingID, "payment_id", paymentID, "error", err)
		s.notifier.Notify(notify.LevelError, "Refund error: "+err.Error())
		return false
	}

	s.notifier.Notify(notify.LevelSuccess, "Refund processed successfully!")
	return true
}

func (s *Service) attempt(orderID string) *Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[orderID]
}
