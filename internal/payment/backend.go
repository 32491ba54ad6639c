package payment

import (
	"context"
	"time"

	"cuecafe/pkg/client"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
)

// Backend talks to the remote payment service that owns the provider
// credentials. Order creation, verification and refunds all happen there;
// this client only consumes its HTTP contract.
type Backend struct {
	http *client.HttpClient
	log  *logger.Logger
}

func NewBackend(baseURL string, timeout time.Duration, log *logger.Logger) *Backend {
	return &Backend{
		http: client.NewHttpClient(baseURL, timeout),
		log:  log,
	}
}

type OrderRequest struct {
	BookingID     string `json:"booking_id"`
	Amount        int64  `json:"amount"`
	Description   string `json:"description"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

type orderResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
	Message string `json:"message"`
}

// CreateOrder asks the backend for a provider order. The amount is already
// in minor currency units.
func (b *Backend) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	resp, err := b.http.POST(ctx, "/api/razorpay/create-order", req)
	if err != nil {
		return "", apperrors.OrderCreation("Failed to create payment order", err)
	}

	var order orderResponse
	if err := resp.DecodeJSON(&order); err != nil {
		return "", apperrors.OrderCreation("Could not decode order response", err)
	}
	if !order.Success || order.OrderID == "" {
		message := order.Message
		if message == "" {
			message = "Failed to create payment order"
		}
		return "", apperrors.OrderCreation(message, nil)
	}

	return order.OrderID, nil
}

type VerifyRequest struct {
	BookingID string `json:"booking_id"`
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// Verify forwards the checkout result for signature verification. The
// signing secret lives on the backend; anything short of an explicit
// success flag counts as a failed verification.
func (b *Backend) Verify(ctx context.Context, req VerifyRequest) error {
	resp, err := b.http.POST(ctx, "/api/razorpay/verify-payment", req)
	if err != nil {
		return apperrors.Verification("Payment verification failed")
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := resp.DecodeJSON(&result); err != nil || !result.Success {
		return apperrors.Verification("Payment verification failed")
	}
	return nil
}

type refundRequest struct {
	BookingID string  `json:"booking_id"`
	PaymentID string  `json:"razorpay_payment_id"`
	Amount    float64 `json:"amount"`
}

func (b *Backend) Refund(ctx context.Context, bookingID, paymentID string, amount float64) error {
	resp, err := b.http.POST(ctx, "/api/razorpay/refund", refundRequest{
		BookingID: bookingID,
		PaymentID: paymentID,
		Amount:    amount,
	})
	if err != nil {
		return apperrors.Remote("Refund request failed", err)
	}

	var result struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := resp.DecodeJSON(&result); err != nil {
		return apperrors.Remote("Could not decode refund response", err)
	}
	if !result.Success {
		message := result.Message
		if message == "" {
			message = "Refund failed"
		}
		return apperrors.Remote(message, nil)
	}
	return nil
}

// SendConfirmation triggers the booking confirmation notification. Best
// effort by contract: callers log failures and move on.
func (b *Backend) SendConfirmation(ctx context.Context, bookingID string) error {
	resp, err := b.http.POST(ctx, "/api/bookings/"+bookingID+"/send-confirmation", struct{}{})
	if err != nil {
		return apperrors.Remote("Confirmation request failed", err)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := resp.DecodeJSON(&result); err != nil || !result.Success {
		return apperrors.Remote("Confirmation request was not accepted", nil)
	}
	return nil
}
