package payment

import (
	"fmt"
	"sync"
	"time"
)

type State string

const (
	StateInitiated    State = "initiated"
	StateOrderCreated State = "order_created"
	StateCheckoutOpen State = "checkout_open"
	StateVerified     State = "verified"
	StateFailed       State = "failed"
	StateCancelled    State = "cancelled"
)

// transitions is forward-only: once an attempt is verified, failed or
// cancelled it can never move again, which is what makes the checkout
// continuations single-resolution.
var transitions = map[State][]State{
	StateInitiated:    {StateOrderCreated, StateFailed},
	StateOrderCreated: {StateCheckoutOpen, StateFailed},
	StateCheckoutOpen: {StateVerified, StateFailed, StateCancelled},
}

// Attempt tracks one payment attempt from initiation to resolution.
type Attempt struct {
	mu sync.Mutex

	BookingID string
	OrderID   string
	Amount    float64
	State     State
	CreatedAt time.Time
}

func newAttempt(bookingID string, amount float64) *Attempt {
	return &Attempt{
		BookingID: bookingID,
		Amount:    amount,
		State:     StateInitiated,
		CreatedAt: time.Now(),
	}
}

func (a *Attempt) advance(to State) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, allowed := range transitions[a.State] {
		if allowed == to {
			a.State = to
			return nil
		}
	}
	return fmt.Errorf("illegal payment state transition: %s -> %s", a.State, to)
}

func (a *Attempt) currentState() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.State
}
