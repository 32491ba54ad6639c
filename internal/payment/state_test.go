package payment

import "testing"

func TestAttempt_HappyPath(t *testing.T) {
	a := newAttempt("booking-1", 450)
	if a.currentState() != StateInitiated {
		t.Fatalf("new attempt should start initiated, got %s", a.currentState())
	}

	for _, to := range []State{StateOrderCreated, StateCheckoutOpen, StateVerified} {
		if err := a.advance(to); err != nil {
			t.Fatalf("transition to %s should be legal: %v", to, err)
		}
	}
}

func TestAttempt_ResolutionIsTerminal(t *testing.T) {
	for _, terminal := range []State{StateVerified, StateFailed, StateCancelled} {
		a := newAttempt("booking-1", 450)
		_ = a.advance(StateOrderCreated)
		_ = a.advance(StateCheckoutOpen)
		if err := a.advance(terminal); err != nil {
			t.Fatalf("transition to %s should be legal: %v", terminal, err)
		}

		for _, to := range []State{StateInitiated, StateOrderCreated, StateCheckoutOpen, StateVerified, StateFailed, StateCancelled} {
			if err := a.advance(to); err == nil {
				t.Errorf("%s -> %s should be rejected", terminal, to)
			}
		}
	}
}

func TestAttempt_NoSkippingAhead(t *testing.T) {
	a := newAttempt("booking-1", 450)
	if err := a.advance(StateVerified); err == nil {
		t.Error("initiated -> verified should be rejected")
	}
	if err := a.advance(StateCheckoutOpen); err == nil {
		t.Error("initiated -> checkout_open should be rejected")
	}
}
