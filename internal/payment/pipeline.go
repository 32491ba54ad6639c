package payment

import (
	"context"
	"fmt"
)

// step is one named stage of the post-verification sequence. Keeping the
// stages as data makes the degraded-success handling a single loop instead
// of nested error branches.
type step struct {
	name string
	run  func(ctx context.Context) error
}

func runSteps(ctx context.Context, steps []step) error {
	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("%s step failed: %w", s.name, err)
		}
	}
	return nil
}
