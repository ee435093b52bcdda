package etl

import (
	"context"
	"time"

	"github.com/retailops/returns-complaints/models"
)

// NumberIssuer hands out batch complaint numbers that are unique both in the
// store and within the current run.
type NumberIssuer struct {
	attempts int
	now      func() time.Time
	next     func(time.Time) string
	issued   map[string]struct{}
}

// NewNumberIssuer returns an issuer that tries at most attempts candidates
// per number.
func NewNumberIssuer(attempts int, now func() time.Time) *NumberIssuer {
	if attempts <= 0 {
		attempts = models.DefaultNumberAttempts
	}
	return &NumberIssuer{
		attempts: attempts,
		now:      now,
		next:     models.BatchNumber,
		issued:   map[string]struct{}{},
	}
}

// Issue returns a fresh number. exists is consulted for every candidate not
// already issued in this run. After the allowed attempts it fails with
// models.ErrNumberExhausted.
func (n *NumberIssuer) Issue(ctx context.Context, exists NumberCheck) (string, error) {
	for i := 0; i < n.attempts; i++ {
		candidate := n.next(n.now())
		if _, dup := n.issued[candidate]; dup {
			continue
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		n.issued[candidate] = struct{}{}
		return candidate, nil
	}
	return "", models.ErrNumberExhausted
}
