package demo

import (
	"errors"
	"fmt"
)

// Identifier kinds tracked for per-run uniqueness
const (
	KindEmail         = "email"
	KindNPWP          = "npwp"
	KindNIB           = "nib"
	KindPhone         = "phone"
	KindUsername      = "username"
	KindInvoiceNumber = "invoice_number"
	KindPaymentNumber = "payment_number"
)

// ErrCandidateSpaceExhausted is returned when a generator cannot
// produce a fresh identifier within the attempt bound.
var ErrCandidateSpaceExhausted = errors.New("candidate space exhausted")

// maxAttempts bounds candidate generation per identifier. The candidate
// spaces are large relative to run sizes, so hitting the bound means a
// generator bug, not bad luck.
const maxAttempts = 100

// Tracker guarantees that no two generated records within one run share
// a business identifier. Values are appended only once accepted as the
// chosen value for some record, never pre-reserved.
type Tracker struct {
	seen map[string]map[string]struct{}
}

// NewTracker creates an empty tracker scoped to one pipeline run
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]map[string]struct{})}
}

// Claim accepts candidate for kind if it has not been used this run.
// On acceptance the candidate is recorded and true is returned.
func (t *Tracker) Claim(kind, candidate string) bool {
	set, ok := t.seen[kind]
	if !ok {
		set = make(map[string]struct{})
		t.seen[kind] = set
	}
	if _, dup := set[candidate]; dup {
		return false
	}
	set[candidate] = struct{}{}
	return true
}

// Unique rolls candidates from gen until one is accepted, up to
// maxAttempts. The accepted value is recorded before being returned.
func (t *Tracker) Unique(kind string, gen func() string) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := gen()
		if t.Claim(kind, candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w for %s after %d attempts", ErrCandidateSpaceExhausted, kind, maxAttempts)
}

// Count returns how many values of a kind were claimed this run
func (t *Tracker) Count(kind string) int {
	return len(t.seen[kind])
}
