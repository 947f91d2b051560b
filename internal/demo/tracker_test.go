package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerClaimRejectsDuplicate(t *testing.T) {
	tracker := NewTracker()

	assert.True(t, tracker.Claim(KindNPWP, "01.234.567.8-901.234"))
	assert.False(t, tracker.Claim(KindNPWP, "01.234.567.8-901.234"))

	// Same value under a different kind is a separate namespace
	assert.True(t, tracker.Claim(KindNIB, "01.234.567.8-901.234"))
}

func TestTrackerUniqueRetriesUntilFresh(t *testing.T) {
	tracker := NewTracker()
	require.True(t, tracker.Claim(KindEmail, "taken@demo.kencana.co.id"))

	calls := 0
	got, err := tracker.Unique(KindEmail, func() string {
		calls++
		if calls == 1 {
			return "taken@demo.kencana.co.id"
		}
		return "fresh@demo.kencana.co.id"
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh@demo.kencana.co.id", got)
	assert.Equal(t, 2, calls)
}

func TestTrackerUniqueBoundedExhaustion(t *testing.T) {
	tracker := NewTracker()
	require.True(t, tracker.Claim(KindPhone, "081234567890"))

	calls := 0
	_, err := tracker.Unique(KindPhone, func() string {
		calls++
		return "081234567890"
	})
	require.ErrorIs(t, err, ErrCandidateSpaceExhausted)
	// The retry loop stops at the bound instead of spinning forever
	assert.Equal(t, maxAttempts, calls)
}

func TestTrackerCount(t *testing.T) {
	tracker := NewTracker()
	tracker.Claim(KindUsername, "demo_owner_01")
	tracker.Claim(KindUsername, "demo_owner_02")
	tracker.Claim(KindUsername, "demo_owner_02")

	assert.Equal(t, 2, tracker.Count(KindUsername))
	assert.Equal(t, 0, tracker.Count(KindEmail))
}
