package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAlertStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, AlertStatusActive.CanTransitionTo(AlertStatusFilled))
	assert.True(t, AlertStatusActive.CanTransitionTo(AlertStatusExpired))
	assert.True(t, AlertStatusActive.CanTransitionTo(AlertStatusCancelled))
	assert.False(t, AlertStatusActive.CanTransitionTo(AlertStatusActive))

	// Every non-active state is terminal.
	for _, from := range []AlertStatus{AlertStatusFilled, AlertStatusExpired, AlertStatusCancelled} {
		assert.False(t, from.CanTransitionTo(AlertStatusActive), "from %s", from)
		assert.False(t, from.CanTransitionTo(AlertStatusFilled), "from %s", from)
		assert.True(t, from.IsTerminal())
	}
}

func TestUrgentAlert_IsExpiredAt(t *testing.T) {
	expiresAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	alert := &UrgentAlert{Status: AlertStatusActive, ExpiresAt: expiresAt}

	assert.False(t, alert.IsExpiredAt(expiresAt.Add(-time.Second)))
	// The expiry instant itself is still open.
	assert.False(t, alert.IsExpiredAt(expiresAt))
	assert.True(t, alert.IsExpiredAt(expiresAt.Add(time.Second)))
}

func TestUrgentAlert_IsOpenAt(t *testing.T) {
	now := time.Now()
	alert := &UrgentAlert{Status: AlertStatusActive, ExpiresAt: now.Add(time.Hour)}

	assert.True(t, alert.IsOpenAt(now))

	alert.Status = AlertStatusFilled
	assert.False(t, alert.IsOpenAt(now))

	alert.Status = AlertStatusActive
	alert.ExpiresAt = now.Add(-time.Hour)
	assert.False(t, alert.IsOpenAt(now))
}

func TestUrgentAlert_MatchesSpecialties(t *testing.T) {
	alert := &UrgentAlert{RequiredSpecialties: []string{"dermo-cosmétique", "nutrition"}}

	// At least one common specialty is enough.
	assert.True(t, alert.MatchesSpecialties([]string{"nutrition"}))
	assert.True(t, alert.MatchesSpecialties([]string{"ortho", "dermo-cosmétique"}))
	assert.False(t, alert.MatchesSpecialties([]string{"ortho"}))
	assert.False(t, alert.MatchesSpecialties(nil))

	// No requirements: everyone matches.
	open := &UrgentAlert{}
	assert.True(t, open.MatchesSpecialties(nil))
	assert.True(t, open.MatchesSpecialties([]string{"ortho"}))
}
