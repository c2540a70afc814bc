package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMissionStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    MissionStatus
		to      MissionStatus
		allowed bool
	}{
		{MissionStatusDraft, MissionStatusOpen, true},
		{MissionStatusDraft, MissionStatusProposalSent, false},
		{MissionStatusOpen, MissionStatusProposalSent, true},
		{MissionStatusProposalSent, MissionStatusAnimatorAccepted, true},
		{MissionStatusProposalSent, MissionStatusOpen, true}, // declined proposal reopens
		{MissionStatusAnimatorAccepted, MissionStatusConfirmed, true},
		{MissionStatusAnimatorAccepted, MissionStatusInProgress, false},
		{MissionStatusConfirmed, MissionStatusInProgress, true},
		{MissionStatusAssigned, MissionStatusInProgress, true},
		{MissionStatusInProgress, MissionStatusCompleted, true},
		{MissionStatusCompleted, MissionStatusInProgress, false},
		// Cancellation from any non-terminal state.
		{MissionStatusDraft, MissionStatusCancelled, true},
		{MissionStatusProposalSent, MissionStatusCancelled, true},
		{MissionStatusInProgress, MissionStatusCancelled, true},
		{MissionStatusCompleted, MissionStatusCancelled, false},
		{MissionStatusCancelled, MissionStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestMissionStatus_IsTerminal(t *testing.T) {
	assert.True(t, MissionStatusCompleted.IsTerminal())
	assert.True(t, MissionStatusCancelled.IsTerminal())
	assert.False(t, MissionStatusDraft.IsTerminal())
	assert.False(t, MissionStatusInProgress.IsTerminal())
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "three days both ends included",
			start: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "same day",
			start: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "time of day truncated",
			start: time.Date(2026, 6, 10, 23, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 12, 1, 0, 0, 0, time.UTC),
			want:  3,
		},
		{
			name:  "end before start",
			start: time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "across month boundary",
			start: time.Date(2026, 6, 29, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InclusiveDays(tt.start, tt.end))
		})
	}
}

func TestMission_TotalPayout(t *testing.T) {
	mission := &Mission{
		StartDate: time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 3, mission.DurationDays())
	assert.InDelta(t, 750.0, mission.TotalPayout(250), 0.001)
}
