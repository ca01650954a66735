package services

import (
	"testing"

	"smarthealth/internal/adapters/persistence/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		want   bool
	}{
		{ActionCall, models.TokenStatusWaiting, true},
		{ActionCall, models.TokenStatusCalled, false},
		{ActionCall, models.TokenStatusServing, false},
		{ActionCall, models.TokenStatusCompleted, false},

		{ActionServe, models.TokenStatusCalled, true},
		{ActionServe, models.TokenStatusWaiting, false},
		{ActionServe, models.TokenStatusServing, false},

		{ActionSkip, models.TokenStatusWaiting, true},
		{ActionSkip, models.TokenStatusCalled, true},
		{ActionSkip, models.TokenStatusServing, false},
		{ActionSkip, models.TokenStatusSkipped, false},

		{ActionComplete, models.TokenStatusCalled, true},
		{ActionComplete, models.TokenStatusServing, true},
		{ActionComplete, models.TokenStatusWaiting, false},
		{ActionComplete, models.TokenStatusCompleted, false},

		{ActionCancel, models.TokenStatusWaiting, true},
		{ActionCancel, models.TokenStatusCalled, true},
		{ActionCancel, models.TokenStatusServing, true},
		{ActionCancel, models.TokenStatusCompleted, false},
		{ActionCancel, models.TokenStatusSkipped, false},
		{ActionCancel, models.TokenStatusCancelled, false},

		{"unknown", models.TokenStatusWaiting, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.action, tc.from); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.action, tc.from, got, tc.want)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{models.TokenStatusWaiting, false},
		{models.TokenStatusCalled, false},
		{models.TokenStatusServing, false},
		{models.TokenStatusCompleted, true},
		{models.TokenStatusSkipped, true},
		{models.TokenStatusCancelled, true},
	}

	for _, tc := range cases {
		token := &models.Token{Status: tc.status}
		if got := token.IsTerminal(); got != tc.want {
			t.Errorf("IsTerminal() for %q = %v, want %v", tc.status, got, tc.want)
		}
	}
}
