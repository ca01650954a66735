package services

import "smarthealth/internal/adapters/persistence/models"

// Queue actions applied to a token after it is issued.
const (
	ActionCall     = "call"
	ActionServe    = "serve"
	ActionSkip     = "skip"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
)

// tokenTransitions maps each action to the statuses it may be applied from.
// Terminal statuses (completed, skipped, cancelled) never appear as a source.
var tokenTransitions = map[string][]string{
	ActionCall:     {models.TokenStatusWaiting},
	ActionServe:    {models.TokenStatusCalled},
	ActionSkip:     {models.TokenStatusWaiting, models.TokenStatusCalled},
	ActionComplete: {models.TokenStatusCalled, models.TokenStatusServing},
	ActionCancel:   {models.TokenStatusWaiting, models.TokenStatusCalled, models.TokenStatusServing},
}

// CanTransition reports whether action is allowed from the given status.
func CanTransition(action, from string) bool {
	allowed, ok := tokenTransitions[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == from {
			return true
		}
	}
	return false
}
