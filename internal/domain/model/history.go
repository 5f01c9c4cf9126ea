package model

import "time"

// StatusChange is an immutable record of a single lifecycle transition.
type StatusChange struct {
	Status  string
	At      time.Time
	ActorID string
	Reason  string
}

// SystemActor marks transitions applied by the orchestrator rather than a person.
const SystemActor = "system"

// CloneHistory returns an independent copy of a status-change log.
func CloneHistory(history []StatusChange) []StatusChange {
	if history == nil {
		return nil
	}
	out := make([]StatusChange, len(history))
	copy(out, history)
	return out
}
