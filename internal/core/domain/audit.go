package domain

import "time"

// StatusEvent records a single applied status transition for the audit trail.
type StatusEvent struct {
	ApplicationID string            `bson:"application_id"`
	From          ApplicationStatus `bson:"from"`
	To            ApplicationStatus `bson:"to"`
	ActorID       string            `bson:"actor_id"`
	Notes         string            `bson:"notes,omitempty"`
	At            time.Time         `bson:"at"`
}
