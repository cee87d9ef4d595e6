package domain

import "time"

// ContactMessage is an independent aggregate created by public submission.
// Admins may only flip the Responded flag.
type ContactMessage struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	Responded bool      `json:"responded" bson:"responded"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
