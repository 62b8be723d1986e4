package model

import "time"

// Mentor is a staff member who can supervise interns. Mentors are read-only
// inputs to the assignment workflow.
type Mentor struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department,omitempty"`
	Skills     []string  `json:"skills"`
	CreatedAt  time.Time `json:"createdAt"`
}
