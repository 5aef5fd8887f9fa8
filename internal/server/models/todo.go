package models

import "time"

// Todo is a task owned by exactly one user. OwnerEmail is filled on reads
// that join the owner.
type Todo struct {
	ID          int64
	OwnerID     string
	OwnerEmail  string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
