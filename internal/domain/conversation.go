package domain

import "time"

// Turn is one message in a chat session.
type Turn struct {
	Role      Role
	Content   string
	Timestamp time.Time
	// Intent is the classified intent kind for user turns, empty otherwise.
	Intent string
}
