package command

import (
	"time"

	"github.com/google/uuid"
)

// Void is the sentinel result type for commands that produce no value.
// Handlers built with NewHandlerFunc declare Void as their result, which
// lets the no-result and result-bearing dispatch paths share a single
// resolution and caching pipeline.
type Void struct{}

// Command wraps a payload with dispatch metadata. It is the unit carried by
// async transports and the source of the context metadata attached before a
// handler runs.
type Command struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommand creates a Command with a generated ID and the name derived
// from the payload's type.
//
// Example:
//
//	type CreateUser struct {
//	    UserID string
//	    Email  string
//	}
//
//	cmd := command.NewCommand(CreateUser{UserID: "123", Email: "user@example.com"})
//	// cmd.Name == "CreateUser"
func NewCommand(payload any) Command {
	return Command{
		ID:        uuid.New().String(),
		Name:      CommandNameOf(payload),
		Payload:   payload,
		CreatedAt: time.Now(),
	}
}
