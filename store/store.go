// Package store defines the message lookup collaborator used by task
// processors, along with a canned in-memory engine.  Persistent engines
// live in the store_* packages.
package store

import "context"

// MessageStore resolves the message attached to a task id.
type MessageStore interface {

	// FetchMessage returns the message for the given id.  Implementations
	// return an error for ids they do not recognize.
	FetchMessage(ctx context.Context, messageID int) (string, error)
}
