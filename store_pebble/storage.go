package store_pebble

import (
	"context"
	"errors"
	"strconv"

	"github.com/benpate/derp"
	"github.com/cockroachdb/pebble"
)

// Storage implements the MessageStore interface on top of an embedded Pebble
// database.  Message bodies are stored under "message/<id>" keys; writes are
// synced to the WAL before they are acknowledged.
type Storage struct {
	db *pebble.DB
}

// Open creates or opens a Pebble database in the given directory
func Open(directory string) (*Storage, error) {

	const location = "store_pebble.Open"

	if directory == "" {
		return nil, derp.InternalError(location, "Directory is required")
	}

	db, err := pebble.Open(directory, &pebble.Options{})

	if err != nil {
		return nil, derp.Wrap(err, location, "Unable to open pebble database", directory)
	}

	return &Storage{db: db}, nil
}

// Close closes the underlying database
func (storage *Storage) Close() error {

	if storage == nil || storage.db == nil {
		return nil
	}

	return storage.db.Close()
}

// SaveMessage writes the message body for an id
func (storage *Storage) SaveMessage(messageID int, body string) error {

	const location = "store_pebble.SaveMessage"

	if err := storage.db.Set(messageKey(messageID), []byte(body), pebble.Sync); err != nil {
		return derp.Wrap(err, location, "Unable to save message", messageID)
	}

	return nil
}

// FetchMessage returns the message body for an id.  Ids with no record in
// the database are reported as invalid.
func (storage *Storage) FetchMessage(_ context.Context, messageID int) (string, error) {

	const location = "store_pebble.FetchMessage"

	value, closer, err := storage.db.Get(messageKey(messageID))

	if err != nil {

		if errors.Is(err, pebble.ErrNotFound) {
			return "", derp.NotFoundError(location, "Invalid ID", messageID)
		}

		return "", derp.Wrap(err, location, "Unable to fetch message", messageID)
	}

	// Copy the value before releasing the read handle
	body := string(value)

	if err := closer.Close(); err != nil {
		return "", derp.Wrap(err, location, "Unable to release read handle", messageID)
	}

	return body, nil
}

// DeleteMessage removes the message for an id.  Deleting a message that does
// not exist is not an error.
func (storage *Storage) DeleteMessage(messageID int) error {

	const location = "store_pebble.DeleteMessage"

	if err := storage.db.Delete(messageKey(messageID), pebble.Sync); err != nil {
		return derp.Wrap(err, location, "Unable to delete message", messageID)
	}

	return nil
}

func messageKey(messageID int) []byte {
	return []byte("message/" + strconv.Itoa(messageID))
}
