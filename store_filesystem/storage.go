package store_filesystem

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/benpate/derp"
	"github.com/rs/zerolog/log"
)

// Storage implements a simplified MessageStore using a filesystem directory.
// Each message is stored as a single JSON document named <id>.json.  This
// engine is meant for demos and single-process tools; it makes no guarantees
// about concurrent writers.
type Storage struct {
	directory string // The filesystem directory to read/write
}

// New returns a fully initialized Storage object
func New(directory string) Storage {

	return Storage{
		directory: directory,
	}
}

// messageRecord is the JSON document written for each message
type messageRecord struct {
	MessageID int    `json:"messageId"`
	Body      string `json:"body"`
}

// SaveMessage adds/updates the message body for an id
func (storage Storage) SaveMessage(messageID int, body string) error {

	const location = "store_filesystem.SaveMessage"

	log.Trace().
		Str("location", location).
		Int("messageId", messageID).
		Msg("Saving message...")

	// Marshal the record into JSON
	data, err := json.Marshal(messageRecord{MessageID: messageID, Body: body})

	if err != nil {
		return derp.Wrap(err, location, "Unable to marshal message", messageID)
	}

	filename := storage.filename(messageID)

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return derp.Wrap(err, location, "Unable to write message file", filename)
	}

	// Silence is golden
	return nil
}

// FetchMessage returns the message body for an id.  Ids with no document in
// the directory are reported as invalid.
func (storage Storage) FetchMessage(_ context.Context, messageID int) (string, error) {

	const location = "store_filesystem.FetchMessage"

	filename := storage.filename(messageID)
	data, err := os.ReadFile(filename)

	if err != nil {

		if os.IsNotExist(err) {
			return "", derp.NotFoundError(location, "Invalid ID", messageID)
		}

		return "", derp.Wrap(err, location, "Unable to read message file", filename)
	}

	// Unmarshal the file into a messageRecord
	record := messageRecord{}
	if err := json.Unmarshal(data, &record); err != nil {
		return "", derp.Wrap(err, location, "Unable to unmarshal message file", filename)
	}

	return record.Body, nil
}

// DeleteMessage removes the message for an id.  Deleting a message that does
// not exist is not an error.
func (storage Storage) DeleteMessage(messageID int) error {

	const location = "store_filesystem.DeleteMessage"

	filename := storage.filename(messageID)

	if err := os.Remove(filename); err != nil {

		if os.IsNotExist(err) {
			return nil
		}

		return derp.ReportAndReturn(derp.Wrap(err, location, "Unable to delete message file", filename))
	}

	log.Trace().
		Str("location", location).
		Int("messageId", messageID).
		Msg("Message deleted.")

	return nil
}

func (storage Storage) filename(messageID int) string {
	return storage.directory + "/" + strconv.Itoa(messageID) + ".json"
}
