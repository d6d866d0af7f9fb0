package store_mongo

import (
	"context"
	"errors"

	"github.com/benpate/derp"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage implements the MessageStore interface using a MongoDB collection.
// Messages are keyed by their integer id, one document per message.
type Storage struct {
	collection *mongo.Collection
}

// New returns a fully initialized Storage object
func New(database *mongo.Database, collection string) Storage {

	return Storage{
		collection: database.Collection(collection),
	}
}

// messageRecord is the BSON document stored for each message
type messageRecord struct {
	MessageID int    `bson:"messageId"`
	Body      string `bson:"body"`
}

// SaveMessage upserts the message body for an id
func (storage Storage) SaveMessage(ctx context.Context, messageID int, body string) error {

	const location = "store_mongo.SaveMessage"

	log.Trace().
		Str("location", location).
		Int("messageId", messageID).
		Msg("Saving message...")

	record := messageRecord{MessageID: messageID, Body: body}
	filter := bson.M{"messageId": messageID}
	opts := options.Replace().SetUpsert(true)

	if _, err := storage.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return derp.Wrap(err, location, "Unable to save message", messageID)
	}

	return nil
}

// FetchMessage returns the message body for an id.  Ids with no document in
// the collection are reported as invalid.
func (storage Storage) FetchMessage(ctx context.Context, messageID int) (string, error) {

	const location = "store_mongo.FetchMessage"

	record := messageRecord{}
	err := storage.collection.FindOne(ctx, bson.M{"messageId": messageID}).Decode(&record)

	if err != nil {

		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", derp.NotFoundError(location, "Invalid ID", messageID)
		}

		return "", derp.Wrap(err, location, "Unable to fetch message", messageID)
	}

	return record.Body, nil
}

// DeleteMessage removes the message for an id.  Deleting a message that does
// not exist is not an error.
func (storage Storage) DeleteMessage(ctx context.Context, messageID int) error {

	const location = "store_mongo.DeleteMessage"

	if _, err := storage.collection.DeleteOne(ctx, bson.M{"messageId": messageID}); err != nil {
		return derp.Wrap(err, location, "Unable to delete message", messageID)
	}

	return nil
}
