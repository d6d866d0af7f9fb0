// Package processor provides the standard task processor: look the task's
// message up in a MessageStore, then forward the outcome through a Notifier.
package processor

import (
	"context"
	"fmt"

	"github.com/benpate/derp"
	"github.com/benpate/dispatch/notify"
	"github.com/benpate/dispatch/queue"
	"github.com/benpate/dispatch/store"
	"github.com/benpate/rosetta/mapof"
	"github.com/rs/zerolog/log"
)

// Processor handles a task id by fetching its message from a MessageStore
// and sending the composed result through a Notifier.  Both collaborators
// are injected at construction and never reassigned, so a single Processor
// is safely shared by every worker in a pool.
type Processor struct {
	store    store.MessageStore
	notifier notify.Notifier
}

// New returns a fully initialized Processor
func New(messageStore store.MessageStore, notifier notify.Notifier) Processor {

	return Processor{
		store:    messageStore,
		notifier: notifier,
	}
}

// Process implements the queue.Processor interface.  Lookup and notify
// errors are logged and folded into the Result; they never reach the
// worker loop.
func (processor Processor) Process(ctx context.Context, taskID int) queue.Result {

	const location = "processor.Processor.Process"

	// Look up the message for this task id
	message, err := processor.store.FetchMessage(ctx, taskID)

	if err != nil {
		log.Error().Msgf("Task %d: Error -> %s", taskID, err.Error())
		return queue.Failure(derp.Wrap(err, location, "Unable to fetch message", taskID))
	}

	log.Info().Msgf("Task %d: Fetched -> %s", taskID, message)

	// Forward the outcome to the middleware collaborator
	notification := notify.New(
		fmt.Sprintf("Processed Task %d: %s", taskID, message),
		mapof.Any{"taskId": taskID},
	)

	if err := processor.notifier.Send(ctx, notification); err != nil {
		log.Error().Msgf("Task %d: Error -> %s", taskID, err.Error())
		return queue.Failure(derp.Wrap(err, location, "Unable to send notification", taskID))
	}

	return queue.Success(message)
}
