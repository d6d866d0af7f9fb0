package notify

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Log is a Notifier that writes each notification to the log, standing in
// for a real middleware system (e.g. Kafka, JMS).  It never fails.
type Log struct{}

// NewLog returns a fully initialized Log notifier
func NewLog() Log {
	return Log{}
}

// Send writes the notification to the log
func (Log) Send(_ context.Context, notification Notification) error {

	log.Info().
		Str("deliveryId", notification.DeliveryID).
		Msgf("Middleware: Sending -> %s", notification.Body)

	return nil
}
