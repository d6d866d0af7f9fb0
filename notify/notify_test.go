package notify

import (
	"context"
	"testing"

	"github.com/benpate/rosetta/mapof"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {

	notification := New("Processed Task 1: Message for ID 1", mapof.Any{"taskId": 1})

	require.NotEmpty(t, notification.DeliveryID)
	require.Equal(t, "Processed Task 1: Message for ID 1", notification.Body)
	require.Equal(t, 1, notification.Data["taskId"])

	// Every notification gets its own delivery id
	other := New("Processed Task 2: Message for ID 2", nil)
	require.NotEqual(t, notification.DeliveryID, other.DeliveryID)
}

func TestBuffer(t *testing.T) {

	buffer := NewBuffer()
	require.Empty(t, buffer.Sent())

	require.Nil(t, buffer.Send(context.Background(), New("one", nil)))
	require.Nil(t, buffer.Send(context.Background(), New("two", nil)))

	sent := buffer.Sent()
	require.Len(t, sent, 2)
	require.Equal(t, "one", sent[0].Body)
	require.Equal(t, "two", sent[1].Body)
}

func TestLog(t *testing.T) {

	// The Log notifier never fails
	notifier := NewLog()
	require.Nil(t, notifier.Send(context.Background(), New("hello", nil)))
}
