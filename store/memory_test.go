package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_ValidIDs(t *testing.T) {

	memory := NewMemory()

	for messageID := 1; messageID <= 5; messageID++ {
		message, err := memory.FetchMessage(context.Background(), messageID)
		require.Nil(t, err)
		require.Equal(t, fmt.Sprintf("Message for ID %d", messageID), message)
	}
}

func TestMemory_InvalidIDs(t *testing.T) {

	memory := NewMemory()

	for _, messageID := range []int{0, -3, 6, 100} {
		message, err := memory.FetchMessage(context.Background(), messageID)
		require.Error(t, err, "id %d", messageID)
		require.Empty(t, message)
	}
}

func TestMemory_CustomRange(t *testing.T) {

	memory := NewMemoryRange(10, 12)

	message, err := memory.FetchMessage(context.Background(), 11)
	require.Nil(t, err)
	require.Equal(t, "Message for ID 11", message)

	_, err = memory.FetchMessage(context.Background(), 5)
	require.Error(t, err)
}
