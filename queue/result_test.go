package queue

import (
	"testing"

	"github.com/benpate/derp"
	"github.com/stretchr/testify/require"
)

func TestResult(t *testing.T) {

	success := Success("Message for ID 1")
	require.True(t, success.IsSuccessful())
	require.False(t, success.NotSuccessful())
	require.Equal(t, "Message for ID 1", success.Message)
	require.Nil(t, success.Error)

	failure := Failure(derp.InternalError("test", "something broke"))
	require.False(t, failure.IsSuccessful())
	require.True(t, failure.NotSuccessful())
	require.NotNil(t, failure.Error)

	ignored := Ignored()
	require.False(t, ignored.IsSuccessful())
	require.Equal(t, ResultStatusIgnored, ignored.Status)
}
