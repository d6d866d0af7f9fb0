package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benpate/derp"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// countingProcessor records how many times each task id has been processed.
type countingProcessor struct {
	mutex  sync.Mutex
	counts map[int]int
}

func newCountingProcessor() *countingProcessor {
	return &countingProcessor{
		counts: make(map[int]int),
	}
}

func (processor *countingProcessor) Process(_ context.Context, taskID int) Result {
	processor.mutex.Lock()
	defer processor.mutex.Unlock()
	processor.counts[taskID]++
	return Success("")
}

func TestPool_EveryTaskProcessedExactlyOnce(t *testing.T) {

	processor := newCountingProcessor()

	pool := New(
		WithProcessors(processor),
		WithWorkerCount(5),
	)

	pool.Start(context.Background())

	const taskCount = 100

	for taskID := 1; taskID <= taskCount; taskID++ {
		require.Nil(t, pool.Submit(taskID))
	}

	// Drain mode: Stop returns only after every queued task has been handled
	pool.Stop()

	require.Len(t, processor.counts, taskCount)
	for taskID := 1; taskID <= taskCount; taskID++ {
		require.Equal(t, 1, processor.counts[taskID], "task %d", taskID)
	}
}

func TestPool_MultipleProcessors(t *testing.T) {

	evens := newCountingProcessor()
	odds := newCountingProcessor()

	evensOnly := Func(func(ctx context.Context, taskID int) Result {
		if taskID%2 != 0 {
			return Ignored()
		}
		return evens.Process(ctx, taskID)
	})

	pool := New(
		WithProcessors(evensOnly, odds),
		WithWorkerCount(3),
	)

	pool.Start(context.Background())

	for taskID := 1; taskID <= 10; taskID++ {
		require.Nil(t, pool.Submit(taskID))
	}

	pool.Stop()

	// Even ids are claimed by the first processor; odd ids fall through
	require.Len(t, evens.counts, 5)
	require.Len(t, odds.counts, 5)
	for taskID := range odds.counts {
		require.Equal(t, 1, taskID%2)
	}
}

func TestPool_FailuresAreAbsorbed(t *testing.T) {

	processor := newCountingProcessor()

	failing := Func(func(ctx context.Context, taskID int) Result {
		processor.Process(ctx, taskID)
		return Failure(derp.InternalError("test", "this task always fails", taskID))
	})

	pool := New(
		WithProcessors(failing),
		WithWorkerCount(2),
	)

	pool.Start(context.Background())

	for taskID := 1; taskID <= 10; taskID++ {
		require.Nil(t, pool.Submit(taskID))
	}

	// Every task fails, and every worker survives to drain the whole queue
	pool.Stop()
	require.Len(t, processor.counts, 10)
}

func TestPool_PreProcessor(t *testing.T) {

	processor := newCountingProcessor()

	rejectNonPositive := func(taskID int) error {
		if taskID <= 0 {
			return derp.BadRequestError("test", "Invalid ID", taskID)
		}
		return nil
	}

	pool := New(
		WithProcessors(processor),
		WithWorkerCount(1),
		WithPreProcessor(rejectNonPositive),
	)

	pool.Start(context.Background())

	require.Error(t, pool.Submit(0))
	require.Error(t, pool.Submit(-3))
	require.Nil(t, pool.Submit(1))

	pool.Stop()

	// Rejected ids never reached a worker
	require.Len(t, processor.counts, 1)
	require.Equal(t, 1, processor.counts[1])
}

func TestPool_SubmitAfterStop(t *testing.T) {

	pool := New(WithProcessors(newCountingProcessor()))
	pool.Start(context.Background())
	pool.Stop()

	require.Error(t, pool.Submit(1))
}

func TestPool_ImmediateShutdown(t *testing.T) {

	entered := make(chan int, 16)
	release := make(chan struct{})
	processor := newCountingProcessor()

	blocking := Func(func(ctx context.Context, taskID int) Result {
		entered <- taskID
		<-release
		return processor.Process(ctx, taskID)
	})

	pool := New(
		WithProcessors(blocking),
		WithWorkerCount(1),
		WithShutdownMode(ShutdownModeImmediate),
	)

	pool.Start(context.Background())

	for taskID := 1; taskID <= 5; taskID++ {
		require.Nil(t, pool.Submit(taskID))
	}

	// Wait until the worker is busy with the first task, so the
	// other four are still queued when the pool stops.
	select {
	case taskID := <-entered:
		require.Equal(t, 1, taskID)
	case <-time.After(time.Second):
		t.Fatal("worker never started processing")
	}

	go func() {
		time.Sleep(100 * time.Millisecond)
		close(release)
	}()

	pool.Stop()

	// The in-flight task completed; the queued ones were discarded
	require.Len(t, processor.counts, 1)
	require.Equal(t, 1, processor.counts[1])
	require.Zero(t, pool.Pending())
}

func TestPool_StopTwice(t *testing.T) {

	pool := New(WithProcessors(newCountingProcessor()))
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()
}
