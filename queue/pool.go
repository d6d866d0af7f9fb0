package queue

import (
	"context"
	"sync"

	"github.com/benpate/derp"
	"github.com/benpate/rosetta/channel"
	"github.com/rs/zerolog/log"
)

// ShutdownMode determines what happens to queued tasks when the Pool stops.
type ShutdownMode int

const (
	// ShutdownModeDrain processes every task already queued before the
	// workers exit.  Stop blocks until the queue is empty.
	ShutdownModeDrain ShutdownMode = iota

	// ShutdownModeImmediate discards queued tasks.  Workers exit as soon as
	// they finish the task they are currently processing (if any).
	ShutdownModeImmediate
)

// Pool runs a fixed set of worker goroutines against one shared
// BlockingQueue of task ids.  Processors and the pre-processor are set at
// construction and never reassigned, so they are shared by all workers
// without additional locking.
type Pool struct {
	tasks        *BlockingQueue[int] // tasks is the shared queue of pending task ids
	processors   []Processor         // processors contains all registered Processor objects
	preProcessor PreProcessor        // optional pre-processor function that is executed on all task ids before they are queued
	workerCount  int                 // workerCount is the number of goroutines used to process tasks concurrently. Default is 3
	shutdownMode ShutdownMode        // shutdownMode determines what Stop does with queued tasks. Default is ShutdownModeDrain
	done         chan struct{}       // done channel is closed to stop the pool
	waitgroup    sync.WaitGroup      // waitgroup tracks active workers
	stopOnce     sync.Once
}

// New returns a fully initialized Pool object, with all options applied.
// Call Start to launch the workers.
func New(options ...Option) *Pool {

	// Create the new Pool object
	result := Pool{
		workerCount:  3,
		shutdownMode: ShutdownModeDrain,
		done:         make(chan struct{}),
	}

	// Apply options
	for _, option := range options {
		option(&result)
	}

	// Create the shared task queue
	result.tasks = NewBlockingQueue[int]()

	return &result
}

// Start launches the worker goroutines.  Each worker loops forever:
// pop a task id, process it, repeat.  Workers never reach a terminal state
// on their own; they only exit when the Pool is stopped.
func (pool *Pool) Start(ctx context.Context) {

	log.Trace().Int("workerCount", pool.workerCount).Msg("Dispatch Pool: starting workers")

	pool.waitgroup.Add(pool.workerCount)

	for range pool.workerCount {
		go pool.startWorker(ctx)
	}
}

// Submit pushes a task id onto the queue, where it will be picked up by the
// next idle worker.  Submit fails if the pre-processor rejects the task, or
// if the pool has already been stopped.
func (pool *Pool) Submit(taskID int) error {

	const location = "queue.Pool.Submit"

	// Run the pre-processor on the task id (if present)
	if pool.preProcessor != nil {
		if err := pool.preProcessor(taskID); err != nil {
			return derp.Wrap(err, location, "Invalid task. Rejected by PreProcessor", taskID)
		}
	}

	if err := pool.tasks.Push(taskID); err != nil {
		return derp.Wrap(err, location, "Unable to queue task", taskID)
	}

	return nil
}

// Pending returns the number of task ids waiting in the queue
func (pool *Pool) Pending() int {
	return pool.tasks.Length()
}

// Stop shuts the pool down and blocks until every worker has exited.
// In ShutdownModeDrain (the default), each task already queued is processed
// first.  In ShutdownModeImmediate, queued tasks are discarded and workers
// exit after their current task.  Calling Stop more than once is safe.
func (pool *Pool) Stop() {
	pool.stopOnce.Do(pool.stop)
}

func (pool *Pool) stop() {

	if pool.shutdownMode == ShutdownModeImmediate {

		// Send "stop" signal to all workers, then throw away whatever is
		// still queued so that blocked workers wake up to an empty queue.
		close(pool.done)

		if discarded := pool.tasks.Clear(); discarded > 0 {
			log.Debug().Int("discarded", discarded).Msg("Dispatch Pool: discarded queued tasks")
		}

		pool.tasks.Close()
		pool.waitgroup.Wait()
		return
	}

	// Drain: no new tasks are accepted, and workers keep pulling until the
	// queue is empty.
	pool.tasks.Close()
	pool.waitgroup.Wait()
	close(pool.done)
}

// startWorker runs a single worker process, pulling task ids off the
// shared queue and running them one at a time.
func (pool *Pool) startWorker(ctx context.Context) {

	defer pool.waitgroup.Done()

	for {

		// Pop blocks until a task id is available, or the queue is closed.
		taskID, ok := pool.tasks.Pop()

		if !ok {
			return
		}

		// Execute the task
		if err := pool.consume(ctx, taskID); err != nil {
			derp.Report(err)
		}

		// If the pool has stopped, then exit the worker
		if channel.Closed(pool.done) {
			return
		}
	}
}

// consume executes a single task
func (pool *Pool) consume(ctx context.Context, taskID int) error {

	const location = "queue.Pool.consume"

	for _, processor := range pool.processors {

		// Try to run the task
		result := processor.Process(ctx, taskID)

		log.Trace().Str("location", location).Int("taskId", taskID).Str("status", result.Status).Msg("Task executed")

		switch result.Status {

		// If the task was successful, then we're done here
		case ResultStatusSuccess:
			return nil

		// If the task failed, then the failure is absorbed here.
		// It never surfaces past the worker loop, and nothing is retried.
		case ResultStatusFailure:
			derp.Report(result.Error)
			return nil

		// Unrecognized statuses are the same as "Ignored".
		// If the processor cannot match this task, then try the next processor
		// case ResultStatusIgnored:
		default:
			continue
		}
	}

	// No matching processors found. Return disgrace.
	return derp.InternalError(location, "No processors available to handle task", taskID)
}
