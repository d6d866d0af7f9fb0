package queue

import "context"

// Processor is the capability that consumes a task id from the queue and
// produces a Result. Alternative processing strategies are additional
// implementations of this interface; the worker loop never changes.
type Processor interface {
	Process(ctx context.Context, taskID int) Result
}

// Func adapts a plain function into a Processor.
type Func func(ctx context.Context, taskID int) Result

// Process implements the Processor interface
func (fn Func) Process(ctx context.Context, taskID int) Result {
	return fn(ctx, taskID)
}
