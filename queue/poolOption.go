package queue

// Option is a functional option that modifies a Pool object
type Option func(*Pool)

// WithProcessors adds one or more processors to handle tasks from the Pool
func WithProcessors(processors ...Processor) Option {
	return func(pool *Pool) {
		pool.processors = append(pool.processors, processors...)
	}
}

// WithWorkerCount sets the number of concurrent workers to run
func WithWorkerCount(workerCount int) Option {
	return func(pool *Pool) {
		pool.workerCount = workerCount
	}
}

// WithShutdownMode sets what happens to queued tasks when the Pool stops
func WithShutdownMode(shutdownMode ShutdownMode) Option {
	return func(pool *Pool) {
		pool.shutdownMode = shutdownMode
	}
}

// WithPreProcessor applies a global check that runs on every task id
// before it is queued
func WithPreProcessor(preProcessor PreProcessor) Option {
	return func(pool *Pool) {
		pool.preProcessor = preProcessor
	}
}
