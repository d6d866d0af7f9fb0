package main

import (
	"context"
	"os"

	"github.com/benpate/derp"
	"github.com/benpate/dispatch/config"
	"github.com/benpate/dispatch/notify"
	"github.com/benpate/dispatch/processor"
	"github.com/benpate/dispatch/queue"
	"github.com/benpate/dispatch/store"
	"github.com/benpate/dispatch/store_filesystem"
	"github.com/benpate/dispatch/store_mongo"
	"github.com/benpate/dispatch/store_pebble"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {

	config.Init()

	rootCmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch task pipeline CLI",
		Long:  "Dispatch runs a fixed pool of workers against a shared task queue.",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Seed a burst of task ids and process them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	runCmd.Flags().Int("workers", config.Default().Pool.Workers, "number of worker goroutines")
	runCmd.Flags().String("shutdown", config.Default().Pool.Shutdown, "shutdown mode: drain or immediate")
	runCmd.Flags().String("store", config.Default().Store.Engine, "message store engine: memory, filesystem, pebble, or mongo")
	runCmd.Flags().String("log-level", config.Default().Logging.Level, "minimum log level")

	cobra.CheckErr(viper.BindPFlag("pool.workers", runCmd.Flags().Lookup("workers")))
	cobra.CheckErr(viper.BindPFlag("pool.shutdown", runCmd.Flags().Lookup("shutdown")))
	cobra.CheckErr(viper.BindPFlag("store.engine", runCmd.Flags().Lookup("store")))
	cobra.CheckErr(viper.BindPFlag("logging.level", runCmd.Flags().Lookup("log-level")))

	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		derp.Report(err)
		os.Exit(1)
	}
}

// run wires the store, notifier, processor and pool together, seeds the
// configured burst of task ids, and drains the queue before returning.
func run(ctx context.Context) error {

	const location = "main.run"

	cfg, err := config.Load()

	if err != nil {
		return derp.Wrap(err, location, "Unable to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)

	if err != nil {
		return derp.Wrap(err, location, "Unrecognized log level", cfg.Logging.Level)
	}

	zerolog.SetGlobalLevel(level)

	messageStore, cleanup, err := openStore(ctx, cfg.Store)

	if err != nil {
		return derp.Wrap(err, location, "Unable to open message store")
	}

	defer cleanup()

	// One processor and one notifier, shared by all workers
	taskProcessor := processor.New(messageStore, notify.NewLog())

	shutdownMode := queue.ShutdownModeDrain
	if cfg.Pool.Shutdown == "immediate" {
		shutdownMode = queue.ShutdownModeImmediate
	}

	pool := queue.New(
		queue.WithProcessors(taskProcessor),
		queue.WithWorkerCount(cfg.Pool.Workers),
		queue.WithShutdownMode(shutdownMode),
	)

	// Workers first, then the seed burst.  Push and Pop are synchronized,
	// so the two sides can race safely.
	pool.Start(ctx)

	for taskID := cfg.Seed.First; taskID <= cfg.Seed.Last; taskID++ {
		if err := pool.Submit(taskID); err != nil {
			derp.Report(err)
		}
	}

	pool.Stop()
	return nil
}

// openStore builds the configured message store engine.  The returned
// cleanup function releases whatever the engine holds open.
func openStore(ctx context.Context, cfg config.StoreConfig) (store.MessageStore, func(), error) {

	const location = "main.openStore"

	noop := func() {}

	switch cfg.Engine {

	case "memory":
		return store.NewMemory(), noop, nil

	case "filesystem":
		return store_filesystem.New(cfg.Directory), noop, nil

	case "pebble":
		storage, err := store_pebble.Open(cfg.DataDir)

		if err != nil {
			return nil, noop, derp.Wrap(err, location, "Unable to open pebble store", cfg.DataDir)
		}

		return storage, func() { derp.Report(storage.Close()) }, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))

		if err != nil {
			return nil, noop, derp.Wrap(err, location, "Unable to connect to mongodb", cfg.URI)
		}

		storage := store_mongo.New(client.Database(cfg.Database), cfg.Collection)
		return storage, func() { derp.Report(client.Disconnect(context.Background())) }, nil
	}

	return nil, noop, derp.BadRequestError(location, "Unrecognized store engine", cfg.Engine)
}
