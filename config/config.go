// Package config loads runtime settings for the dispatch CLI from built-in
// defaults, an optional config file, and DISPATCH_* environment variables.
package config

import (
	"strings"

	"github.com/benpate/derp"
	"github.com/spf13/viper"
)

// Config represents the complete dispatch configuration
type Config struct {
	Pool    PoolConfig    `mapstructure:"pool"`
	Seed    SeedConfig    `mapstructure:"seed"`
	Store   StoreConfig   `mapstructure:"store"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PoolConfig controls the worker pool
type PoolConfig struct {
	// Workers is the number of worker goroutines to run (default: 3)
	Workers int `mapstructure:"workers"`
	// Shutdown selects what happens to queued tasks on exit
	// Options: "drain", "immediate"
	Shutdown string `mapstructure:"shutdown"`
}

// SeedConfig controls the burst of task ids submitted at startup
type SeedConfig struct {
	// First is the first task id in the burst (inclusive)
	First int `mapstructure:"first"`
	// Last is the last task id in the burst (inclusive)
	Last int `mapstructure:"last"`
}

// StoreConfig selects and configures the message store engine
type StoreConfig struct {
	// Engine is the storage engine to use
	// Options: "memory", "filesystem", "pebble", "mongo"
	Engine string `mapstructure:"engine"`
	// Directory is the data directory for the filesystem engine
	Directory string `mapstructure:"directory"`
	// DataDir is the database directory for the pebble engine
	DataDir string `mapstructure:"data_dir"`
	// URI is the connection string for the mongo engine
	URI string `mapstructure:"uri"`
	// Database is the database name for the mongo engine
	Database string `mapstructure:"database"`
	// Collection is the collection name for the mongo engine
	Collection string `mapstructure:"collection"`
}

// LoggingConfig controls log output
type LoggingConfig struct {
	// Level is the minimum zerolog level to emit
	// Options: "trace", "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
}

// Default returns the built-in configuration
func Default() Config {

	return Config{
		Pool: PoolConfig{
			Workers:  3,
			Shutdown: "drain",
		},
		Seed: SeedConfig{
			First: 1,
			Last:  5,
		},
		Store: StoreConfig{
			Engine:     "memory",
			URI:        "mongodb://localhost:27017",
			Database:   "dispatch",
			Collection: "messages",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Init registers defaults and environment bindings with viper
func Init() {

	defaults := Default()

	viper.SetDefault("pool.workers", defaults.Pool.Workers)
	viper.SetDefault("pool.shutdown", defaults.Pool.Shutdown)
	viper.SetDefault("seed.first", defaults.Seed.First)
	viper.SetDefault("seed.last", defaults.Seed.Last)
	viper.SetDefault("store.engine", defaults.Store.Engine)
	viper.SetDefault("store.directory", defaults.Store.Directory)
	viper.SetDefault("store.data_dir", defaults.Store.DataDir)
	viper.SetDefault("store.uri", defaults.Store.URI)
	viper.SetDefault("store.database", defaults.Store.Database)
	viper.SetDefault("store.collection", defaults.Store.Collection)
	viper.SetDefault("logging.level", defaults.Logging.Level)

	viper.SetEnvPrefix("dispatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Load unmarshals and validates the current viper state
func Load() (Config, error) {

	const location = "config.Load"

	var result Config

	if err := viper.Unmarshal(&result); err != nil {
		return Config{}, derp.Wrap(err, location, "Unable to unmarshal configuration")
	}

	if err := result.Validate(); err != nil {
		return Config{}, derp.Wrap(err, location, "Invalid configuration")
	}

	return result, nil
}

// Validate checks the configuration for usable values
func (config Config) Validate() error {

	const location = "config.Config.Validate"

	if config.Pool.Workers < 1 {
		return derp.BadRequestError(location, "pool.workers must be at least 1", config.Pool.Workers)
	}

	switch config.Pool.Shutdown {
	case "drain", "immediate":
	default:
		return derp.BadRequestError(location, "pool.shutdown must be one of: drain, immediate", config.Pool.Shutdown)
	}

	switch config.Store.Engine {
	case "memory", "filesystem", "pebble", "mongo":
	default:
		return derp.BadRequestError(location, "store.engine must be one of: memory, filesystem, pebble, mongo", config.Store.Engine)
	}

	if config.Seed.First > config.Seed.Last {
		return derp.BadRequestError(location, "seed.first must not be greater than seed.last")
	}

	return nil
}
