package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// cache stores one loaded value per configuration type.
	cache sync.Map // reflect.Type -> any

	// dotenvOnce loads .env files once per process, before the first parse.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. Each configuration type is
// loaded once per process; subsequent calls for the same type return the
// cached value. A .env file in the working directory, if present, is
// loaded before the first parse.
//
// Example:
//
//	type DispatchConfig struct {
//	    BufferSize int `env:"COMMAND_BUFFER_SIZE" envDefault:"100"`
//	    Workers    int `env:"COMMAND_WORKERS" envDefault:"1"`
//	}
//
//	var cfg DispatchConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
func Load[T any](cfg *T) error {
	if cfg == nil {
		return fmt.Errorf("config: nil target")
	}

	dotenvOnce.Do(func() {
		// Missing .env files are not an error.
		_ = godotenv.Load()
	})

	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := cache.Load(t); ok {
		*cfg = v.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", t, err)
	}

	// First successful load wins for concurrent callers.
	v, _ := cache.LoadOrStore(t, parsed)
	*cfg = v.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Useful during application
// startup where a missing required variable should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
