package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*entry)

	dotenvOnce sync.Once
)

// Load parses environment variables into v. Each config type is parsed once;
// later calls copy the cached value. If the first parse of a type failed,
// every later call for that type returns the same error.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	e := lookup(reflect.TypeFor[T]())
	e.once.Do(func() {
		var cfg T
		if err := env.Parse(&cfg); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = cfg
	})

	if e.err != nil {
		return e.err
	}
	cfg, ok := e.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = cfg
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func lookup(t reflect.Type) *entry {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	e, ok := cache[t]
	if !ok {
		e = &entry{}
		cache[t] = e
	}
	return e
}
