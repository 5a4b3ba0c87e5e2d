package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Source exposes the loaded configuration as free-form settings.
// Keys are case-insensitive. It is safe for concurrent use.
type Source struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

func newSource(v *viper.Viper, path string) *Source {
	return &Source{v: v, path: path}
}

// Exists reports whether key has a value from the file, the environment or a
// default.
func (s *Source) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.IsSet(key)
}

// Get returns the value of key, or nil.
func (s *Source) Get(key string) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v.Get(key)
}

// Set stores value under key and writes the config file.
func (s *Source) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write config %s: %w", s.path, err)
	}
	return nil
}

// Path returns the file settings are written to.
func (s *Source) Path() string {
	return s.path
}

// Config decodes the current values into a Config.
func (s *Source) Config() (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return decode(s.v)
}

// Watch re-reads the file whenever it changes on disk and calls onChange
// with the file name.
func (s *Source) Watch(onChange func(name string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if onChange != nil {
			onChange(e.Name)
		}
	})
	s.v.WatchConfig()
}
