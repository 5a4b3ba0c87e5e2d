package ports

// Settings is the key/value configuration source.
// It may be read concurrently.
type Settings interface {
	Exists(key string) bool
	Get(key string) any
}

// MutableSettings is a Settings source that can persist changes.
type MutableSettings interface {
	Settings
	Set(key string, value any) error
}
