package domain

// Reserved action keys understood by the dispatcher.
const (
	// StopwordAction marks a message the classifier judged to be noise.
	// Dispatching it yields no response at all.
	StopwordAction = "stopword-detected"

	// RepeatAction is the key of the built-in replay action.
	RepeatAction = "repeat"
)

// Plugin naming scheme. A plugin called "x" answers to the intent tagged
// "plugin-x" and is bound to the action "plugin-x-action".
const (
	PluginTagPrefix    = "plugin-"
	PluginActionSuffix = "-action"
)

// PluginTag returns the intent tag a plugin must be registered under.
func PluginTag(name string) string {
	return PluginTagPrefix + name
}

// PluginActionKey returns the action key a plugin is dispatched by.
func PluginActionKey(name string) string {
	return PluginTag(name) + PluginActionSuffix
}
