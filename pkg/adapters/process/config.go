package process

import "runtime"

// CommandOpenURL is the command name used by Runner.OpenURL.
const CommandOpenURL = "open_url"

// CommandConfig describes an allow-listed command.
// Args may contain {placeholders} filled from the values passed to Run.
type CommandConfig struct {
	Command string            `mapstructure:"command" yaml:"command" json:"command"`
	Args    []string          `mapstructure:"args" yaml:"args" json:"args"`
	Env     map[string]string `mapstructure:"env" yaml:"env" json:"env"`
}

// DefaultCommands returns the built-in allow-list for the given GOOS
// (pass "" for the running system).
func DefaultCommands(goos string) map[string]CommandConfig {
	if goos == "" {
		goos = runtime.GOOS
	}
	var open CommandConfig
	switch goos {
	case "darwin":
		open = CommandConfig{Command: "open", Args: []string{"{url}"}}
	case "windows":
		open = CommandConfig{Command: "rundll32", Args: []string{"url.dll,FileProtocolHandler", "{url}"}}
	default:
		open = CommandConfig{Command: "xdg-open", Args: []string{"{url}"}}
	}
	return map[string]CommandConfig{CommandOpenURL: open}
}
