package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrHandlerContract is reported by handlers that cannot honour the action
// contract at all (for example a script plugin without GetResponse).
var ErrHandlerContract = errors.New("handler does not implement GetResponse")

// ErrNoIntent is returned when no intent matches a message or is bound to an
// action key.
var ErrNoIntent = errors.New("no matching intent")

var (
	// ErrInputTooLarge is returned for messages over the size limit.
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	// ErrInvalidUTF8 is returned for messages that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// TemplateSyntaxError reports malformed conditional markup in a response template.
type TemplateSyntaxError struct {
	Template string
	Reason   string
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("template syntax error: %s", e.Reason)
}

// TemplateMissingKeyError is returned when a true conditional references a
// setting that does not exist.
type TemplateMissingKeyError struct {
	Key string
}

func (e *TemplateMissingKeyError) Error() string {
	return fmt.Sprintf("template references missing key %q", e.Key)
}

// HandlerContractViolation means a registered action cannot be invoked.
// It points at a broken registration and must not be swallowed.
type HandlerContractViolation struct {
	ActionKey string
	Err       error
}

func (e *HandlerContractViolation) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("action %q violates the handler contract: %v", e.ActionKey, e.Err)
	}
	return fmt.Sprintf("action %q violates the handler contract", e.ActionKey)
}

func (e *HandlerContractViolation) Unwrap() error {
	if e.Err == nil {
		return ErrHandlerContract
	}
	return e.Err
}

// ActionExecutionError wraps a failure raised while an action was running.
// The dispatcher recovers from it and answers with the error template.
type ActionExecutionError struct {
	ActionKey string
	Err       error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("action %q failed: %v", e.ActionKey, e.Err)
}

func (e *ActionExecutionError) Unwrap() error {
	return e.Err
}

// PluginLoadError is a fatal startup failure while loading or instantiating a plugin.
type PluginLoadError struct {
	Source string
	Err    error
}

func (e *PluginLoadError) Error() string {
	return fmt.Sprintf("failed to load plugin %s: %v", e.Source, e.Err)
}

func (e *PluginLoadError) Unwrap() error {
	return e.Err
}
