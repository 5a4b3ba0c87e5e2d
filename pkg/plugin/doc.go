/*
Package plugin discovers externally supplied actions at startup.

A plugin named "x" is only activated when the intent dataset knows the tag
"plugin-x" and the action "plugin-x-action"; otherwise it is skipped with a
warning. Two sources are scanned:

  - Compiled plugins, registered through a table of Factory constructors.
  - Go source scripts (*.go) in the plugin directory, evaluated with yaegi.

A script defines top-level functions in package main:

	func Name() string
	func Version() float64 // optional, defaults to 1.0
	func GetResponse(input, mainTemplate, errorTemplate string, ask func(string) (string, error)) (string, error)

ask blocks until the user answers the prompt, so scripts can collect input
mid-action the same way compiled plugins use action.Call.Ask.
*/
package plugin
