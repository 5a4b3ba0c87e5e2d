/*
Package baxter is a conversational assistant runtime: it classifies chat messages into intents and dispatches them to actions.

Every message goes through the same pipeline. The classifier picks an intent and its templates, the dispatcher resolves the intent's action key in the registry, and the action answers, optionally after asking the user follow-up questions. Intents without an action answer with their template directly.

# Key Features

  - Pluggable actions: built-ins (time, greeting, songs, websites, jokes, clear chat, repeat) plus compiled and script plugins discovered at startup.
  - Conditional templates: "%if_name% Hi {name}%if_name_end%" reads user settings.
  - Suspendable actions: a handler can ask the user and block until the next message answers.
  - Durable sessions: the last exchange is kept in memory or Redis, which powers "repeat that".

# Usage

	package main

	import (
		"context"
		"log"
		"os"

		"github.com/aretw0/baxter"
	)

	func main() {
		ctx := context.Background()

		// Reads ./baxter.yaml, BAXTER_* environment variables and the intent dataset.
		assistant, err := baxter.New(ctx)
		if err != nil {
			log.Fatal(err)
		}
		defer assistant.Close()

		runner := baxter.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		if err := runner.Run(ctx, assistant.Chat()); err != nil {
			log.Fatal(err)
		}
	}
*/
package baxter
