/*
Package ports defines the driven ports (interfaces) the Baxter runtime consumes.

These interfaces decouple dispatch from the concrete classifier, configuration
source and persistence backend, so the same core runs under the terminal chat,
the HTTP server and the tests.

# Key Interfaces

  - Classifier: Turns text into a domain.Classification and answers intent queries.
  - IntentIndex: The read-only subset plugin discovery validates against.
  - SpanLocator: Extracts named parts (song, artist, website) from a message.
  - Settings: Key/value configuration read by templates and actions.
  - StateStore: Persists per-session domain.SessionState.
  - DistributedLocker: Coordinates session access across replicas.
*/
package ports
