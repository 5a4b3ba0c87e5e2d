/*
Package session runs conversations on top of the action dispatcher.

A Manager serialises access to each session's persisted state, locally with a
reference-counted mutex and across replicas with an optional distributed lock.
Chat implements one conversational turn: classify, dispatch, remember what is
needed for "repeat". Conversation adds the suspend behaviour: while an action
waits for user input, the next message is handed to that action instead of
being classified.
*/
package session
