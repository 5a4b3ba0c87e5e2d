/*
Package domain contains the core models shared by the Baxter dispatch runtime.

It defines what a classified message looks like, the per-message trigger
snapshot handed to every action, and the error taxonomy used across the
module. The package holds no I/O and depends only on the standard library.

# Key Entities

  - Classification: The classifier's verdict for one user message.
  - Intent: The main and error response templates bound to an action key.
  - Trigger: The "what just happened" snapshot (UI window, last action, last input).
  - SessionState: The persisted part of a Trigger, owned by the session layer.
*/
package domain
