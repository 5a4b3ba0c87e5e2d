/*
Package action owns the Baxter action space: the Handler contract, the
registry that maps action keys to handlers, and the Dispatcher that turns a
classified message into its final response.

# Handler contract

Every handler exposes one blocking operation, GetResponse. It returns only when
the response is final. Handlers that need more input from the user (the
"suspend-capable" ones) call Call.Ask, which blocks until the window delivers
the user's next message. The dispatcher never sees a partial response.

# Resolution

Dispatch resolves keys in this order:

 1. "stopword-detected" yields no response (nil).
 2. No action key yields the main template.
 3. An unknown key yields the main template.
 4. Otherwise the handler runs. Handler errors and panics are logged and
    answered with the error template.

Only a broken registration (nil handler, or a handler reporting
domain.ErrHandlerContract) makes Dispatch return an error.
*/
package action
