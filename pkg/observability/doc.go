/*
Package observability turns dispatch events into logs and Prometheus metrics.

Both are plain domain.DispatchHooks, so they can be combined with Compose and
handed to the dispatcher with action.WithHooks.
*/
package observability
