/*
Package observability exposes the engine lifecycle as Prometheus metrics.

Metrics are implemented as domain.LifecycleHooks, so they compose with any
other hooks through LifecycleHooks.Merge and never reach into the engine.
*/
package observability
