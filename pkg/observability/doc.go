// Package observability composes generator lifecycle hooks.
//
// Generators accept a single domain.LifecycleHooks value; Combine lets
// logging, metrics and caller hooks observe the same generation.
package observability
