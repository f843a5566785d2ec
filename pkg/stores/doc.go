// Package stores is the process-wide registry of named stores.
//
// A Registry maps store paths to *store.Store instances and is the only way
// to reach them. One mutex guards the whole map and every store in it, so
// operations on any store are serialized. The first reference to a path
// creates its store, seeded with configured defaults and loaded from disk on
// a best-effort basis. Change events produced by an operation are handed to
// the configured notify.Notifier before the operation returns.
//
// The embedding application creates one Registry at startup and calls
// Shutdown once on the way out, which saves every store.
package stores
