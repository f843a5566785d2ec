// Package store implements a single named, file-backed key-value store.
//
// A Store keeps string keys mapped to JSON-equivalent values in an
// in-memory cache, loads and saves that cache through a codec to one file
// under the application data directory, and optionally remembers a set of
// defaults it can be reset to.
//
// Every mutating method returns the change events it produced instead of
// publishing them; the caller decides how they are delivered. A Store does
// no locking of its own. Concurrent use goes through pkg/stores, which
// serializes access to every store it manages.
package store
