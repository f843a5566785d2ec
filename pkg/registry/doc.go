// Package registry provides a generic, thread-safe name -> item registry.
// keeper uses it to look up codecs by the name given in configuration.
package registry
