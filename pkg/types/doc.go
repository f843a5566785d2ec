// Package types defines the value model shared by every keeper package:
// the JSON-equivalent Value and Map types, the ChangeEvent emitted by
// mutating store operations, and the FS interface stores perform I/O through.
package types
