// Package filesystem provides the types.FS implementations stores read and
// write their backing files through: the real OS filesystem and an afero
// adapter used for in-memory and read-only filesystems.
package filesystem
