// Package codec converts a store's key-value map to and from the bytes kept
// in its backing file.
//
// Four codecs are registered by name:
//
//	json    plain JSON object (the default)
//	legacy  little-endian uint64 length prefix followed by the JSON text,
//	        the historical on-disk format
//	toml    TOML document; cannot hold null values
//	yaml    YAML mapping
//
// A store must be loaded and saved with the same codec; reading a file
// written by another codec fails with a DESERIALIZE error.
package codec
