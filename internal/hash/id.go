package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// IDBytes computes the xxHash64 of the given byte slice, used for
// content-addressing archive entries rather than string identifiers.
func IDBytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
