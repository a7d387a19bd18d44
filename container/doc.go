// Package container implements the hierarchical store that directories are migrated into.
//
// A container is a single file holding a tree of named objects, in the spirit of HDF5:
//
//   - Group objects hold other objects and mirror directories. The root group of a
//     file is named "/".
//   - Dataset objects hold an N-dimensional numeric Array and mirror decoded files.
//
// Object names are absolute slash separated paths such as "/run1/scan.dat". Members of a
// group are always visited in ascending name order.
//
// A File opened with Create is writable and keeps its content in memory; Close commits
// the whole tree to disk. Open re-reads a committed container for read-only access,
// verifying the checksum of every dataset.
//
// The on-disk layout is a binary envelope around a JSON description of the tree:
//
//	magic bytes | codec version (2 bytes) | metadata length (4 bytes) | JSON metadata | zstd(raw data)
//
// The raw data section concatenates the encoded arrays of all datasets in depth-first
// order, the metadata records the offset, size and Keccak-256 checksum of each of them.
//
// Keys lists the names of the objects below a group, bounded by a recursion budget and
// filtered by name and object predicates.
package container
