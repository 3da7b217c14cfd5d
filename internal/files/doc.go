// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction with OS and in-memory implementations
//   - scanner: tree walking with name and size filters
//
// The recovery engine walks a mounted snapshot through a filesystem.FileSystemProvider
// so tests can substitute an in-memory tree.
package files
