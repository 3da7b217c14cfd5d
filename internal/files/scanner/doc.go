// Package scanner discovers recovery candidates in a mounted snapshot tree.
//
// The scanner package is responsible for:
//   - Recursively enumerating regular files below a scan root
//   - Matching file names against glob filters
//   - Re-reading file sizes and applying inclusive size bounds
//   - Recording files that disappear between enumeration and inspection
//
// Directories are traversed but never matched. Symbolic links and other
// non-regular entries are neither followed nor reported. The scanner works
// against filesystem.FileSystemProvider, so tests can run on the in-memory
// filesystem.
package scanner
