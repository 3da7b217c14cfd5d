// Package filesystem provides the filesystem abstraction used to walk mounted
// snapshot trees.
//
// Key interfaces:
//   - FileSystemProvider: Factory for directories, plus Stat and OpenFile
//   - Directory: Represents a directory that can be traversed
//   - File: An entry found during a walk, openable for streaming reads
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing, with fault injection
package filesystem
