package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
	fs      *MemoryFileSystem
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) Open() (io.ReadCloser, error) {
	return f.fs.OpenFile(f.absPath)
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.getEntriesUnder(d.absPath)

	// Sort by path for deterministic order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			rel := strings.TrimPrefix(entry.absPath, d.absPath)
			rel = strings.TrimPrefix(rel, "/")
			if rel == "" {
				rel = "."
			}
			callbackErr = fn(&memoryFile{
				absPath: entry.absPath,
				relPath: rel,
				content: entry.content,
				info:    entry.info,
				fs:      d.fs,
			}, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Stat and OpenFile failures can be injected per path to simulate files
// that vanish or become unreadable after enumeration.
type MemoryFileSystem struct {
	mu       sync.RWMutex
	files    map[string]*memoryFile
	root     string
	statErrs map[string]error
	openErrs map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files:    make(map[string]*memoryFile),
		root:     root,
		statErrs: make(map[string]error),
		openErrs: make(map[string]error),
	}

	mfs.files[root] = &memoryFile{
		absPath: root,
		relPath: ".",
		info: &memoryFileInfo{
			name:    path.Base(root),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
		fs: mfs,
	}

	return mfs
}

// Root returns the root directory of the filesystem.
func (mfs *MemoryFileSystem) Root() string { return mfs.root }

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithMode(path, content, 0644, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.AddFileWithMode(filePath, content, 0644, modTime)
}

// AddFileWithMode adds a file with specific permission bits and modification time
func (mfs *MemoryFileSystem) AddFileWithMode(filePath string, content string, mode fs.FileMode, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	absPath := mfs.abs(filePath)
	contentBytes := []byte(content)

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: strings.TrimPrefix(absPath, mfs.root+"/"),
		content: contentBytes,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(contentBytes)),
			mode:    mode.Perm(),
			modTime: modTime,
		},
		fs: mfs,
	}

	mfs.ensureDirectoriesExist(absPath)
}

// FailStat makes every later Stat of filePath return err.
func (mfs *MemoryFileSystem) FailStat(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.statErrs[mfs.abs(filePath)] = err
}

// FailOpen makes every later OpenFile of filePath return err.
func (mfs *MemoryFileSystem) FailOpen(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.openErrs[mfs.abs(filePath)] = err
}

// abs resolves filePath against the root; callers hold mu or don't need it.
func (mfs *MemoryFileSystem) abs(filePath string) string {
	filePath = filepath.ToSlash(filePath)
	if filePath == "" || filePath == "." {
		return mfs.root
	}
	if path.IsAbs(filePath) {
		return path.Clean(filePath)
	}
	return path.Join(mfs.root, filePath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}

	if _, exists := mfs.files[dir]; exists {
		return
	}

	mfs.files[dir] = &memoryFile{
		absPath: dir,
		relPath: strings.TrimPrefix(dir, mfs.root+"/"),
		info: &memoryFileInfo{
			name:    path.Base(dir),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
		fs: mfs,
	}

	mfs.ensureDirectoriesExist(dir)
}

// getEntriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) getEntriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var entries []*memoryFile
	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}
		if matched {
			entries = append(entries, file)
		}
	}

	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(openPath)
	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("failed to access path: %w",
			&fs.PathError{Op: "stat", Path: openPath, Err: fs.ErrNotExist})
	}
	if !file.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// OpenFile implements FileSystemProvider.OpenFile
func (mfs *MemoryFileSystem) OpenFile(filePath string) (io.ReadCloser, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(filePath)
	if err, ok := mfs.openErrs[absPath]; ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: err}
	}

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return io.NopCloser(bytes.NewReader(file.content)), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	absPath := mfs.abs(statPath)
	if err, ok := mfs.statErrs[absPath]; ok {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: err}
	}

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}

	return file.info, nil
}

var (
	_ FileSystemProvider = (*MemoryFileSystem)(nil)
	_ FileSystemProvider = (*OSFileSystem)(nil)
)
