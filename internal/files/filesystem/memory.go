package filesystem

import (
	"errors"
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

type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Relative paths resolve against root. Safe for concurrent use.
type MemoryFileSystem struct {
	mu         sync.RWMutex
	root       string
	entries    map[string]*memoryEntry
	readErrors map[string]error
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes for virtual filesystem consistency.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))
	mfs := &MemoryFileSystem{
		root:       root,
		entries:    make(map[string]*memoryEntry),
		readErrors: make(map[string]error),
	}
	mfs.addDir(root)
	return mfs
}

func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) addDir(abs string) {
	for dir := abs; ; dir = path.Dir(dir) {
		if _, ok := mfs.entries[dir]; !ok {
			mfs.entries[dir] = &memoryEntry{info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    dirPerm | fs.ModeDir,
				modTime: time.Now(),
				isDir:   true,
			}}
		}
		if dir == "/" || dir == "." || path.Dir(dir) == dir {
			return
		}
	}
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	if err := mfs.WriteFile(filePath, []byte(content)); err != nil {
		panic(err)
	}
}

// SetReadError makes every later ReadFile of filePath fail with err.
func (mfs *MemoryFileSystem) SetReadError(filePath string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.readErrors[mfs.resolve(filePath)] = err
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	abs := mfs.resolve(filePath)
	if err, ok := mfs.readErrors[abs]; ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: err}
	}
	entry, ok := mfs.entries[abs]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	if entry.info.isDir {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: errors.New("is a directory")}
	}
	out := make([]byte, len(entry.content))
	copy(out, entry.content)
	return out, nil
}

// WriteFile implements FileSystemProvider.WriteFile.
// Parent directories are created implicitly.
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(filePath)
	if entry, ok := mfs.entries[abs]; ok && entry.info.isDir {
		return &fs.PathError{Op: "open", Path: filePath, Err: errors.New("is a directory")}
	}
	mfs.addDir(path.Dir(abs))

	content := make([]byte, len(data))
	copy(content, data)
	mfs.entries[abs] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(abs),
			size:    int64(len(content)),
			mode:    filePerm,
			modTime: time.Now(),
		},
	}
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	abs := mfs.resolve(dirPath)
	for dir := abs; ; dir = path.Dir(dir) {
		if entry, ok := mfs.entries[dir]; ok && !entry.info.isDir {
			return &fs.PathError{Op: "mkdir", Path: dirPath, Err: errors.New("not a directory")}
		}
		if path.Dir(dir) == dir {
			break
		}
	}
	mfs.addDir(abs)
	return nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	entry, ok := mfs.entries[mfs.resolve(statPath)]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return entry.info, nil
}

// Exists implements FileSystemProvider.Exists
func (mfs *MemoryFileSystem) Exists(filePath string) (bool, error) {
	info, err := mfs.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// Files returns the paths of all regular files relative to root, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var out []string
	for p, entry := range mfs.entries {
		if entry.info.isDir {
			continue
		}
		if rel := strings.TrimPrefix(p, mfs.root+"/"); rel != p {
			out = append(out, rel)
		} else {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

var _ FileSystemProvider = (*MemoryFileSystem)(nil)
