package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// FileSet manages the collection of fact and tree files consumed by the
// pipeline, providing stable IDs and line/column resolution for spans.
type FileSet struct {
	files   []File
	index   map[string]FileID // normalized path -> latest id
	baseDir string
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// NewFileSetWithBase creates a FileSet resolving relative paths against baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the base directory, defaulting to the working directory.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and
// returns a new FileID. A new ID is created even if the path was seen before;
// the path index always points at the latest version.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalized := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file with the FileVirtual flag.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID, or nil if out of range.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetByPath returns the latest file for path, if loaded.
func (fs *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fs.index[normalizePath(path)]; ok {
		return &fs.files[id], true
	}
	return nil, false
}

// Len returns the number of files in the set.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Position resolves a byte offset within a file to a 1-based line/column.
func (fs *FileSet) Position(id FileID, offset uint32) LineCol {
	f := fs.Get(id)
	if f == nil {
		return LineCol{Line: 1, Col: 1}
	}
	// LineIdx holds the offset of the first byte of each line after the first.
	line := sort.Search(len(f.LineIdx), func(i int) bool {
		return f.LineIdx[i] > offset
	})
	lineStart := uint32(0)
	if line > 0 {
		lineStart = f.LineIdx[line-1]
	}
	lineNum, err := safecast.Conv[uint32](line + 1)
	if err != nil {
		lineNum = 1
	}
	return LineCol{Line: lineNum, Col: offset - lineStart + 1}
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
